package domain

// JobStatus tracks an upload batch through the extraction queue.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobDone       JobStatus = "done"
	JobError      JobStatus = "error"
	JobCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether no further state changes are allowed.
func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobError || s == JobCancelled
}

// FileState tracks a single uploaded document within a job.
type FileState string

const (
	FileQueued      FileState = "queued"
	FileProcessing  FileState = "processing"
	FileDone        FileState = "done"
	FileNeedsReview FileState = "needs_review"
	FileError       FileState = "error"
)

// RowStatus marks the review disposition of an extracted ledger row.
// The literals are uppercase because they surface verbatim in exports
// and in the review UI.
type RowStatus string

const (
	RowOK          RowStatus = "OK"
	RowNeedsReview RowStatus = "NEEDS_REVIEW"
	RowError       RowStatus = "ERROR"
)

// Platform identifies the marketplace that issued a document.
type Platform string

const (
	PlatformShopee  Platform = "shopee"
	PlatformLazada  Platform = "lazada"
	PlatformTikTok  Platform = "tiktok"
	PlatformSPX     Platform = "spx"
	PlatformAds     Platform = "ads"
	PlatformOther   Platform = "other"
	PlatformUnknown Platform = "unknown"
)

// KnownPlatforms lists the platforms a job filter may name.
var KnownPlatforms = map[Platform]bool{
	PlatformShopee: true,
	PlatformLazada: true,
	PlatformTikTok: true,
	PlatformSPX:    true,
	PlatformAds:    true,
	PlatformOther:  true,
}

// AllowedContentTypes maps ingestible MIME types to their canonical form.
// Browsers disagree on text MIME types, so several aliases map to text/plain.
var AllowedContentTypes = map[string]string{
	"application/pdf":           "application/pdf",
	"text/plain":                "text/plain",
	"text/plain; charset=utf-8": "text/plain",
	"application/octet-stream":  "application/octet-stream",
}

// AllowedExtensions maps ingestible file extensions to content types.
var AllowedExtensions = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain",
}
