package service

import (
	"context"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/extract"
	"peakbridge/internal/peak"
	"peakbridge/internal/textnorm"
	"peakbridge/internal/vendormap"
)

// ExtractOutcome is one document's extraction verdict: the canonical row,
// the platform that produced it and the review disposition.
type ExtractOutcome struct {
	Platform  domain.Platform  `json:"platform"`
	ClientTax string           `json:"client_tax_id,omitempty"`
	Status    domain.RowStatus `json:"status"`
	Row       peak.Row         `json:"row"`
	Errors    []string         `json:"errors"`
	SellerID  string           `json:"seller_id,omitempty"`
}

// ExtractService runs the extraction engine over one document and turns
// the raw result into a persisted-shape outcome. Pure computation, no
// I/O; safe for concurrent use.
type ExtractService interface {
	ExtractDocument(ctx context.Context, text, filename string, filter domain.JobFilter) *ExtractOutcome
}

type extractService struct {
	engine *extract.Engine
}

// NewExtractService creates an ExtractService around one shared engine.
func NewExtractService(engine *extract.Engine) ExtractService {
	return &extractService{engine: engine}
}

func (s *extractService) ExtractDocument(ctx context.Context, text, filename string, filter domain.JobFilter) *ExtractOutcome {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		// Nothing to extract from: scanned image with no text layer,
		// binary noise, or an empty upload.
		return &ExtractOutcome{
			Platform: domain.PlatformUnknown,
			Status:   domain.RowError,
			Row:      peak.NewRow().Normalized(),
			Errors:   []string{"เอกสารไม่มีข้อความให้อ่าน"},
		}
	}

	clientTax := vendormap.DetectClient(normalized)
	res := s.engine.Extract(text, filename, clientTax)

	// Wallet resolution keys on the seller account the document named.
	if code := vendormap.WalletCode(clientTax, vendormap.WalletQuery{
		SellerID: res.SellerID,
		ShopName: res.ShopName,
		Platform: string(res.Platform),
		Text:     normalized,
	}); code != "" {
		res.Row.PaymentMethod = code
	}

	out := &ExtractOutcome{
		Platform:  res.Platform,
		ClientTax: clientTax,
		Row:       res.Row,
		Errors:    res.Errors,
		SellerID:  res.SellerID,
	}

	// Job filters force review instead of discarding: a mismatched
	// document still surfaces, it just never auto-imports.
	if msg := filterMismatch(filter, clientTax, res.Platform); msg != "" {
		out.Errors = append(out.Errors, msg)
	}

	switch {
	case res.Row.NeedsReview(), len(out.Errors) > 0:
		out.Status = domain.RowNeedsReview
	default:
		out.Status = domain.RowOK
	}
	return out
}

// filterMismatch checks a document against the job's company/platform
// filter and returns a review message on mismatch, "" otherwise.
func filterMismatch(filter domain.JobFilter, clientTax string, platform domain.Platform) string {
	if len(filter.Companies) > 0 {
		name := vendormap.ClientName(clientTax)
		if !containsFold(filter.Companies, name) {
			return "เอกสารไม่ตรงกับบริษัทที่เลือก (" + name + ")"
		}
	}
	if len(filter.Platforms) > 0 && !containsFold(filter.Platforms, string(platform)) {
		return "เอกสารไม่ตรงกับแพลตฟอร์มที่เลือก (" + string(platform) + ")"
	}
	return ""
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}
