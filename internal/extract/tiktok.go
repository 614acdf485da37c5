package extract

import (
	"regexp"

	"peakbridge/internal/domain"
	"peakbridge/internal/feeline"
	"peakbridge/internal/peak"
	"peakbridge/internal/vendormap"
)

// TikTok Shop invoices carry a self-contained TTSTH document number;
// totals and dates follow the common labelled layout the bank already
// knows, so the strategy stays thin.
var (
	reTikTokDocNo     = regexp.MustCompile(`(?i)\b(TTSTH[0-9A-Z][0-9A-Z\-/]{4,})\b`)
	reTikTokInvoiceNo = regexp.MustCompile(`(?i)(?:Invoice\s*(?:No\.?|Number)|เลขที่ใบแจ้งหนี้)\s*[:#：]?\s*([A-Z0-9][A-Z0-9\-/]{5,39})`)
)

var tiktokFees = feeline.NewScanner("TikTok Fees", 5,
	`commission|transaction\s*fee|service\s*fee|affiliate|promotion|voucher|ads|ค่าธรรมเนียม|ค่าบริการ|ค่าคอมมิชชั่น`)

type tiktok struct {
	profile
}

// NewTikTok builds the TikTok Shop strategy.
func NewTikTok() Strategy {
	s := &tiktok{}
	s.profile = profile{
		platform:    domain.PlatformTikTok,
		brand:       "TikTok",
		aliases:     []string{"tiktok", "ติ๊กต็อก", "ติ๊กตอก"},
		vendorTax:   vendormap.VendorTikTok,
		reference:   tiktokReference,
		fees:        &tiktokFees,
		placeholder: "Marketplace Expense",
		payment:     "หักจากยอดขาย",
		group: func(desc string) string {
			return vendormap.ExpenseCategory(desc, string(domain.PlatformTikTok))
		},
	}
	return s
}

func (s *tiktok) Platform() domain.Platform { return domain.PlatformTikTok }

func (s *tiktok) Extract(in Input) Result { return s.profile.run(in) }

func tiktokReference(in Input) string {
	if m := reTikTokDocNo.FindStringSubmatch(in.Text); m != nil {
		return peak.CompactRef(m[1])
	}
	if m := reTikTokInvoiceNo.FindStringSubmatch(in.Text); m != nil {
		return peak.CompactRef(m[1])
	}
	return ""
}
