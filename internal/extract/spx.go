package extract

import (
	"regexp"

	"peakbridge/internal/domain"
	"peakbridge/internal/parse"
	"peakbridge/internal/pattern"
	"peakbridge/internal/peak"
	"peakbridge/internal/reconcile"
	"peakbridge/internal/vendormap"
)

// SPX shipping receipts label the document number with เลขที่ or No.,
// and the running MMDD-XXXXXXX code follows, often on the next line.
var (
	reSPXDocNo   = regexp.MustCompile(`(?i)(?:เลขที่|No\.?)\s*[:#：]?\s*(RCS[A-Z0-9\-/]{8,})`)
	reSPXDocBare = regexp.MustCompile(`(?i)(RCS[A-Z0-9\-/]{8,})`)
	reSPXRefCode = regexp.MustCompile(`\b(\d{4})\s*-\s*(\d{7})\b`)
	reSPXFullRef = regexp.MustCompile(`(?i)\b(RCS[A-Z0-9\-/]{8,})\s+(\d{4})\s*-\s*(\d{7})\b`)
)

// The totals block on an SPX receipt sits right next to the withholding
// clause and shares its vocabulary, so every money match is rejected
// when a withholding keyword appears within the surrounding window.
var (
	reSPXTotalInc = regexp.MustCompile(`(?i)(?:รวม\s*ทั้ง\s*สิ้น|จำนวนเงินรวม\s*\(รวม\s*ภาษี(?:มูลค่าเพิ่ม)?\)?|Total\s*(?:amount)?\s*\(?(?:including|incl\.?)\s*VAT\)?|Grand\s*Total)\s*[:#：]?\s*฿?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	reSPXTotalEx  = regexp.MustCompile(`(?i)(?:ก่อน\s*ภาษี|ยอดรวม\s*\(ไม่รวม\s*ภาษี(?:มูลค่าเพิ่ม)?\)?|Subtotal\s*\(?(?:excluding|excl\.?)\s*VAT\)?|Total\s*excluding\s*VAT)\s*[:#：]?\s*฿?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	reSPXVAT      = regexp.MustCompile(`(?i)(?:ภาษีมูลค่าเพิ่ม|VAT)\s*(?:@?\s*7\s*%)?\s*[:#：]?\s*฿?\s*([0-9,]+\.[0-9]{1,2})`)
	reSPXTotalAny = regexp.MustCompile(`(?i)(?:จำนวนเงินรวม|Total\s*amount)\s*[:#：]?\s*฿?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	reSPXWHTHint  = regexp.MustCompile(`(?i)withholding\s+tax|หักภาษี|ณ\s*ที่จ่าย|wht`)
)

type spx struct {
	profile
}

// NewSPX builds the SPX Express shipping strategy.
func NewSPX() Strategy {
	s := &spx{}
	s.profile = profile{
		platform:    domain.PlatformSPX,
		brand:       "SPX",
		aliases:     []string{"spx", "เอสพีเอ็กซ์"},
		vendorTax:   vendormap.VendorSPX,
		reference:   s.reference,
		totals:      spxTotals,
		placeholder: "Marketplace Expense",
		payment:     "หักจากยอดขาย",
		group: func(desc string) string {
			return vendormap.ExpenseCategory(desc, string(domain.PlatformSPX))
		},
	}
	return s
}

func (s *spx) Platform() domain.Platform { return domain.PlatformSPX }

func (s *spx) Extract(in Input) Result { return s.profile.run(in) }

func (s *spx) reference(in Input) string {
	return spxReference(in.Text, in.Filename)
}

// spxReference builds DOCNO + MMDD-XXXXXXX with text first, filename
// second and a squashed-text sweep as the last attempt.
func spxReference(t, filename string) string {
	if m := reSPXFullRef.FindStringSubmatch(t); m != nil {
		return peak.CompactRef(m[1] + m[2] + "-" + m[3])
	}
	if m := reSPXDocNo.FindStringSubmatch(t); m != nil {
		doc := m[1]
		if c := reSPXRefCode.FindStringSubmatch(t); c != nil {
			return peak.CompactRef(doc + c[1] + "-" + c[2])
		}
		return peak.CompactRef(doc)
	}
	if m := reSPXFullRef.FindStringSubmatch(filename); m != nil {
		return peak.CompactRef(m[1] + m[2] + "-" + m[3])
	}
	if m := reSPXDocNo.FindStringSubmatch(filename); m != nil {
		doc := m[1]
		if c := reSPXRefCode.FindStringSubmatch(filename); c != nil {
			return peak.CompactRef(doc + c[1] + "-" + c[2])
		}
		return peak.CompactRef(doc)
	}
	sq := peak.CompactRef(t)
	if m := reSPXDocBare.FindStringSubmatch(sq); m != nil {
		if c := reSPXRefCode.FindStringSubmatch(sq); c != nil {
			return m[1] + c[1] + "-" + c[2]
		}
	}
	return ""
}

func spxTotals(t string) reconcile.Totals {
	var tot reconcile.Totals
	tot.Total = spxAmount(reSPXTotalInc, t, 60)
	tot.Subtotal = spxAmount(reSPXTotalEx, t, 60)
	tot.VAT = spxAmount(reSPXVAT, t, 60)

	if tot.Total == "" {
		if v := spxAmount(reSPXTotalAny, t, 80); v != "" {
			// A fallback total equal to the withholding amount is the
			// classic misread on these receipts.
			if _, wht := pattern.WithholdingAmount(t); v != wht {
				tot.Total = v
			}
		}
	}
	return tot
}

// spxAmount applies re and rejects a match that sits inside a
// withholding clause.
func spxAmount(re *regexp.Regexp, t string, window int) string {
	loc := re.FindStringSubmatchIndex(t)
	if loc == nil {
		return ""
	}
	start := loc[0] - window
	if start < 0 {
		start = 0
	}
	end := loc[1] + window
	if end > len(t) {
		end = len(t)
	}
	if reSPXWHTHint.MatchString(t[start:end]) {
		return ""
	}
	return parse.Money(t[loc[2]:loc[3]])
}
