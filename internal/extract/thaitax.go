package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"peakbridge/internal/domain"
	"peakbridge/internal/parse"
	"peakbridge/internal/pattern"
	"peakbridge/internal/reconcile"
)

// The generic Thai tax invoice path handles everything no marketplace
// strategy claims: ads invoices, utility bills, plain ใบกำกับภาษี. There
// is no registered vendor to lean on, so identity comes entirely from
// the document and stays empty when the document is silent.
var (
	reThaiTaxLabel = regexp.MustCompile(`(?i)(?:เลขประจำตัวผู้เสียภาษี(?:อากร)?|เลขผู้เสียภาษี|Tax\s*ID)\s*[:#：]?\s*([0-9][0-9 \-.]{9,18}[0-9])`)
	reBuyerContext = regexp.MustCompile(`(?i)ผู้ซื้อ|ลูกค้า|bill\s*to|customer`)

	// OCR on receipt printers drops characters from รวมยอดที่ต้องชำระ;
	// the optional middle keeps the mangled form matching.
	reThaiGrand     = regexp.MustCompile(`(?:รวมยอดที่ต้(?:องชำ)?ระ|รวมเงินทั้งสิ้น)\s*[:#：]?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	reThaiBareTotal = regexp.MustCompile(`รวม\s*[:#：]?\s*([0-9][0-9,]*\.[0-9]+)`)
)

type thaiTax struct {
	profile
}

// NewThaiTax builds the generic Thai tax invoice strategy.
func NewThaiTax() Strategy {
	s := &thaiTax{}
	s.profile = profile{
		platform:    domain.PlatformOther,
		vendor:      thaiVendor,
		totals:      thaiTotals,
		vatRate:     thaiVATRate,
		placeholder: "Thai Tax Invoice",
	}
	return s
}

func (s *thaiTax) Platform() domain.Platform { return domain.PlatformOther }

func (s *thaiTax) Extract(in Input) Result { return s.profile.run(in) }

// thaiVendor takes the first tax id on the document as the seller's
// unless the surrounding text marks it as the buyer's. The vendor code
// column gets the legal name; there is no registered mapping to consult.
func thaiVendor(in Input, _ string) (string, string) {
	return thaiVendorTax(in.Text), companyName(in.Text)
}

func thaiVendorTax(t string) string {
	for _, loc := range reThaiTaxLabel.FindAllStringSubmatchIndex(t, 6) {
		start := loc[0] - 120
		if start < 0 {
			start = 0
		}
		if reBuyerContext.MatchString(t[start:loc[0]]) {
			continue
		}
		if id := parse.TaxID(t[loc[2]:loc[3]]); id != "" {
			return id
		}
	}
	return ""
}

func thaiTotals(t string) reconcile.Totals {
	tot := reconcile.Totals{
		Subtotal: pattern.Subtotal.Find(t),
		VAT:      pattern.VATAmount.Find(t),
		Total:    pattern.GrandTotal.Find(t),
	}
	if tot.Total == "" {
		if m := reThaiGrand.FindStringSubmatch(t); m != nil {
			tot.Total = parse.Money(m[1])
		}
	}
	if tot.Total == "" {
		if m := reThaiBareTotal.FindStringSubmatch(t); m != nil {
			tot.Total = parse.Money(m[1])
		}
	}
	return tot
}

// thaiVATRate keeps the 7% default unless the document prints a zero
// VAT amount, which marks an exempt sale.
func thaiVATRate(t string) string {
	v := pattern.VATAmount.Find(t)
	if v == "" {
		return "7%"
	}
	if n, err := decimal.NewFromString(v); err == nil && n.IsZero() {
		return "NO"
	}
	return "7%"
}
