package extract

import (
	"regexp"

	"peakbridge/internal/domain"
	"peakbridge/internal/feeline"
	"peakbridge/internal/parse"
	"peakbridge/internal/pattern"
	"peakbridge/internal/peak"
	"peakbridge/internal/reconcile"
	"peakbridge/internal/vendormap"
)

// Shopee document numbers come in two families: TIV/TIR tax invoices and
// TRS receipts whose running code (MMDD-XXXXXXX) is often printed on the
// next line. The reference must carry both parts glued together with no
// whitespace left between them.
var (
	reShopeeDocTI     = regexp.MustCompile(`(?i)\b((?:Shopee-)?TI[VR]-[A-Z0-9]+-\d{5}-\d{6}-\d{7,})\b`)
	reShopeeDocTRS    = regexp.MustCompile(`(?i)\b(TRS[A-Z0-9\-/]{10,})\b`)
	reShopeeDocStrict = regexp.MustCompile(`(?i)\b((?:Shopee-)?TI[VR]-[A-Z0-9]+-\d{5}-\d{6}-\d{7,}|TRS[A-Z0-9\-/]{10,})\b`)
	reShopeeRefCode   = regexp.MustCompile(`\b(\d{4})\s*-\s*(\d{7})\b`)
	reShopeeFullRef   = regexp.MustCompile(`(?i)\b(TRS[A-Z0-9\-/]{10,})\s+(\d{4})\s*-\s*(\d{7})\b`)
)

var shopeeDocDate = pattern.New("shopee_doc_date", parse.Date,
	`(?i)(?:วันที่(?:เอกสาร|ออกเอกสาร)?|Date\s*(?:of\s*issue)?|Issue\s*date|Document\s*date)\s*[:#：]?\s*(\d{1,2}[\-/.]\d{1,2}[\-/.]\d{4}|\d{4}[\-/.]\d{1,2}[\-/.]\d{1,2})`,
	`(?i)(?:วันที่ใบกำกับ(?:ภาษี)?|Invoice\s*date|Tax\s*Invoice\s*date)\s*[:#：]?\s*(\d{1,2}[\-/.]\d{1,2}[\-/.]\d{4}|\d{4}[\-/.]\d{1,2}[\-/.]\d{1,2})`,
)

// Summary block at the bottom of a Shopee invoice. These lines are the
// only trustworthy money source; the body repeats per-order amounts.
var (
	reShopeeSumExcl = regexp.MustCompile(`(?i)Total\s*Value\s*of\s*Services\s*\(Excluded\s*VAT\)\s*([0-9,]+(?:\.[0-9]{2})?)`)
	reShopeeSumDisc = regexp.MustCompile(`(?i)Excluded\s*VAT\)\s*after\s*discount\s*([0-9,]+(?:\.[0-9]{2})?)`)
	reShopeeSumVAT  = regexp.MustCompile(`(?i)(?:VAT\s*7%\s*|ภาษีมูลค่าเพิ่ม\s*7%\s*)([0-9,]+(?:\.[0-9]{2})?)`)
	reShopeeSumIncl = regexp.MustCompile(`(?i)Total\s*Value\s*of\s*Services\s*\(Included\s*VAT\)\s*([0-9,]+(?:\.[0-9]{2})?)`)
)

var shopeeFees = feeline.NewScanner("Shopee Fees", 5,
	`commission|transaction\s*fee|service\s*fee|payment\s*fee|program|package|ams|ค่าธรรมเนียม|ค่าบริการ|ค่าคอมมิชชั่น`)

type shopee struct {
	profile
}

// NewShopee builds the Shopee marketplace strategy.
func NewShopee() Strategy {
	s := &shopee{}
	s.profile = profile{
		platform:    domain.PlatformShopee,
		brand:       "Shopee",
		aliases:     []string{"shopee", "ช้อปปี้"},
		vendorTax:   vendormap.VendorShopee,
		docDate:     shopeeDocDate,
		reference:   s.reference,
		totals:      shopeeTotals,
		fees:        &shopeeFees,
		placeholder: "Marketplace Expense",
		payment:     "หักจากยอดขาย",
		group: func(desc string) string {
			return vendormap.ExpenseCategory(desc, string(domain.PlatformShopee))
		},
	}
	return s
}

func (s *shopee) Platform() domain.Platform { return domain.PlatformShopee }

func (s *shopee) Extract(in Input) Result { return s.profile.run(in) }

func (s *shopee) reference(in Input) string {
	return shopeeReference(in.Text, in.Filename)
}

// shopeeReference builds DOCNO + MMDD-XXXXXXX, falling back to the
// filename when the text has nothing usable.
func shopeeReference(t, filename string) string {
	// TRS immediately followed by its running code.
	if m := reShopeeFullRef.FindStringSubmatch(t); m != nil {
		return peak.CompactRef(m[1] + m[2] + "-" + m[3])
	}
	// Full TIV/TIR token, already self-contained.
	if m := reShopeeDocTI.FindStringSubmatch(t); m != nil {
		return peak.CompactRef(m[1])
	}
	// TRS plus a running code found anywhere in the document.
	if m := reShopeeDocTRS.FindStringSubmatch(t); m != nil {
		doc := m[1]
		if c := reShopeeRefCode.FindStringSubmatch(t); c != nil {
			return peak.CompactRef(doc + c[1] + "-" + c[2])
		}
		return peak.CompactRef(doc)
	}
	// Filename fallbacks, same priority.
	if m := reShopeeFullRef.FindStringSubmatch(filename); m != nil {
		return peak.CompactRef(m[1] + m[2] + "-" + m[3])
	}
	if m := reShopeeDocTRS.FindStringSubmatch(filename); m != nil {
		doc := m[1]
		if c := reShopeeRefCode.FindStringSubmatch(filename); c != nil {
			return peak.CompactRef(doc + c[1] + "-" + c[2])
		}
		return peak.CompactRef(doc)
	}
	if m := reShopeeDocTI.FindStringSubmatch(filename); m != nil {
		return peak.CompactRef(m[1])
	}
	return ""
}

// shopeeTotals reads the summary block. A zero result tells the pipeline
// to consult the generic bank instead.
func shopeeTotals(t string) reconcile.Totals {
	var tot reconcile.Totals
	if m := reShopeeSumExcl.FindStringSubmatch(t); m != nil {
		tot.Subtotal = parse.Money(m[1])
	}
	if tot.Subtotal == "" {
		if m := reShopeeSumDisc.FindStringSubmatch(t); m != nil {
			tot.Subtotal = parse.Money(m[1])
		}
	}
	if m := reShopeeSumVAT.FindStringSubmatch(t); m != nil {
		tot.VAT = parse.Money(m[1])
	}
	if m := reShopeeSumIncl.FindStringSubmatch(t); m != nil {
		tot.Total = parse.Money(m[1])
	}
	return tot
}
