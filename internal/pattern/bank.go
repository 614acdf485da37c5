package pattern

import (
	"regexp"
	"strings"

	"peakbridge/internal/parse"
)

// Shared token shapes. Money tokens come in two flavors: moneyAny allows
// integers, moneyDec requires a fraction part. Chains whose keyword can
// be followed by a bare percentage ("VAT 7%") must use moneyDec so the
// rate digit is never mistaken for an amount.
const (
	dateToken = `\b(\d{1,2}[\-/.]\d{1,2}[\-/.]\d{2,4}\b|\d{4}[\-/.]\d{1,2}[\-/.]\d{1,2}\b|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}\b|\d{1,2}\s+[A-Za-z]{3,9}\.?,?\s+\d{4}\b|\d{8}\b)`
	moneyAny  = `฿?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`
	moneyDec  = `฿?\s*([0-9][0-9,]*\.[0-9]+)`
	refToken  = `([A-Za-z0-9][A-Za-z0-9\-/.]{3,39})`
	taxRun    = `([0-9][0-9 \-.]{9,18}[0-9])`
	sep       = `\s*[:#：]?\s*`
)

// Generic field chains, shared by every vendor strategy as the tail of
// its fallback order. Vendor-strict shapes live with their strategies.
var (
	DocNumber = New("doc_number", nil,
		`(?i)(?:tax\s*invoice|invoice|receipt|document)\s*(?:no|number|#)\.?`+sep+refToken,
		`(?:เลขที่เอกสาร|เลขที่ใบกำกับภาษี|เลขที่ใบกำกับ|เลขที่ใบเสร็จ|เลขที่)`+sep+refToken,
	)

	DocDate = New("doc_date", parse.Date,
		`(?i)(?:วันที่เอกสาร|วันที่ออกเอกสาร|document\s*date|issue\s*date|date\s*of\s*issue)`+sep+dateToken,
		`(?i)(?:ใบเสร็จวันที่|วันที่)`+sep+dateToken,
		`(?i)\bdate\b`+sep+dateToken,
	)

	InvoiceDate = New("invoice_date", parse.Date,
		`(?i)(?:วันที่ใบกำกับภาษี|วันที่ใบกำกับ|tax\s*invoice\s*date|invoice\s*date)`+sep+dateToken,
	)

	GrandTotal = New("grand_total", parse.Money,
		`(?i)(?:รวมทั้งสิ้น|รวมเป็นเงินทั้งสิ้น|จำนวนเงินรวมทั้งสิ้น|grand\s*total|amount\s*due|total\s*amount\s*(?:due|payable))`+sep+moneyAny,
		`(?i)(?:\(?(?:including|included|incl\.?)\s*(?:vat|tax)\)?|จำนวนเงินรวม\s*\(?รวมภาษี(?:มูลค่าเพิ่ม)?\)?)`+sep+moneyAny,
		`(?i)(?:รวมยอดที่ต้องชำระ|ยอดรวมสุทธิ|จำนวนเงินรวม|ยอดรวม|total)`+sep+moneyAny,
	)

	Subtotal = New("subtotal", parse.Money,
		`(?i)(?:sub\s*total|subtotal|total\s*\(?excluding\s*vat\)?|total\s*excluding\s*vat|ยอดรวมก่อนภาษี|มูลค่าก่อนภาษี|ยอดก่อนภาษี|ราคาก่อนภาษี)`+sep+moneyAny,
		`(?i)excluded\s*vat\)?(?:\s*after\s*discount)?`+sep+moneyAny,
	)

	VATAmount = New("vat_amount", parse.Money,
		`(?i)(?:vat|ภาษีมูลค่าเพิ่ม)\s*\(?7\s*%\)?`+sep+moneyAny,
		`(?i)ภาษีมูลค่าเพิ่ม`+sep+moneyDec,
		`(?i)\bvat\b`+sep+moneyDec,
	)

	PaymentMethod = New("payment_method", strings.TrimSpace,
		`\b(EWL\d{3})\b`,
		`(?i)(?:ชำระโดย|ชำระเงินโดย|payment\s*method|paid\s*by)`+sep+
			`(เงินสด|โอนเงิน|โอน|บัตรเครดิต|พร้อมเพย์|หักจากยอดขาย|cash|credit\s*card|card|bank\s*transfer|transfer|qr\s*code|qr|promptpay|e-?wallet)`,
	)

	SellerTaxID = New("seller_tax_id", parse.TaxID,
		`(?i)(?:เลขประจำตัวผู้เสียภาษี(?:อากร)?|เลขผู้เสียภาษี|เลขทะเบียนนิติบุคคล|tax\s*(?:id|identification)(?:\s*(?:no|number))?\.?)`+sep+taxRun,
	)

	BranchCode = New("branch", parse.Branch,
		`(?i)(สำนักงานใหญ่|head\s*office)`,
		`(?i)(?:สาขาที่|สาขา|branch\s*(?:no\.?|number)?)`+sep+`([0-9]{1,5})\b`,
	)
)

// Withholding-tax matchers carry two groups (rate, amount) and so do not
// fit the single-value Chain shape.
var reWHTAmount = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:หัก|ภาษี)(?:ภาษีเงินได้)?\s*ณ?\s*ที่จ่าย.*?(?:อัตรา(?:ร้อยละ)?|ร้อยละ)\s*(\d{1,2})\s*%.*?(?:เป็นจำนวนเงิน|เป็นจำนวน|จำนวน|เป็นเงิน)\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?is)withholding\s+tax.*?(\d{1,2})\s*%.*?(?:at|=|of)\s*([0-9,]+(?:\.[0-9]{1,2})?)\s*(?:THB|บาท)?`),
	regexp.MustCompile(`(?i)(?:withholding\s*tax|หัก\s*ณ\s*ที่จ่าย|wht)` + sep + `(\d{1,2})\s*%\s*` + moneyAny),
}

var reWHTRate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:withholding\s*tax|หักภาษี\s*ณ\s*ที่จ่าย|หัก\s*ณ\s*ที่จ่าย|wht)` + sep + `(\d{1,2})\s*%`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*%\s*(?:withholding|wht|หัก\s*ณ\s*ที่จ่าย)`),
}

// WithholdingAmount finds an amount-bearing withholding-tax statement
// and returns the stated rate ("3%") and the normalized amount. Both are
// empty when no amount-bearing match exists; rate-only statements are
// WithholdingRate's job.
func WithholdingAmount(text string) (rate, amount string) {
	for _, re := range reWHTAmount {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amt := parse.Money(m[2])
		if amt == "" {
			continue
		}
		return m[1] + "%", amt
	}
	return "", ""
}

// WithholdingRate finds a bare withholding rate with no amount nearby.
// The result annotates the row's note and forces the PND code; it is
// never written into a numeric column.
func WithholdingRate(text string) string {
	for _, re := range reWHTRate {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + "%"
		}
	}
	return ""
}

// Date tokens for the anywhere-in-text scan. Bare 8-digit runs are only
// considered when they start with "20"; otherwise they are far more
// likely to be document identifiers.
var reAnyDate = regexp.MustCompile(
	`\b(\d{1,2}[\-/.]\d{1,2}[\-/.]\d{2,4}\b|\d{4}[\-/.]\d{1,2}[\-/.]\d{1,2}\b|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}\b|\d{1,2}\s+[A-Za-z]{3,9}\.?,?\s+\d{4}\b|20\d{6}\b)`)

// BestDate scans the whole text for date-shaped tokens and returns the
// first one that parses to a common-era 20xx date, falling back to the
// first token that parses at all.
func BestDate(text string) string {
	first := ""
	for _, m := range reAnyDate.FindAllString(text, 40) {
		v := parse.Date(m)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "20") {
			return v
		}
		if first == "" {
			first = v
		}
	}
	return first
}
