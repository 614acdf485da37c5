package peak

import "peakbridge/internal/parse"

// Review-facing messages, in the wording the operations team reads.
const (
	MsgBadDocDate     = "วันที่เอกสารรูปแบบไม่ถูกต้อง"
	MsgBadInvoiceDate = "วันที่ใบกำกับฯรูปแบบไม่ถูกต้อง"
	MsgBadTaxDate     = "วันที่ภาษีซื้อรูปแบบไม่ถูกต้อง"
	MsgBadBranch      = "เลขสาขาไม่ใช่ 5 หลัก"
	MsgBadTaxID       = "เลขภาษีไม่ใช่ 13 หลัก"
	MsgBadPriceType   = "ประเภทราคาไม่ถูกต้อง"
	MsgBadVATRate     = "อัตราภาษีไม่ถูกต้อง"
)

// Problems reports every malformed column on the row. Empty values pass:
// emptiness is a review condition, not a format error.
func (r Row) Problems() []string {
	var out []string
	if !parse.ValidDate8(r.DocDate) {
		out = append(out, MsgBadDocDate)
	}
	if !parse.ValidDate8(r.InvoiceDate) {
		out = append(out, MsgBadInvoiceDate)
	}
	if !parse.ValidDate8(r.TaxPurchaseDate) {
		out = append(out, MsgBadTaxDate)
	}
	if r.Branch != "" && !parse.ValidBranch5(r.Branch) {
		out = append(out, MsgBadBranch)
	}
	if r.TaxID != "" && !parse.ValidTax13(r.TaxID) {
		out = append(out, MsgBadTaxID)
	}
	if !parse.ValidPriceType(r.PriceType) {
		out = append(out, MsgBadPriceType)
	}
	if !parse.ValidVATRate(r.VATRate) {
		out = append(out, MsgBadVATRate)
	}
	return out
}

// NeedsReview reports whether a key field a bookkeeper cannot fill from
// context is missing: the counterparty tax id, the invoice number, or
// the paid amount. A zero paid amount counts as missing.
func (r Row) NeedsReview() bool {
	if r.TaxID == "" || r.InvoiceNo == "" {
		return true
	}
	switch r.PaidAmount {
	case "", "0", "0.00":
		return true
	}
	return false
}
