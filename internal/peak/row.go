// Package peak defines the canonical accounting row produced for every
// document: one flat record whose fields mirror the PEAK import sheet
// column for column. Everything is a string in the exact form the sheet
// expects; extraction and normalization happen upstream.
package peak

import (
	"encoding/json"
	"strings"

	"peakbridge/internal/parse"
)

// Row is one PEAK import line. JSON keys double as the stable column
// identifiers used in stored row data and in the export sheet order.
type Row struct {
	Seq             string `json:"A_seq"`
	DocDate         string `json:"B_doc_date"`
	Reference       string `json:"C_reference"`
	VendorCode      string `json:"D_vendor_code"`
	TaxID           string `json:"E_tax_id_13"`
	Branch          string `json:"F_branch_5"`
	InvoiceNo       string `json:"G_invoice_no"`
	InvoiceDate     string `json:"H_invoice_date"`
	TaxPurchaseDate string `json:"I_tax_purchase_date"`
	PriceType       string `json:"J_price_type"`
	Account         string `json:"K_account"`
	Description     string `json:"L_description"`
	Quantity        string `json:"M_qty"`
	UnitPrice       string `json:"N_unit_price"`
	VATRate         string `json:"O_vat_rate"`
	WHT             string `json:"P_wht"`
	PaymentMethod   string `json:"Q_payment_method"`
	PaidAmount      string `json:"R_paid_amount"`
	PND             string `json:"S_pnd"`
	Note            string `json:"T_note"`
	Group           string `json:"U_group"`
}

// NewRow returns a row carrying the sheet defaults.
func NewRow() Row {
	return Row{PriceType: "1", Quantity: "1"}
}

// Map flattens the row into column-key form for export and patching.
func (r Row) Map() map[string]string {
	b, _ := json.Marshal(r)
	m := map[string]string{}
	_ = json.Unmarshal(b, &m)
	return m
}

// FromMap builds a row from column-key form, ignoring unknown keys.
func FromMap(m map[string]string) Row {
	b, _ := json.Marshal(m)
	var r Row
	_ = json.Unmarshal(b, &r)
	return r
}

// CompactRef strips every whitespace run from a reference so split
// document numbers ("TRS2512 1765326") compare and export as one token.
func CompactRef(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Normalized applies the final sheet-shape rules to every column and
// returns the cleaned row. It never invents data beyond the documented
// defaults and cross-fallbacks, and it is idempotent.
func (r Row) Normalized() Row {
	r.DocDate = clipDigits(r.DocDate, 8)
	r.InvoiceDate = clipDigits(r.InvoiceDate, 8)
	r.TaxPurchaseDate = clipDigits(r.TaxPurchaseDate, 8)
	r.TaxID = clipDigits(r.TaxID, 13)

	if b := parse.DigitsOnly(r.Branch); b != "" {
		r.Branch = leftPad(b, 5)[:5]
	} else {
		r.Branch = "00000"
	}

	switch r.PriceType {
	case "1", "2", "3":
	default:
		r.PriceType = "1"
	}

	switch v := strings.ToUpper(strings.TrimSpace(r.VATRate)); {
	case v == "NO" || v == "0" || v == "NONE":
		r.VATRate = "NO"
	case v == "" || strings.Contains(v, "7"):
		r.VATRate = "7%"
	}

	if strings.TrimSpace(r.Quantity) == "" {
		r.Quantity = "1"
	}

	// Unit price and paid amount back-fill each other; a document that
	// yields neither exports as zero so the sheet still imports.
	r.UnitPrice = strings.TrimSpace(r.UnitPrice)
	r.PaidAmount = strings.TrimSpace(r.PaidAmount)
	if r.UnitPrice == "" {
		r.UnitPrice = r.PaidAmount
	}
	if r.PaidAmount == "" {
		r.PaidAmount = r.UnitPrice
	}
	if r.UnitPrice == "" {
		r.UnitPrice = "0"
		r.PaidAmount = "0"
	}

	r.Reference = CompactRef(r.Reference)
	r.InvoiceNo = CompactRef(r.InvoiceNo)
	if r.Reference == "" {
		r.Reference = r.InvoiceNo
	}
	if r.InvoiceNo == "" {
		r.InvoiceNo = r.Reference
	}
	return r
}

func clipDigits(s string, n int) string {
	d := parse.DigitsOnly(s)
	if len(d) > n {
		return d[:n]
	}
	return d
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}
