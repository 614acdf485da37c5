package extract

import (
	"regexp"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/feeline"
	"peakbridge/internal/pattern"
	"peakbridge/internal/peak"
	"peakbridge/internal/reconcile"
	"peakbridge/internal/vendormap"
)

// profile parameterizes the shared pipeline for one platform. Vendor
// identity, the reference builder and the note texture are the only
// parts that genuinely differ between platforms; everything else is the
// same walk through the pattern bank.
type profile struct {
	platform  domain.Platform
	brand     string   // display name, also the vendor-code mapping hint
	aliases   []string // lowercase tokens accepted in the document's legal name
	vendorTax string   // registered tax id used when the document shows none

	// vendor overrides the default identity resolution (brand window
	// plus registered id). Used by the generic path, which has no brand.
	vendor func(in Input, clientTax string) (taxID, code string)

	docDate   pattern.Chain
	reference func(in Input) string
	totals    func(text string) reconcile.Totals
	vatRate   func(text string) string // "" keeps the 7% default

	fees        *feeline.Scanner
	columnFees  bool   // try the four-column fee table before the plain shape
	placeholder string // description when no fee line matched

	payment string // literal channel; "" reads the payment-method chain
	group   func(desc string) string
}

// run is the fixed extraction pipeline. Order matters: the reference and
// totals steps consume vendor-specific patterns first and only then fall
// back to the generic bank, and the note is assembled last from whatever
// the earlier steps flagged.
func (p profile) run(in Input) Result {
	t := in.Text
	row := peak.NewRow()
	var notes []string

	clientTax := in.ClientTax
	if clientTax == "" {
		clientTax = vendormap.DetectClient(t)
	}

	// Vendor identity. The registered id is authoritative unless the
	// document prints one next to the brand name. Never the buyer's.
	if p.vendor != nil {
		row.TaxID, row.VendorCode = p.vendor(in, clientTax)
	} else {
		vendorTax := vendorTaxNear(t, p.aliases)
		if vendorTax == "" {
			vendorTax = p.vendorTax
		}
		row.TaxID = vendorTax
		row.VendorCode = vendormap.VendorCode(clientTax, vendorTax, p.brand)
	}

	if len(p.aliases) > 0 {
		if name := companyName(t); name != "" && !containsFold(name, p.aliases) {
			notes = append(notes, "ชื่อผู้ขายในเอกสาร: "+name)
		}
	}

	row.Branch = pattern.BranchCode.Find(t)
	if row.Branch == "" {
		row.Branch = "00000"
	}

	// One resolved date fills all three date columns.
	date := p.docDate.Find(t)
	if date == "" {
		date = pattern.DocDate.Find(t)
	}
	if date == "" {
		date = pattern.InvoiceDate.Find(t)
	}
	if date == "" {
		date = pattern.BestDate(t)
	}
	row.DocDate, row.InvoiceDate, row.TaxPurchaseDate = date, date, date

	ref := ""
	if p.reference != nil {
		ref = p.reference(in)
	}
	if ref == "" {
		ref = peak.CompactRef(pattern.DocNumber.Find(t))
	}
	if ref == "" && in.Hints != nil {
		ref = in.Hints.DocNumber(p.platform)
	}
	row.InvoiceNo = ref
	row.Reference = ref

	var tot reconcile.Totals
	if p.totals != nil {
		tot = p.totals(t)
	}
	if tot == (reconcile.Totals{}) {
		tot = reconcile.Totals{
			Subtotal: pattern.Subtotal.Find(t),
			VAT:      pattern.VATAmount.Find(t),
			Total:    pattern.GrandTotal.Find(t),
		}
	}
	tot = reconcile.Fill(tot)

	switch {
	case tot.Subtotal != "":
		row.UnitPrice = tot.Subtotal
	case tot.Total != "":
		row.UnitPrice = tot.Total
	case tot.VAT != "":
		row.UnitPrice = tot.VAT
	default:
		row.UnitPrice = "0"
	}
	switch {
	case tot.Total != "":
		row.PaidAmount = tot.Total
	case tot.Subtotal != "":
		row.PaidAmount = tot.Subtotal
	default:
		row.PaidAmount = row.UnitPrice
	}

	row.VATRate = "7%"
	if p.vatRate != nil {
		if v := p.vatRate(t); v != "" {
			row.VATRate = v
		}
	}

	// Withholding: an extracted amount is trusted as-is and never
	// recomputed from the rate. A bare rate is only ever a note.
	if rate, amount := pattern.WithholdingAmount(t); amount != "" {
		row.WHT = amount
		row.PND = "53"
		notes = append(notes, "หัก ณ ที่จ่าย "+rate)
	} else if rate := pattern.WithholdingRate(t); rate != "" {
		row.PND = "53"
		notes = append(notes, "หัก ณ ที่จ่าย "+rate)
	}

	sellerID, shopName := sellerIdentity(t)

	var fees []feeline.Fee
	if p.fees != nil {
		if p.columnFees {
			fees = p.fees.ScanColumns(t)
		}
		if len(fees) == 0 {
			fees = p.fees.Scan(t)
		}
	}
	switch {
	case p.fees != nil && len(fees) > 0:
		row.Description = p.fees.Summary(fees)
	case p.brand != "" && sellerID != "":
		row.Description = vendormap.ShortDescription(p.brand, p.placeholder, "Seller ID: "+sellerID)
	default:
		row.Description = p.placeholder
	}
	if p.group != nil {
		row.Group = p.group(row.Description)
	}

	if p.payment != "" {
		row.PaymentMethod = p.payment
	} else {
		row.PaymentMethod = pattern.PaymentMethod.Find(t)
	}

	row.Note = buildNote(notes, fees)

	return Result{Platform: p.platform, Row: row, SellerID: sellerID, ShopName: shopName}
}

// buildNote joins annotations with " | " and appends the fee detail as
// its own lines.
func buildNote(notes []string, fees []feeline.Fee) string {
	head := strings.Join(notes, " | ")
	detail := feeline.Note(fees)
	switch {
	case head == "":
		return detail
	case detail == "":
		return head
	}
	return head + "\n" + detail
}

// vendorTaxNear looks for a tax id printed shortly after the brand name.
// Client ids never qualify; a marketplace invoice always carries the
// buyer's id somewhere too.
func vendorTaxNear(t string, aliases []string) string {
	low := strings.ToLower(t)
	for _, alias := range aliases {
		idx := strings.Index(low, alias)
		if idx < 0 {
			continue
		}
		end := idx + 400
		if end > len(low) {
			end = len(low)
		}
		id := pattern.SellerTaxID.Find(low[idx:end])
		if id != "" && !vendormap.IsClient(id) {
			return id
		}
	}
	return ""
}

var reCompanyName = regexp.MustCompile(`(บริษัท[^0-9\n]{2,100}?)[ \t]*(?:เลขประจำตัวผู้เสียภาษี|Tax[ \t]*ID)`)

// companyName pulls the legal name printed before the tax id label.
func companyName(t string) string {
	m := reCompanyName.FindStringSubmatch(t)
	if m == nil {
		return ""
	}
	name := strings.Join(strings.Fields(m[1]), " ")
	r := []rune(name)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r)
}

func containsFold(s string, tokens []string) bool {
	low := strings.ToLower(s)
	for _, tok := range tokens {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return false
}

var (
	reSellerID = regexp.MustCompile(`(?i)(?:Seller\s*ID|Shop\s*ID|รหัสร้านค้า)\s*[:#：]?\s*([0-9]{8,12})`)
	reShopName = regexp.MustCompile(`(?i)(?:Username|Shop\s*name|User\s*name|ชื่อผู้ใช้|ชื่อร้าน)\s*[:#：]?\s*([A-Za-z0-9_\-.]{3,30})`)
)

// sellerIdentity finds the labelled seller account on the document.
// The id is what wallet mapping keys on; the shop name is its fallback.
func sellerIdentity(t string) (id, name string) {
	if m := reSellerID.FindStringSubmatch(t); m != nil {
		id = m[1]
	}
	if m := reShopName.FindStringSubmatch(t); m != nil {
		name = m[1]
	}
	if id == "" {
		id = vendormap.SellerIDFromText(t)
	}
	return id, name
}
