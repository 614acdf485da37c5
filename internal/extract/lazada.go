package extract

import (
	"regexp"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/feeline"
	"peakbridge/internal/parse"
	"peakbridge/internal/pattern"
	"peakbridge/internal/peak"
	"peakbridge/internal/reconcile"
	"peakbridge/internal/vendormap"
)

// Lazada references pair a generic document number with a running
// MMDD-XXXXXXX code, frequently split across lines by the PDF text
// layer. Matching runs on a whitespace-squashed copy so the split never
// reaches the sheet. THMPTI tokens are the self-contained fallback.
var (
	reLazadaDocNo     = regexp.MustCompile(`(?i)\b([A-Z0-9]{6,20}-\d{5}-\d{2})\b`)
	reLazadaMMDDSeq   = regexp.MustCompile(`\b(\d{4})\s*-\s*(\d{7})\b`)
	reLazadaTHMPTI    = regexp.MustCompile(`(?i)\b(THMPTI\d{16})\b`)
	reLazadaInvoiceNo = regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:#：]?\s*([A-Z0-9\-/]{8,40})`)
	reLazadaDocAny    = regexp.MustCompile(`(?i)\b(THMPTI\d{16}|[A-Z0-9]{6,20}-\d{5}-\d{2})\b`)

	reLazadaSellerCode = regexp.MustCompile(`\b(TH[A-Z0-9]{8,12})\b`)
)

var lazadaDocDate = pattern.New("lazada_doc_date", parse.Date,
	`(?i)Invoice\s*Date\s*[:#：]?\s*(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})`,
)

// Totals print as their own anchored lines on Lazada seller invoices,
// which makes them the safest money source in the corpus.
var (
	reLazadaSubtotal = regexp.MustCompile(`(?mi)^\s*Total\s+([0-9,]+\.[0-9]{2})\s*$`)
	reLazadaVAT      = regexp.MustCompile(`(?mi)^\s*7%\s*\(VAT\)\s+([0-9,]+\.[0-9]{2})\s*$`)
	reLazadaTotalInc = regexp.MustCompile(`(?mi)^\s*Total\s*\(Including\s*Tax\)\s+([0-9,]+\.[0-9]{2})\s*$`)
)

var lazadaFees = feeline.NewScanner("Lazada Fees", 8,
	`Payment\s*Fee|Commission|Premium\s*Package|LazCoins|Sponsored|Voucher|Marketing|Service|Discovery|Participation|Funded`)

type lazada struct {
	profile
}

// NewLazada builds the Lazada marketplace strategy.
func NewLazada() Strategy {
	s := &lazada{}
	s.profile = profile{
		platform:    domain.PlatformLazada,
		brand:       "Lazada",
		aliases:     []string{"lazada", "ลาซาด้า"},
		vendorTax:   vendormap.VendorLazada,
		docDate:     lazadaDocDate,
		reference:   lazadaReference,
		totals:      lazadaTotals,
		fees:        &lazadaFees,
		columnFees:  true,
		placeholder: "Marketplace Expense",
		payment:     "หักจากยอดขาย",
		group: func(desc string) string {
			return vendormap.ExpenseCategory(desc, string(domain.PlatformLazada))
		},
	}
	return s
}

func (s *lazada) Platform() domain.Platform { return domain.PlatformLazada }

func (s *lazada) Extract(in Input) Result {
	res := s.profile.run(in)
	if res.ShopName == "" {
		res.ShopName = lazadaSellerCode(in.Text)
	}
	return res
}

// lazadaReference joins DOCNO + MMDD-XXXXXXX on a squashed copy of the
// text, so tokens split across lines still glue into one reference.
func lazadaReference(in Input) string {
	sq := peak.CompactRef(in.Text)

	doc := reLazadaDocNo.FindStringSubmatch(sq)
	ref := reLazadaMMDDSeq.FindStringSubmatch(sq)
	if doc != nil && ref != nil {
		return doc[1] + ref[1] + "-" + ref[2]
	}
	if m := reLazadaTHMPTI.FindStringSubmatch(sq); m != nil {
		return m[1]
	}
	if m := reLazadaInvoiceNo.FindStringSubmatch(in.Text); m != nil {
		return peak.CompactRef(m[1])
	}
	return ""
}

func lazadaTotals(t string) reconcile.Totals {
	var tot reconcile.Totals
	if m := reLazadaSubtotal.FindStringSubmatch(t); m != nil {
		tot.Subtotal = parse.Money(m[1])
	}
	if m := reLazadaVAT.FindStringSubmatch(t); m != nil {
		tot.VAT = parse.Money(m[1])
	}
	if m := reLazadaTotalInc.FindStringSubmatch(t); m != nil {
		tot.Total = parse.Money(m[1])
	}
	return tot
}

// lazadaSellerCode finds the TH-prefixed seller account code. THMPTI
// document numbers share the prefix and must not win.
func lazadaSellerCode(t string) string {
	for _, m := range reLazadaSellerCode.FindAllStringSubmatch(t, 5) {
		if !strings.HasPrefix(strings.ToUpper(m[1]), "THMPTI") {
			return m[1]
		}
	}
	return ""
}
