package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/domain"
	"peakbridge/internal/vendormap"
)

const tiktokInvoice = `TikTok Shop (Thailand) Ltd.
Tax Invoice
Invoice Number: TTSTH2506120000123
Issue Date: Jun 12, 2025
Seller ID: 112233445
Commission Fee 25.00
Subtotal 500.00
VAT 7% 35.00
Total Amount Due 535.00
2% Withholding Tax will be deducted`

func TestTikTokInvoiceEndToEnd(t *testing.T) {
	res := NewEngine().Extract(tiktokInvoice, "", vendormap.ClientSHD)

	require.Equal(t, domain.PlatformTikTok, res.Platform)
	row := res.Row

	assert.Equal(t, "TTSTH2506120000123", row.InvoiceNo)
	assert.Equal(t, "20250612", row.DocDate)
	assert.Equal(t, vendormap.VendorTikTok, row.TaxID)
	assert.Equal(t, "C01246", row.VendorCode)
	assert.Equal(t, "00000", row.Branch)

	// Totals come from the shared labelled-line bank.
	assert.Equal(t, "500.00", row.UnitPrice)
	assert.Equal(t, "535.00", row.PaidAmount)
	assert.Equal(t, "7%", row.VATRate)

	// A bare rate is noted but never turned into an amount.
	assert.Empty(t, row.WHT)
	assert.Equal(t, "53", row.PND)
	assert.Equal(t, "หัก ณ ที่จ่าย 2%\n1. Commission Fee: ฿25.00", row.Note)

	assert.Equal(t, "TikTok Fees: Commission Fee", row.Description)
	assert.Equal(t, "Selling Expense", row.Group)
	assert.Equal(t, "หักจากยอดขาย", row.PaymentMethod)

	assert.Equal(t, "112233445", res.SellerID)
	assert.Empty(t, res.Errors)
	assert.False(t, row.NeedsReview())
}

func TestTikTokReference(t *testing.T) {
	cases := []struct {
		name, text, want string
	}{
		{"document number", "เอกสาร TTSTH2506120000123 ออกโดย", "TTSTH2506120000123"},
		{"labelled invoice number fallback", "Invoice No: INV-2025-0042", "INV-2025-0042"},
		{"nothing", "ใบแจ้งหนี้ทั่วไป", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tiktokReference(Input{Text: tc.text}))
		})
	}
}
