package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/domain"
	"peakbridge/internal/vendormap"
)

const shopeeSettlement = `Shopee (Thailand) Co., Ltd.
บริษัท ช้อปปี้ (ประเทศไทย) จำกัด เลขประจำตัวผู้เสียภาษี 0105558019581 สำนักงานใหญ่
ใบเสร็จรับเงิน / Receipt
เลขที่เอกสาร: TRS2506120NHXMFW 1218-0001593
วันที่เอกสาร: 12/06/2025
Seller ID: 123456789
Username: rabbitshop
1 Commission Fee 935.00
2 Transaction Fee 65.00
Total Value of Services (Excluded VAT) 1,000.00
VAT 7% 70.00
Total Value of Services (Included VAT) 1,070.00
บริษัทได้หักภาษี ณ ที่จ่ายในอัตราร้อยละ 3 % เป็นจำนวนเงิน 30.00 บาท`

func TestShopeeSettlementEndToEnd(t *testing.T) {
	res := NewEngine().Extract(shopeeSettlement, "shopee-202506.pdf", vendormap.ClientRabbit)

	require.Equal(t, domain.PlatformShopee, res.Platform)
	row := res.Row

	assert.Equal(t, "20250612", row.DocDate)
	assert.Equal(t, "20250612", row.InvoiceDate)
	assert.Equal(t, "20250612", row.TaxPurchaseDate)

	// The split document number glues back into one reference.
	assert.Equal(t, "TRS2506120NHXMFW1218-0001593", row.InvoiceNo)
	assert.Equal(t, row.InvoiceNo, row.Reference)

	assert.Equal(t, "C00395", row.VendorCode)
	assert.Equal(t, vendormap.VendorShopee, row.TaxID)
	assert.Equal(t, "00000", row.Branch)

	// Unit price carries the ex-VAT leg, paid amount the inc-VAT leg.
	assert.Equal(t, "1000.00", row.UnitPrice)
	assert.Equal(t, "1070.00", row.PaidAmount)
	assert.Equal(t, "7%", row.VATRate)

	// The withholding amount comes off the document; the rate only ever
	// lands in the note.
	assert.Equal(t, "30.00", row.WHT)
	assert.Equal(t, "53", row.PND)
	assert.Contains(t, row.Note, "หัก ณ ที่จ่าย 3%")

	assert.Equal(t, "Shopee Fees: Commission Fee, Transaction Fee", row.Description)
	assert.Contains(t, row.Note, "1. Commission Fee: ฿935.00")
	assert.Contains(t, row.Note, "2. Transaction Fee: ฿65.00")
	assert.Equal(t, "Selling Expense", row.Group)
	assert.Equal(t, "หักจากยอดขาย", row.PaymentMethod)

	assert.Equal(t, "123456789", res.SellerID)
	assert.Equal(t, "rabbitshop", res.ShopName)
	assert.Empty(t, res.Errors)
	assert.False(t, row.NeedsReview())
}

func TestShopeeBankFallbackAndRateOnlyWithholding(t *testing.T) {
	text := `Shopee (Thailand) Co., Ltd.
ใบกำกับภาษี เลขที่เอกสาร: TIV-TH6803-12345-202506-1234567
วันที่: 01/06/2025
ยอดรวมก่อนภาษี 200.00
ภาษีมูลค่าเพิ่ม 14.00
รวมทั้งสิ้น 214.00
หัก ณ ที่จ่าย 3%`

	res := NewShopee().Extract(Input{Text: text, Hints: NoHints{}})
	row := res.Row

	assert.Equal(t, "TIV-TH6803-12345-202506-1234567", row.InvoiceNo)
	assert.Equal(t, "20250601", row.DocDate)

	// No summary block, so the generic bank supplies the money legs.
	assert.Equal(t, "200.00", row.UnitPrice)
	assert.Equal(t, "214.00", row.PaidAmount)

	// A rate with no amount forces the PND code but stays out of the
	// withholding column.
	assert.Empty(t, row.WHT)
	assert.Equal(t, "53", row.PND)
	assert.Contains(t, row.Note, "หัก ณ ที่จ่าย 3%")

	// No client context, so the vendor code cannot resolve.
	assert.Equal(t, "Unknown", row.VendorCode)
	assert.Equal(t, vendormap.VendorShopee, row.TaxID)
}

func TestShopeeReference(t *testing.T) {
	cases := []struct {
		name, text, filename, want string
	}{
		{
			"trs glued to its running code",
			"เลขที่เอกสาร: TRS2506120NHXMFW 1218-0001593",
			"",
			"TRS2506120NHXMFW1218-0001593",
		},
		{
			"tiv token is self contained",
			"Tax Invoice No. TIV-TH6803-12345-202506-1234567",
			"",
			"TIV-TH6803-12345-202506-1234567",
		},
		{
			"trs with the code elsewhere",
			"TRS2512176ABCDEF\nใบเสร็จ 0309-0012345",
			"",
			"TRS2512176ABCDEF0309-0012345",
		},
		{
			"bare trs",
			"TRS2512176ABCDEF ใบเสร็จรับเงิน",
			"",
			"TRS2512176ABCDEF",
		},
		{
			"filename carries the document number",
			"ใบเสร็จรับเงิน Shopee",
			"Shopee-TIV-TH1234-56789-202512-7654321.pdf",
			"Shopee-TIV-TH1234-56789-202512-7654321",
		},
		{"nothing anywhere", "ใบเสร็จรับเงิน", "scan_0001.pdf", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shopeeReference(tc.text, tc.filename))
		})
	}
}

func TestShopeeSummaryRateIsNeverAnAmount(t *testing.T) {
	// "VAT 7%" with no figure after it must not donate the 7 as a VAT
	// amount; reconciliation fills the gap from the other two legs.
	text := `Total Value of Services (Excluded VAT) 1,000.00
VAT 7%
Total Value of Services (Included VAT) 1,070.00`

	tot := shopeeTotals(text)
	assert.Equal(t, "1000.00", tot.Subtotal)
	assert.Empty(t, tot.VAT)
	assert.Equal(t, "1070.00", tot.Total)
}

func TestShopeeTotalsReadSummaryBlock(t *testing.T) {
	text := `Total Value of Services (Excluded VAT) 2,500.00
Total Value of Services (Excluded VAT) after discount 2,400.00
VAT 7% 168.00
Total Value of Services (Included VAT) 2,568.00`

	tot := shopeeTotals(text)
	// The headline ex-VAT figure wins over the discounted line.
	assert.Equal(t, "2500.00", tot.Subtotal)
	assert.Equal(t, "168.00", tot.VAT)
	assert.Equal(t, "2568.00", tot.Total)
}
