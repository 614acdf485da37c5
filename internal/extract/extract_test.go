package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/domain"
	"peakbridge/internal/peak"
	"peakbridge/internal/vendormap"
)

func TestEngineRoutesAdsToGenericPath(t *testing.T) {
	text := `Facebook Ads Invoice
Meta Platforms Ireland Limited
Ads Invoice No. FB-2025-01-000123
Tax ID: 0993000133664
Date of Issue: 31/01/2025
Amount charged for advertising services
Total 214.00`

	res := NewEngine().Extract(text, "", "")

	require.Equal(t, domain.PlatformAds, res.Platform)
	row := res.Row

	// Ads documents have no marketplace strategy and land on the generic
	// Thai tax invoice path.
	assert.Equal(t, "Thai Tax Invoice", row.Description)
	assert.Equal(t, "0993000133664", row.TaxID)
	assert.Equal(t, "FB-2025-01-000123", row.InvoiceNo)
	assert.Equal(t, "20250131", row.DocDate)
	assert.Equal(t, "214.00", row.UnitPrice)
	assert.Equal(t, "214.00", row.PaidAmount)
	assert.Empty(t, res.Errors)
}

func TestEngineEmptyInputFlagsReview(t *testing.T) {
	res := NewEngine().Extract("", "", "")

	require.Equal(t, domain.PlatformUnknown, res.Platform)
	row := res.Row

	// An empty document yields an empty row: no format findings, but the
	// row still demands review because identity and money are missing.
	assert.Empty(t, res.Errors)
	assert.True(t, row.NeedsReview())

	assert.Empty(t, row.TaxID)
	assert.Empty(t, row.InvoiceNo)
	assert.Empty(t, row.DocDate)
	assert.Equal(t, "00000", row.Branch)
	assert.Equal(t, "0", row.UnitPrice)
	assert.Equal(t, "0", row.PaidAmount)
	assert.Equal(t, "7%", row.VATRate)
	assert.Equal(t, "1", row.PriceType)
	assert.Equal(t, "1", row.Quantity)
	assert.Equal(t, "Thai Tax Invoice", row.Description)
}

func TestFilenameHints(t *testing.T) {
	cases := []struct {
		name, file string
		platform   domain.Platform
		want       string
	}{
		{
			"shopee tax invoice token",
			"TIV-TH1234-56789-202506-7654321.pdf",
			domain.PlatformShopee,
			"TIV-TH1234-56789-202506-7654321",
		},
		{
			"lazada thmpti token",
			"THMPTI2025061200000001.pdf",
			domain.PlatformLazada,
			"THMPTI2025061200000001",
		},
		{
			"tiktok token",
			"TTSTH25061234.pdf",
			domain.PlatformTikTok,
			"TTSTH25061234",
		},
		{
			"spx token without a label",
			"RCSPX2512-00123.pdf",
			domain.PlatformSPX,
			"RCSPX2512-00123",
		},
		{"no token", "scan_001.pdf", domain.PlatformShopee, ""},
		{"platform without a shape", "TIV-TH1234.pdf", domain.PlatformOther, ""},
		{"empty name", "", domain.PlatformShopee, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilenameHints{Name: tc.file}.DocNumber(tc.platform))
		})
	}

	assert.Empty(t, NoHints{}.DocNumber(domain.PlatformShopee))
}

func TestEngineRecoversReferenceFromFilename(t *testing.T) {
	text := "Lazada ลาซาด้า ใบแจ้งหนี้ ค่าธรรมเนียม\nTotal 100.00"

	res := NewEngine().Extract(text, "lazada THMPTI2512000012345678.pdf", "")

	require.Equal(t, domain.PlatformLazada, res.Platform)
	row := res.Row

	assert.Equal(t, "THMPTI2512000012345678", row.InvoiceNo)
	assert.Equal(t, "Unknown", row.VendorCode)
	assert.Equal(t, vendormap.VendorLazada, row.TaxID)
	assert.Equal(t, "100.00", row.UnitPrice)
	assert.Equal(t, "100.00", row.PaidAmount)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, peak.MsgBadTaxID, res.Errors[0])
}
