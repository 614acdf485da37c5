package vendormap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorCodeByTaxID(t *testing.T) {
	assert.Equal(t, "C00395", VendorCode(ClientRabbit, VendorShopee, ""))
	assert.Equal(t, "C01133", VendorCode(ClientSHD, VendorSPX, ""))
	assert.Equal(t, "C00051", VendorCode(ClientTopOne, VendorTikTok, ""))
}

func TestVendorCodeByNameHint(t *testing.T) {
	assert.Equal(t, "C00888", VendorCode(ClientSHD, "", "Shopee (Thailand) Co., Ltd."))
	assert.Equal(t, "C00411", VendorCode(ClientRabbit, "", "ลาซาด้า"))

	// A platform name passed in the tax-id slot is treated as a hint.
	assert.Equal(t, "C00562", VendorCode(ClientRabbit, "TikTok", ""))
}

func TestVendorCodeNeverLeaksPlatformName(t *testing.T) {
	assert.Equal(t, "Unknown", VendorCode("1111111111111", VendorShopee, ""))
	assert.Equal(t, "Unknown", VendorCode(ClientRabbit, "", "somebody else"))
	// TopOne has no Shopify mapping.
	assert.Equal(t, "Unknown", VendorCode(ClientTopOne, VendorShopify, ""))
}

func TestVendorCodeExtractsEmbeddedIDs(t *testing.T) {
	got := VendorCode("เลขประจำตัวผู้เสียภาษี 0105561071873 (สำนักงานใหญ่)", "Tax ID 0105558019581", "")
	assert.Equal(t, "C00395", got)
}

func TestWalletCodeBySellerID(t *testing.T) {
	assert.Equal(t, "EWL003", WalletCode(ClientRabbit, WalletQuery{SellerID: "0000000003"}))
	assert.Equal(t, "EWL005", WalletCode(ClientSHD, WalletQuery{SellerID: " 517,180,669 "}))
	assert.Equal(t, "EWL001", WalletCode(ClientTopOne, WalletQuery{SellerID: "538498056"}))
}

func TestWalletCodeByShopName(t *testing.T) {
	assert.Equal(t, "EWL006", WalletCode(ClientSHD, WalletQuery{ShopName: "Shopee-Xiaomi.Thailand Official"}))
	assert.Equal(t, "EWL010", WalletCode(ClientRabbit, WalletQuery{ShopName: "RABBIT"}))
}

func TestWalletCodeFromText(t *testing.T) {
	got := WalletCode(ClientSHD, WalletQuery{Text: "สรุปค่าบริการ Seller ID: 628286975 ประจำเดือน"})
	assert.Equal(t, "EWL001", got)
}

func TestWalletCodeUnknown(t *testing.T) {
	assert.Equal(t, "", WalletCode(ClientRabbit, WalletQuery{SellerID: "99999"}))
	assert.Equal(t, "", WalletCode("", WalletQuery{SellerID: "0000000001"}))
}

func TestSellerIDFromText(t *testing.T) {
	assert.Equal(t, "628286975", SellerIDFromText("Seller ID: 628286975"))
	assert.Equal(t, "12345678", SellerIDFromText("shop id = 12345678"))
	// Seller label beats a shop label appearing earlier.
	assert.Equal(t, "22222", SellerIDFromText("Shop ID: 11111 Seller ID: 22222"))
	assert.Equal(t, "", SellerIDFromText("no ids here"))
}

func TestDetectClient(t *testing.T) {
	assert.Equal(t, ClientRabbit, DetectClient("บริษัท อะไรสักอย่าง เลขประจำตัวผู้เสียภาษี 0105561071873"))
	assert.Equal(t, ClientSHD, DetectClient("SHD commerce invoice"))
	assert.Equal(t, ClientTopOne, DetectClient("Top One Trading"))
	assert.Equal(t, "", DetectClient("unrelated text"))
}

func TestClientName(t *testing.T) {
	assert.Equal(t, "RABBIT", ClientName(ClientRabbit))
	assert.Equal(t, "UNKNOWN", ClientName("1234567890123"))
}

func TestExpenseCategory(t *testing.T) {
	assert.Equal(t, "Shipping Expense", ExpenseCategory("ค่าขนส่งพัสดุ", ""))
	assert.Equal(t, "Shipping Expense", ExpenseCategory("monthly service", "SPX Express"))
	assert.Equal(t, "Selling Expense", ExpenseCategory("Commission Fee", ""))
	assert.Equal(t, "Advertising Expense", ExpenseCategory("Sponsored Discovery", ""))
	assert.Equal(t, "Inventory / COGS", ExpenseCategory("cost of goods sold", ""))
	assert.Equal(t, "Marketplace Expense", ExpenseCategory("Payment Fee", "Shopee"))
}

func TestShortDescription(t *testing.T) {
	got := ShortDescription("Shopee", "Commission Fee", "Seller ID: 628286975")
	assert.Equal(t, "Shopee - Commission Fee - Seller 628286975", got)

	assert.Equal(t, "Marketplace Expense", ShortDescription("", "", ""))
}
