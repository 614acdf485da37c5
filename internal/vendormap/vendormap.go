// Package vendormap is the source of truth for counterparty resolution:
// which company of ours a document belongs to, which PEAK vendor code a
// platform maps to for that company, and which e-wallet settles a given
// seller account. Codes here come straight from the PEAK chart of
// partners and must stay in sync with it.
package vendormap

import (
	"regexp"
	"strings"

	"peakbridge/internal/textnorm"
)

// Client (our company) tax ids.
const (
	ClientRabbit = "0105561071873"
	ClientSHD    = "0105563022918"
	ClientTopOne = "0105565027615"
)

// Canonical vendor tax ids.
const (
	VendorShopee      = "0105558019581"
	VendorLazada      = "010556214176"
	VendorTikTok      = "0105555040244"
	VendorMarketplace = "0105548000241"
	VendorShopify     = "0993000475879"
	VendorSPX         = "0105561164871"
)

// vendorCodeByClient maps client tax id -> vendor tax id -> PEAK vendor
// code. TopOne has no Shopify partner yet.
var vendorCodeByClient = map[string]map[string]string{
	ClientRabbit: {
		VendorShopee:      "C00395",
		VendorLazada:      "C00411",
		VendorTikTok:      "C00562",
		VendorMarketplace: "C01031",
		VendorShopify:     "C01143",
		VendorSPX:         "C00563",
	},
	ClientSHD: {
		VendorShopee:      "C00888",
		VendorLazada:      "C01132",
		VendorTikTok:      "C01246",
		VendorMarketplace: "C01420",
		VendorShopify:     "C33491",
		VendorSPX:         "C01133",
	},
	ClientTopOne: {
		VendorShopee:      "C00020",
		VendorLazada:      "C00025",
		VendorTikTok:      "C00051",
		VendorMarketplace: "C00095",
		VendorSPX:         "C00038",
	},
}

type nameTax struct{ key, tax string }

// vendorNameToTax resolves vendor tax ids from display names. Entries
// are matched by substring in order, so more specific keys must precede
// broader ones when they disagree.
var vendorNameToTax = []nameTax{
	{"shopee", VendorShopee},
	{"ช้อปปี้", VendorShopee},
	{"shopee (thailand)", VendorShopee},
	{"shopee thailand", VendorShopee},
	{"shopee.co.th", VendorShopee},

	{"lazada", VendorLazada},
	{"ลาซาด้า", VendorLazada},
	{"lazada e-services", VendorLazada},
	{"lazada e services", VendorLazada},
	{"lazada.co.th", VendorLazada},

	{"tiktok", VendorTikTok},
	{"ติ๊กต๊อก", VendorTikTok},
	{"tiktok shop", VendorTikTok},

	{"spx", VendorSPX},
	{"spx express", VendorSPX},

	{"shopify", VendorShopify},
	{"shopify commerce", VendorShopify},

	{"marketplace", VendorMarketplace},
	{"ตัวกลาง", VendorMarketplace},
	{"มาร์เก็ตเพลส", VendorMarketplace},
	{"better marketplace", VendorMarketplace},
	{"เบ็ตเตอร์", VendorMarketplace},
}

type nameCode struct{ key, code string }

// Wallet mapping: client + seller account -> EWL code for the sheet's
// payment-method column. Seller ids are exact, shop names are ordered
// substring fallbacks.
var (
	walletBySellerID = map[string]map[string]string{
		ClientRabbit: {
			"0000000001":         "EWL001",
			"0000000002":         "EWL002",
			"0000000003":         "EWL003",
			"0000000004":         "EWL004",
			"0000000006":         "EWL006",
			"0000000007":         "EWL007",
			"0000000008":         "EWL008",
			"0000000009":         "EWL009",
			"142025022504068027": "EWL010",
		},
		ClientSHD: {
			"628286975":  "EWL001",
			"340395201":  "EWL002",
			"383844799":  "EWL003",
			"261472748":  "EWL004",
			"517180669":  "EWL005",
			"426162640":  "EWL006",
			"231427130":  "EWL007",
			"1646465545": "EWL008",
		},
		ClientTopOne: {
			"538498056": "EWL001",
		},
	}

	walletByShopName = map[string][]nameCode{
		ClientRabbit: {
			{"shopee-70mai", "EWL001"},
			{"shopee-ddpai", "EWL002"},
			{"shopeejimmy", "EWL003"},
			{"shopee-jimmy", "EWL003"},
			{"shopee-mibro", "EWL004"},
			{"shopee-toptoy", "EWL006"},
			{"shopee-uwant", "EWL007"},
			{"shopee-wanbo", "EWL008"},
			{"shopee-zepp", "EWL009"},
			{"rabbit", "EWL010"},
		},
		ClientSHD: {
			{"shopee-ankerthailandstore", "EWL001"},
			{"shopee-dreamofficial", "EWL002"},
			{"shopee-levoitofficialstore", "EWL003"},
			{"shopee-soundcoreofficialstore", "EWL004"},
			{"xiaomismartappliances", "EWL005"},
			{"shopee-xiaomi.thailand", "EWL006"},
			{"xiaomi_home_appliances", "EWL007"},
			{"shopee-nextgadget", "EWL008"},
			{"nextgadget", "EWL008"},
		},
		ClientTopOne: {
			{"shopee-vinkothailandstore", "EWL001"},
			{"vinkothailandstore", "EWL001"},
		},
	}
)

var (
	reTax13 = regexp.MustCompile(`\b\d{13}\b`)
	reCCode = regexp.MustCompile(`(?i)^C\d{5}$`)
	reEWL   = regexp.MustCompile(`(?i)^EWL\d{3}$`)
	reWS    = regexp.MustCompile(`\s+`)

	// Seller id shapes, tried in priority order.
	sellerIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bseller(?:\s*id)?\s*[:#=]?\s*([0-9]{5,20})\b`),
		regexp.MustCompile(`(?i)\bshop(?:\s*id)?\s*[:#=]?\s*([0-9]{5,20})\b`),
		regexp.MustCompile(`(?i)\bmerchant(?:\s*id)?\s*[:#=]?\s*([0-9]{5,20})\b`),
	}
)

func normName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = textnorm.FoldDigits(s)
	return strings.TrimSpace(reWS.ReplaceAllString(s, " "))
}

// normTaxID pulls the first embedded 13-digit run out of s. Anything
// without one is a name, not an id, and comes back empty.
func normTaxID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return reTax13.FindString(textnorm.FoldDigits(s))
}

func isKnownClient(taxID string) bool {
	switch normTaxID(taxID) {
	case ClientRabbit, ClientSHD, ClientTopOne:
		return true
	}
	return false
}

func digitsOnly(s string) string {
	s = textnorm.FoldDigits(s)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VendorTaxFromName resolves a vendor tax id from a platform or company
// display name, best effort.
func VendorTaxFromName(name string) string {
	n := normName(name)
	if n == "" {
		return ""
	}
	for _, e := range vendorNameToTax {
		if strings.Contains(n, e.key) {
			return e.tax
		}
	}
	return ""
}

// VendorCode returns the PEAK vendor code for the D_vendor_code column.
// A platform name passed where a tax id was expected is treated as a
// name hint. The fallback is always "Unknown", never a platform name,
// so a bad mapping cannot leak display text into the sheet.
func VendorCode(clientTaxID, vendorTaxID, vendorName string) string {
	c := normTaxID(clientTaxID)
	if c == "" || !isKnownClient(c) {
		return "Unknown"
	}

	if v := normTaxID(vendorTaxID); v != "" {
		if code := vendorCodeByClient[c][v]; reCCode.MatchString(code) {
			return code
		}
	}

	hint := vendorName
	if hint == "" {
		hint = vendorTaxID
	}
	if v := VendorTaxFromName(hint); v != "" {
		if code := vendorCodeByClient[c][v]; reCCode.MatchString(code) {
			return code
		}
	}
	return "Unknown"
}

// WalletQuery carries whatever seller identity a document yielded.
type WalletQuery struct {
	SellerID string
	ShopName string
	Platform string
	Text     string
}

// WalletCode resolves the EWL wallet for the Q_payment_method column.
// Seller id wins over shop name; an unmappable seller returns "" so the
// caller can flag the row for review. The platform name is never used
// as a wallet.
func WalletCode(clientTaxID string, q WalletQuery) string {
	c := normTaxID(clientTaxID)
	if c == "" || !isKnownClient(c) {
		return ""
	}

	sid := digitsOnly(q.SellerID)
	if sid == "" && q.Text != "" {
		sid = SellerIDFromText(q.Text)
	}
	if sid != "" {
		if code, ok := walletBySellerID[c][sid]; ok {
			return code
		}
	}

	if shop := normName(q.ShopName); shop != "" {
		for _, e := range walletByShopName[c] {
			if strings.Contains(shop, e.key) && reEWL.MatchString(e.code) {
				return e.code
			}
		}
	}
	return ""
}

// SellerIDFromText scans free text for a labelled seller, shop or
// merchant id.
func SellerIDFromText(text string) string {
	t := normName(text)
	if t == "" {
		return ""
	}
	for _, rx := range sellerIDPatterns {
		if m := rx.FindStringSubmatch(t); m != nil {
			return digitsOnly(m[1])
		}
	}
	return ""
}

// DetectClient finds which of our companies a document belongs to. A
// client tax id in the text is decisive; names are keyword fallback.
// Returns "" when nothing matches.
func DetectClient(text string) string {
	t := normName(text)
	if t == "" {
		return ""
	}
	switch {
	case strings.Contains(t, ClientRabbit):
		return ClientRabbit
	case strings.Contains(t, ClientSHD):
		return ClientSHD
	case strings.Contains(t, ClientTopOne):
		return ClientTopOne
	case strings.Contains(t, "rabbit"):
		return ClientRabbit
	case strings.Contains(t, "shd"):
		return ClientSHD
	case strings.Contains(t, "topone"), strings.Contains(t, "top one"):
		return ClientTopOne
	}
	return ""
}

// IsClient reports whether a tax id belongs to one of our companies.
// Extractors use it to avoid mistaking the buyer's id for the vendor's.
func IsClient(taxID string) bool {
	return isKnownClient(taxID)
}

// ClientName renders a client tax id as its short company label.
func ClientName(clientTaxID string) string {
	switch normTaxID(clientTaxID) {
	case ClientRabbit:
		return "RABBIT"
	case ClientSHD:
		return "SHD"
	case ClientTopOne:
		return "TOPONE"
	}
	return "UNKNOWN"
}

// VendorCodesForClient returns a copy of the vendor-code table for one
// client, keyed by vendor tax id.
func VendorCodesForClient(clientTaxID string) map[string]string {
	src := vendorCodeByClient[normTaxID(clientTaxID)]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ExpenseCategory buckets a fee description into the U_group column.
func ExpenseCategory(description, platform string) string {
	desc := normName(description)
	plat := normName(platform)

	if plat == "spx" || plat == "spx express" ||
		containsAny(desc, "shipping", "delivery", "ขนส่ง", "จัดส่ง", "spx") {
		return "Shipping Expense"
	}
	if containsAny(desc, "commission", "คอมมิชชั่น", "ค่าคอม") {
		return "Selling Expense"
	}
	if containsAny(desc, "advertising", "โฆษณา", "ads", "sponsored") {
		return "Advertising Expense"
	}
	if containsAny(desc, "goods", "สินค้า", "inventory", "cogs", "cost of goods") {
		return "Inventory / COGS"
	}
	return "Marketplace Expense"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var reSellerInfo = regexp.MustCompile(`Seller(?:\s+ID)?:\s*([0-9A-Za-z_\-]+)`)

// ShortDescription assembles the L_description prefix from platform,
// fee type and a labelled seller id.
func ShortDescription(platform, feeType, sellerInfo string) string {
	var parts []string
	if platform != "" {
		parts = append(parts, strings.TrimSpace(platform))
	}
	if feeType != "" {
		parts = append(parts, strings.TrimSpace(feeType))
	}
	if sellerInfo != "" {
		if m := reSellerInfo.FindStringSubmatch(sellerInfo); m != nil {
			parts = append(parts, "Seller "+m[1])
		}
	}
	if len(parts) == 0 {
		return "Marketplace Expense"
	}
	return strings.Join(parts, " - ")
}
