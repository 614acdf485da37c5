// Package detect classifies a document by issuing platform before any
// field extraction runs. Strong document-number shapes win outright;
// otherwise weighted keyword scoring over both text and filename decides,
// with thresholds tuned low enough to catch sparse text layers. The
// filename matters because queue exports name files after their source.
package detect

import (
	"regexp"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/textnorm"
)

// Strong id shapes, tolerant of whitespace the PDF layer injects.
var (
	reSPXRCSPX  = regexp.MustCompile(`(?i)\bRCS\s*PX\s*[A-Z0-9\-/]{6,}\b`)
	reTHMPTI    = regexp.MustCompile(`(?i)\bTHMPTI\s*\d{10,20}\b`)
	reTTSTH     = regexp.MustCompile(`(?i)\bTTSTH[0-9A-Z\-/]*\b`)
	reTikTok    = regexp.MustCompile(`(?i)\btiktok\b`)
	reShopeeTIV = regexp.MustCompile(`(?i)\bTIV\s*-\s*[A-Z0-9]{3,}\b`)
	reShopeeTIR = regexp.MustCompile(`(?i)\bTIR\s*-\s*[A-Z0-9]{3,}\b`)
	reShopee    = regexp.MustCompile(`(?i)\bshopee\b`)
	// TRS collides with too many carrier codes to stand alone.
	reShopeeTRS = regexp.MustCompile(`(?i)\bTRS\b`)
)

var (
	shopeeSigs = []string{
		"shopee", "shopee-ti", "shopee-tiv", "shopee-tir", "tiv-", "tir-",
		"ช้อปปี้", "shopee (thailand)", "shopee thailand",
	}
	lazadaSigs = []string{
		"lazada", "lazada invoice", "lzd", "laz", "ลาซาด้า",
	}
	tiktokSigs = []string{
		"tiktok", "tiktok shop", "tt shop", "tiktok commerce", "ติ๊กต็อก",
	}
	spxSigs = []string{
		"spx", "spx express", "standard express", "rcs", "rcspx",
		"spx (thailand)", "spx express (thailand)",
	}

	// Billing keywords. Strong ones are required for an ads verdict;
	// weak ones only ever corroborate.
	adsStrong = []string{
		"ad invoice", "ads invoice", "tax invoice for ads", "billing",
		"statement", "charged", "payment for ads", "ads account", "ad account",
		"invoice for advertising", "advertising invoice",
		"facebook ads", "meta ads", "google ads", "tiktok ads", "line ads",
		"โฆษณา", "ค่าโฆษณา", "ยิงแอด", "บิลโฆษณา", "ใบแจ้งหนี้โฆษณา",
	}
	adsWeak = []string{
		"ads", "advertising", "campaign", "impression", "click", "cpc", "cpm",
	}

	// Shipping context vetoes an ads verdict outright.
	shippingContext = []string{
		"address", "shipment", "shipping", "tracking", "waybill", "parcel",
		"ผู้รับ", "ที่อยู่", "ขนส่ง", "พัสดุ", "จัดส่ง", "เลขพัสดุ", "tracking no",
	}

	invoiceSigs = []string{
		"ใบกำกับภาษี", "tax invoice", "receipt", "ใบเสร็จ", "invoice", "tax receipt",
	}
)

// scored lists scoring keys in tie-break order.
var scored = []domain.Platform{
	domain.PlatformShopee, domain.PlatformLazada, domain.PlatformTikTok,
	domain.PlatformSPX, domain.PlatformAds,
}

// norm lowercases normalized text and bounds very large inputs to a
// head+tail window so classification cost stays flat.
func norm(s string) string {
	t := strings.ToLower(textnorm.Normalize(s))
	r := []rune(t)
	if len(r) > 160_000 {
		return string(r[:100_000]) + "\n...\n" + string(r[len(r)-40_000:])
	}
	return t
}

func containsAny(t string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(t, n) {
			return true
		}
	}
	return false
}

func countContains(t string, needles []string) int {
	hits := 0
	for _, n := range needles {
		if n != "" && strings.Contains(t, n) {
			hits++
		}
	}
	return hits
}

func hit(re *regexp.Regexp, ss ...string) bool {
	for _, s := range ss {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func weightedScore(t, fn string) map[domain.Platform]int {
	score := map[domain.Platform]int{
		domain.PlatformShopee: 0, domain.PlatformLazada: 0,
		domain.PlatformTikTok: 0, domain.PlatformSPX: 0,
		domain.PlatformAds: 0,
	}

	if hit(reTHMPTI, t, fn) {
		score[domain.PlatformLazada] += 100
	}
	if hit(reTTSTH, t, fn) {
		score[domain.PlatformTikTok] += 100
	}
	if hit(reSPXRCSPX, t, fn) || strings.Contains(t, "rcspx") || strings.Contains(fn, "rcspx") {
		score[domain.PlatformSPX] += 120
	}
	if hit(reShopeeTIV, t, fn) {
		score[domain.PlatformShopee] += 90
	}
	if hit(reShopeeTIR, t, fn) {
		score[domain.PlatformShopee] += 90
	}
	if strings.Contains(t, "shopee-ti") || strings.Contains(fn, "shopee-ti") {
		score[domain.PlatformShopee] += 80
	}

	score[domain.PlatformShopee] += 8*countContains(t, shopeeSigs) + 12*countContains(fn, shopeeSigs)
	score[domain.PlatformLazada] += 8*countContains(t, lazadaSigs) + 12*countContains(fn, lazadaSigs)
	score[domain.PlatformTikTok] += 8*countContains(t, tiktokSigs) + 12*countContains(fn, tiktokSigs)
	score[domain.PlatformSPX] += 8*countContains(t, spxSigs) + 12*countContains(fn, spxSigs)

	// TRS counts only alongside other Shopee context.
	if reShopeeTRS.MatchString(t) || strings.Contains(t, "trs") {
		if containsAny(t, []string{"shopee", "tiv", "tir"}) ||
			containsAny(fn, []string{"shopee", "tiv", "tir"}) {
			score[domain.PlatformShopee] += 15
		}
	}

	strong := countContains(t, adsStrong) + countContains(fn, adsStrong)
	weak := countContains(t, adsWeak) + countContains(fn, adsWeak)
	if !containsAny(t, shippingContext) && !containsAny(fn, shippingContext) {
		switch {
		case strong >= 2:
			score[domain.PlatformAds] += 70
		case strong >= 1 && weak >= 2:
			score[domain.PlatformAds] += 60
		case strong >= 1:
			score[domain.PlatformAds] += 45
		}
	}
	return score
}

// Platform classifies a document from its text and original filename.
func Platform(text, filename string) domain.Platform {
	p, _ := Details(text, filename)
	return p
}

// Details classifies and also returns the score table, which the debug
// extraction endpoint surfaces.
func Details(text, filename string) (domain.Platform, map[domain.Platform]int) {
	t := norm(text)
	fn := norm(filename)

	score := weightedScore(t, fn)
	if t == "" && fn == "" {
		return domain.PlatformUnknown, score
	}

	// Strong ids short-circuit. Shopee's do not: an ads billing doc can
	// mention Shopee order ids, so Shopee always goes through scoring.
	if hit(reSPXRCSPX, t, fn) || strings.Contains(t, "rcspx") || strings.Contains(fn, "rcspx") {
		return domain.PlatformSPX, score
	}
	if hit(reTHMPTI, t, fn) {
		return domain.PlatformLazada, score
	}
	if hit(reTTSTH, t, fn) || hit(reTikTok, t, fn) {
		return domain.PlatformTikTok, score
	}

	best := domain.PlatformUnknown
	bestScore := -1
	for _, p := range scored {
		if score[p] > bestScore {
			best, bestScore = p, score[p]
		}
	}

	switch {
	case score[domain.PlatformSPX] >= 40:
		return domain.PlatformSPX, score
	case score[domain.PlatformLazada] >= 40:
		return domain.PlatformLazada, score
	case score[domain.PlatformTikTok] >= 30:
		return domain.PlatformTikTok, score
	case score[domain.PlatformShopee] >= 30:
		return domain.PlatformShopee, score
	}

	if a := score[domain.PlatformAds]; a >= 60 &&
		a > score[domain.PlatformSPX] && a > score[domain.PlatformLazada] &&
		a > score[domain.PlatformTikTok] && a > score[domain.PlatformShopee] {
		return domain.PlatformAds, score
	}

	if bestScore >= 25 {
		return best, score
	}

	if containsAny(t, invoiceSigs) || containsAny(fn, invoiceSigs) {
		return domain.PlatformOther, score
	}
	return domain.PlatformUnknown, score
}

// displayNames maps platform keys to the names shown in progress
// reports and exports.
var displayNames = map[domain.Platform]string{
	domain.PlatformShopee:  "Shopee",
	domain.PlatformLazada:  "Lazada",
	domain.PlatformTikTok:  "TikTok Shop",
	domain.PlatformSPX:     "SPX Express",
	domain.PlatformAds:     "Ads Billing",
	domain.PlatformOther:   "Thai Tax Invoice",
	domain.PlatformUnknown: "Unknown",
}

// DisplayName renders a platform key as its report-facing name.
func DisplayName(p domain.Platform) string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return displayNames[domain.PlatformUnknown]
}

// Vendor resolves a document's issuing platform to its display name and
// short key, the pair the routing layer keys strategies on.
func Vendor(text string) (displayName string, shortKey domain.Platform) {
	p := Platform(text, "")
	return DisplayName(p), p
}
