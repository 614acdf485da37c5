// Package parse converts noisy scalar tokens from marketplace documents
// into the canonical string forms the ledger row carries. Every function
// is total: on failure it returns the empty string, never an error, so
// extraction chains can fall through to the next candidate.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	reDate8    = regexp.MustCompile(`^\d{8}$`)
	reDateYMD  = regexp.MustCompile(`^(\d{4})[\-/. ](\d{1,2})[\-/. ](\d{1,2})$`)
	reDateDMY  = regexp.MustCompile(`^(\d{1,2})[\-/. ](\d{1,2})[\-/. ](\d{4})$`)
	reDateDMY2 = regexp.MustCompile(`^(\d{1,2})[\-/. ](\d{1,2})[\-/. ](\d{2})$`)
	reMonthDY  = regexp.MustCompile(`(?i)^([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})$`)
	reDMonthY  = regexp.MustCompile(`(?i)^(\d{1,2})\s+([A-Za-z]{3,9})\.?,?\s+(\d{4})$`)

	reMoney = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

var monthNum = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Date parses one date token into the 8-digit YYYYMMDD form. Accepted
// shapes: day/month/year, year/month/day, a bare 8-digit run, and English
// named-month forms ("Dec 9, 2025", "9 Dec 2025"), with "-", "/", "." or
// space separators. Two-digit years land in 20xx; Buddhist-era years are
// converted to the common era. Calendar-invalid values return "".
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var y, m, d int
	switch {
	case reDate8.MatchString(s):
		y, _ = strconv.Atoi(s[:4])
		m, _ = strconv.Atoi(s[4:6])
		d, _ = strconv.Atoi(s[6:8])
	case reDateYMD.MatchString(s):
		g := reDateYMD.FindStringSubmatch(s)
		y, _ = strconv.Atoi(g[1])
		m, _ = strconv.Atoi(g[2])
		d, _ = strconv.Atoi(g[3])
	case reDateDMY.MatchString(s):
		g := reDateDMY.FindStringSubmatch(s)
		d, _ = strconv.Atoi(g[1])
		m, _ = strconv.Atoi(g[2])
		y, _ = strconv.Atoi(g[3])
	case reDateDMY2.MatchString(s):
		g := reDateDMY2.FindStringSubmatch(s)
		d, _ = strconv.Atoi(g[1])
		m, _ = strconv.Atoi(g[2])
		y, _ = strconv.Atoi(g[3])
		y += 2000
	case reMonthDY.MatchString(s):
		g := reMonthDY.FindStringSubmatch(s)
		var ok bool
		if m, ok = monthByName(g[1]); !ok {
			return ""
		}
		d, _ = strconv.Atoi(g[2])
		y, _ = strconv.Atoi(g[3])
	case reDMonthY.MatchString(s):
		g := reDMonthY.FindStringSubmatch(s)
		var ok bool
		if m, ok = monthByName(g[2]); !ok {
			return ""
		}
		d, _ = strconv.Atoi(g[1])
		y, _ = strconv.Atoi(g[3])
	default:
		return ""
	}

	// Buddhist era: 2568 BE = 2025 CE.
	if y >= 2500 {
		y -= 543
	}

	out := fmt.Sprintf("%04d%02d%02d", y, m, d)
	if _, err := time.Parse("20060102", out); err != nil {
		return ""
	}
	return out
}

func monthByName(name string) (int, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	m, ok := monthNum[key]
	return m, ok
}

// moneyStrip removes currency markers and thousands separators before
// numeric validation.
var moneyStrip = strings.NewReplacer(
	",", "", " ", "", "฿", "", "THB", "", "thb", "", "Baht", "", "บาท", "",
)

// Money normalizes one monetary token to a plain decimal string with at
// most two fraction digits: "฿1,234.50" becomes "1234.50". The function
// is idempotent on its own output. Tokens with more than two fraction
// digits, or that are not a decimal number after cleaning, return "".
func Money(s string) string {
	s = moneyStrip.Replace(strings.TrimSpace(s))
	if s == "" || !reMoney.MatchString(s) {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return ""
	}
	// Preserve the written scale so "1234.50" round-trips unchanged.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return d.StringFixed(int32(len(s) - i - 1))
	}
	return d.String()
}

// TaxID reduces a digit-ish run (separators allowed) to the bare digits
// and keeps the result only when it is exactly the 13 digits a Thai tax
// identifier has.
func TaxID(s string) string {
	d := digitsOnly(s)
	if len(d) != 13 {
		return ""
	}
	return d
}

var reHeadOffice = regexp.MustCompile(`(?i)สำนักงานใหญ่|head\s*office`)

// Branch normalizes a branch designation to 5 digits. Head-office
// wording, Thai or English, maps to the "00000" sentinel regardless of
// any digits on the same token; otherwise digits are zero-padded or
// truncated to 5. No digits at all yields "".
func Branch(s string) string {
	if reHeadOffice.MatchString(s) {
		return "00000"
	}
	d := digitsOnly(s)
	if d == "" {
		return ""
	}
	if len(d) > 5 {
		d = d[:5]
	}
	return strings.Repeat("0", 5-len(d)) + d
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string { return digitsOnly(s) }

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
