// Package feeline scans invoice text for itemized charge rows: a known
// fee keyword, arbitrary filler, then a trailing decimal amount, or the
// four-column name / ex-VAT / VAT / inc-VAT layout some statements use.
// Matches are collected in document order up to a vendor-specific cap
// and condensed into a short description plus an audit note.
package feeline

import (
	"fmt"
	"regexp"
	"strings"

	"peakbridge/internal/parse"
)

// Fee is one matched charge row. ExVAT/VAT/IncVAT are set only by the
// four-column shape.
type Fee struct {
	Seq    string
	Name   string
	Amount string
	ExVAT  string
	VAT    string
	IncVAT string
}

// Scanner holds one vendor's fee-scan rules.
type Scanner struct {
	label    string
	limit    int
	keywords *regexp.Regexp
}

// NewScanner builds a scanner. label prefixes the summary ("Lazada
// Fees"), limit caps collected rows, keywordExpr is the vendor's fee
// keyword alternation, matched case-insensitively against row names.
func NewScanner(label string, limit int, keywordExpr string) Scanner {
	return Scanner{
		label:    label,
		limit:    limit,
		keywords: regexp.MustCompile(`(?i)` + keywordExpr),
	}
}

// Row shapes. The name group is bounded so recovery never walks more
// than a line's worth of text back from the amount.
var (
	reFeeLine = regexp.MustCompile(
		`(?m)^\s*(?:(\d+)[.)]?\s+)?(.{3,120}?)\s+([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*$`)
	reFeeColumns = regexp.MustCompile(
		`(?m)^\s*(?:(\d+)[.)]?\s+)?(.{3,120}?)\s+([0-9][0-9,]*\.[0-9]{2})\s+([0-9][0-9,]*\.[0-9]{2})\s+([0-9][0-9,]*\.[0-9]{2})\s*$`)
	reMultiSpace = regexp.MustCompile(`\s{2,}`)
)

// Scan collects keyword+amount rows in document order.
func (s Scanner) Scan(text string) []Fee {
	var fees []Fee
	for _, m := range reFeeLine.FindAllStringSubmatch(text, -1) {
		name, ok := s.admit(m[2])
		if !ok {
			continue
		}
		amt := parse.Money(m[3])
		if amt == "" || amt == "0" || amt == "0.00" {
			continue
		}
		fees = append(fees, Fee{Seq: m[1], Name: name, Amount: amt})
		if len(fees) >= s.limit {
			break
		}
	}
	return fees
}

// ScanColumns collects four-column rows (name, ex-VAT, VAT, inc-VAT).
// The inc-VAT column doubles as the row amount.
func (s Scanner) ScanColumns(text string) []Fee {
	var fees []Fee
	for _, m := range reFeeColumns.FindAllStringSubmatch(text, -1) {
		name, ok := s.admit(m[2])
		if !ok {
			continue
		}
		ex, vat, inc := parse.Money(m[3]), parse.Money(m[4]), parse.Money(m[5])
		if inc == "" || inc == "0" || inc == "0.00" {
			continue
		}
		fees = append(fees, Fee{
			Seq: m[1], Name: name, Amount: inc,
			ExVAT: ex, VAT: vat, IncVAT: inc,
		})
		if len(fees) >= s.limit {
			break
		}
	}
	return fees
}

// admit filters and cleans a candidate row name. Totals rows and
// tax-summary rows are not fees.
func (s Scanner) admit(desc string) (string, bool) {
	desc = strings.TrimSpace(desc)
	l := strings.ToLower(desc)
	if strings.HasPrefix(l, "total") {
		return "", false
	}
	if strings.Contains(l, "including tax") || strings.Contains(l, "vat") ||
		strings.Contains(l, "tax") || strings.Contains(l, "ภาษี") {
		return "", false
	}
	if !s.keywords.MatchString(desc) {
		return "", false
	}
	name := strings.TrimSpace(reMultiSpace.ReplaceAllString(desc, " "))
	if r := []rune(name); len(r) > 90 {
		name = strings.TrimSpace(string(r[:90]))
	}
	return name, true
}

// Summary joins the first three fee names under the scanner's label:
// "Lazada Fees: a, b, c (+2 more)". Empty when no fees matched.
func (s Scanner) Summary(fees []Fee) string {
	if len(fees) == 0 {
		return ""
	}
	names := make([]string, 0, 3)
	for i, f := range fees {
		if i == 3 {
			break
		}
		names = append(names, f.Name)
	}
	out := s.label + ": " + strings.Join(names, ", ")
	if len(fees) > 3 {
		out += fmt.Sprintf(" (+%d more)", len(fees)-3)
	}
	return out
}

// Note renders one audit line per fee, numbered by the document's own
// row numbers when present.
func Note(fees []Fee) string {
	if len(fees) == 0 {
		return ""
	}
	lines := make([]string, 0, len(fees))
	for i, f := range fees {
		no := f.Seq
		if no == "" {
			no = fmt.Sprintf("%d", i+1)
		}
		if f.IncVAT != "" {
			lines = append(lines, fmt.Sprintf("%s. %s: ฿%s / VAT ฿%s / ฿%s", no, f.Name, f.ExVAT, f.VAT, f.IncVAT))
		} else {
			lines = append(lines, fmt.Sprintf("%s. %s: ฿%s", no, f.Name, f.Amount))
		}
	}
	return strings.Join(lines, "\n")
}
