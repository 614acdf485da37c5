// Package textnorm canonicalizes raw document text before any pattern
// matching runs. Normalization is pure and idempotent: applying it twice
// yields the same string, so callers may normalize defensively.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// thaiDigits maps Thai numerals to their Arabic equivalents.
var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)

// FoldDigits converts Thai numerals to Arabic and leaves everything else
// alone. Useful for inputs that arrive outside the normal document path,
// such as filter values and shop names.
func FoldDigits(s string) string {
	return thaiDigits.Replace(s)
}

// Normalize canonicalizes text extracted from a document. Thai digits
// become Arabic, Unicode composes to NFC, NUL bytes and the Thai
// repetition mark are dropped, runs of horizontal whitespace collapse to
// a single space, and blank lines disappear. Newlines are preserved
// because the extractors are line-oriented.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = thaiDigits.Replace(s)
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "ๆ", "")
	s = strings.ReplaceAll(s, "\x00", "")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(collapseBlanks(line))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// collapseBlanks squeezes runs of spaces, tabs and no-break spaces into a
// single ASCII space. PDF text layers emit U+00A0 between columns, which
// Go's regexp \s does not match, so it must become a plain space here.
func collapseBlanks(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	blank := false
	for _, r := range line {
		if r == ' ' || r == '\t' || r == ' ' {
			blank = true
			continue
		}
		if blank && b.Len() > 0 {
			b.WriteByte(' ')
		}
		blank = false
		b.WriteRune(r)
	}
	return b.String()
}
