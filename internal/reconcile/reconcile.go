// Package reconcile completes a document's money summary when one leg
// is missing. Amounts are canonical money strings; anything that does
// not parse is left exactly as it came in, because a wrong guess in an
// accounting import is worse than a blank.
package reconcile

import (
	"github.com/shopspring/decimal"

	"peakbridge/internal/parse"
)

// Totals is the ex-VAT / VAT / inc-VAT summary of one document.
type Totals struct {
	Subtotal string
	VAT      string
	Total    string
}

// Fill derives whichever leg is missing when the other two are present:
// total = subtotal + VAT, subtotal = total - VAT, VAT = total - subtotal.
// Results render with two decimals. Negative derivations are dropped,
// and inputs that fail to parse pass through untouched.
func Fill(t Totals) Totals {
	sub, okSub := num(t.Subtotal)
	vat, okVAT := num(t.VAT)
	tot, okTot := num(t.Total)

	switch {
	case !okTot && okSub && okVAT:
		t.Total = render(sub.Add(vat))
	case !okSub && okTot && okVAT:
		t.Subtotal = render(tot.Sub(vat))
	case !okVAT && okTot && okSub:
		t.VAT = render(tot.Sub(sub))
	}
	return t
}

func num(s string) (decimal.Decimal, bool) {
	if parse.Money(s) == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(parse.Money(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func render(d decimal.Decimal) string {
	if d.IsNegative() {
		return ""
	}
	return d.StringFixed(2)
}
