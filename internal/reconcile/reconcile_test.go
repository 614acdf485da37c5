package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDerivesMissingLeg(t *testing.T) {
	got := Fill(Totals{Subtotal: "1000.00", VAT: "70.00"})
	assert.Equal(t, "1070.00", got.Total)

	got = Fill(Totals{Total: "1070.00", VAT: "70.00"})
	assert.Equal(t, "1000.00", got.Subtotal)

	got = Fill(Totals{Total: "1070.00", Subtotal: "1000.00"})
	assert.Equal(t, "70.00", got.VAT)
}

func TestFillLeavesCompleteTotalsAlone(t *testing.T) {
	in := Totals{Subtotal: "1000.00", VAT: "70.00", Total: "1070.00"}
	assert.Equal(t, in, Fill(in))
}

func TestFillNeedsTwoLegs(t *testing.T) {
	in := Totals{Subtotal: "1000.00"}
	assert.Equal(t, in, Fill(in))

	assert.Equal(t, Totals{}, Fill(Totals{}))
}

func TestFillSwallowsBadArithmetic(t *testing.T) {
	// VAT larger than total would go negative; the leg stays empty.
	got := Fill(Totals{Total: "10.00", VAT: "70.00"})
	assert.Equal(t, "", got.Subtotal)

	// Unparseable input passes through untouched.
	in := Totals{Subtotal: "abc", VAT: "70.00", Total: ""}
	assert.Equal(t, in, Fill(in))
}

func TestFillAcceptsRawDocumentAmounts(t *testing.T) {
	got := Fill(Totals{Subtotal: "1,000.00", VAT: "฿70.00"})
	assert.Equal(t, "1070.00", got.Total)
}
