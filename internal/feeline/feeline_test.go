package feeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const lazadaKeywords = `(?:Payment\s*Fee|Commission|Premium\s*Package|LazCoins|Sponsored|Voucher|Marketing|Service|Discovery|Participation|Funded)`

func TestScanNumberedRows(t *testing.T) {
	s := NewScanner("Lazada Fees", 8, lazadaKeywords)
	text := strings.Join([]string{
		"1 Payment Fee 188.99",
		"2 Commission 1,119.20",
		"3 Total (Including Tax) 1,399.00",
		"4 Sponsored Discovery 0.00",
		"5 LazCoins Program 50.00",
	}, "\n")

	fees := s.Scan(text)
	assert.Len(t, fees, 3)
	assert.Equal(t, Fee{Seq: "1", Name: "Payment Fee", Amount: "188.99"}, fees[0])
	assert.Equal(t, "Commission", fees[1].Name)
	assert.Equal(t, "1119.20", fees[1].Amount)
	assert.Equal(t, "LazCoins Program", fees[2].Name)
}

func TestScanKeywordFilter(t *testing.T) {
	s := NewScanner("Fees", 5, lazadaKeywords)

	// No keyword, totals rows and tax rows never count as fees.
	assert.Empty(t, s.Scan("1 Some Product 100.00"))
	assert.Empty(t, s.Scan("Total 100.00"))
	assert.Empty(t, s.Scan("1 Service ภาษีมูลค่าเพิ่ม 100.00"))
}

func TestScanRespectsLimitAndOrder(t *testing.T) {
	s := NewScanner("Fees", 2, `Fee`)
	text := "Alpha Fee 1.00\nBeta Fee 2.00\nGamma Fee 3.00"

	fees := s.Scan(text)
	assert.Len(t, fees, 2)
	assert.Equal(t, "Alpha Fee", fees[0].Name)
	assert.Equal(t, "Beta Fee", fees[1].Name)
}

func TestScanColumns(t *testing.T) {
	s := NewScanner("Lazada Fees", 8, lazadaKeywords)
	text := strings.Join([]string{
		"Payment Fee 176.63 12.36 188.99",
		"Commission 1,046.00 73.20 1,119.20",
	}, "\n")

	fees := s.ScanColumns(text)
	assert.Len(t, fees, 2)
	assert.Equal(t, "176.63", fees[0].ExVAT)
	assert.Equal(t, "12.36", fees[0].VAT)
	assert.Equal(t, "188.99", fees[0].IncVAT)
	assert.Equal(t, "188.99", fees[0].Amount)
}

func TestScanColumnsIgnoresSingleAmountRows(t *testing.T) {
	s := NewScanner("Fees", 5, `Fee`)
	assert.Empty(t, s.ScanColumns("Payment Fee 188.99"))
}

func TestSummary(t *testing.T) {
	s := NewScanner("Lazada Fees", 8, lazadaKeywords)

	assert.Equal(t, "", s.Summary(nil))

	fees := []Fee{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}}
	assert.Equal(t, "Lazada Fees: A, B, C (+2 more)", s.Summary(fees))

	assert.Equal(t, "Lazada Fees: A", s.Summary(fees[:1]))
}

func TestNote(t *testing.T) {
	assert.Equal(t, "", Note(nil))

	fees := []Fee{
		{Seq: "1", Name: "Payment Fee", Amount: "188.99"},
		{Name: "Commission", Amount: "1119.20"},
	}
	got := Note(fees)
	assert.Equal(t, "1. Payment Fee: ฿188.99\n2. Commission: ฿1119.20", got)
}

func TestNoteFourColumn(t *testing.T) {
	fees := []Fee{{Seq: "1", Name: "Payment Fee", Amount: "188.99",
		ExVAT: "176.63", VAT: "12.36", IncVAT: "188.99"}}
	assert.Equal(t, "1. Payment Fee: ฿176.63 / VAT ฿12.36 / ฿188.99", Note(fees))
}

func TestLongNameTruncated(t *testing.T) {
	s := NewScanner("Fees", 5, `Fee`)
	long := strings.Repeat("x", 100) + " Fee"
	fees := s.Scan("1 " + long + " 10.00")
	if assert.Len(t, fees, 1) {
		assert.LessOrEqual(t, len([]rune(fees[0].Name)), 90)
	}
}
