package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09-12-2025", "20251209"},
		{"9/12/25", "20251209"},
		{"2025-12-09", "20251209"},
		{"20251209", "20251209"},
		{"Dec 9, 2025", "20251209"},
		{"December 9, 2025", "20251209"},
		{"9 Dec 2025", "20251209"},
		{"17.12.2025", "20251217"},
		{"2025/1/5", "20250105"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Date(c.in), "input %q", c.in)
	}
}

func TestDateBuddhistEra(t *testing.T) {
	assert.Equal(t, "20251217", Date("17/12/2568"))
	assert.Equal(t, "20240101", Date("2567-01-01"))
}

func TestDateRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"09-13-2025", // month 13
		"30/02/2025", // Feb 30
		"2025-00-10",
		"32/01/2025",
		"not a date",
		"12345",
		"",
		"Foo 9, 2025",
	} {
		assert.Equal(t, "", Date(in), "input %q", in)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1234.50", Money("1,234.50"))
	assert.Equal(t, "1234.50", Money("1234.50"))
	assert.Equal(t, "1234", Money("1,234"))
	assert.Equal(t, "310895.00", Money("฿310,895.00"))
	assert.Equal(t, "99.9", Money("99.9 THB"))
	assert.Equal(t, "7.50", Money("007.50"))
}

func TestMoneyIdempotent(t *testing.T) {
	for _, in := range []string{"1,234.50", "0.07", "12345", "9.9"} {
		once := Money(in)
		assert.Equal(t, once, Money(once), "input %q", in)
	}
}

func TestMoneyRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1.2.3", "12,34x.567"} {
		assert.Equal(t, "", Money(in), "input %q", in)
	}
}

func TestTaxID(t *testing.T) {
	assert.Equal(t, "0105558019581", TaxID("0105558019581"))
	assert.Equal(t, "0105558019581", TaxID("0-1055-58019-58-1"))
	assert.Equal(t, "0105558019581", TaxID(" 0105 5580 1958 1 "))
	assert.Equal(t, "", TaxID("010555801958"))    // 12 digits
	assert.Equal(t, "", TaxID("01055580195811"))  // 14 digits
	assert.Equal(t, "", TaxID(""))
}

func TestBranch(t *testing.T) {
	assert.Equal(t, "00000", Branch("สำนักงานใหญ่"))
	assert.Equal(t, "00000", Branch("Head Office"))
	assert.Equal(t, "00000", Branch("HEAD OFFICE 001"))
	assert.Equal(t, "00007", Branch("7"))
	assert.Equal(t, "00123", Branch("สาขาที่ 123"))
	assert.Equal(t, "12345", Branch("123456789"))
	assert.Equal(t, "", Branch("no digits here"))
}
