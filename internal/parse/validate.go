package parse

import (
	"regexp"
	"time"
)

var (
	reTax13   = regexp.MustCompile(`^\d{13}$`)
	reBranch5 = regexp.MustCompile(`^\d{5}$`)
	reVATRate = regexp.MustCompile(`^\d{1,2}%?$`)
)

// The Valid* predicates check already-normalized row fields. Empty is
// valid everywhere: a blank cell is a review concern, not a format error.

// ValidDate8 reports whether v is empty or a calendar-valid YYYYMMDD.
func ValidDate8(v string) bool {
	if v == "" {
		return true
	}
	if !reDate8.MatchString(v) {
		return false
	}
	_, err := time.Parse("20060102", v)
	return err == nil
}

// ValidTax13 reports whether v is empty or exactly 13 digits.
func ValidTax13(v string) bool {
	return v == "" || reTax13.MatchString(v)
}

// ValidBranch5 reports whether v is empty or exactly 5 digits.
func ValidBranch5(v string) bool {
	return v == "" || reBranch5.MatchString(v)
}

// ValidPriceType reports whether v is one of the PEAK price-type flags.
func ValidPriceType(v string) bool {
	switch v {
	case "", "1", "2", "3":
		return true
	}
	return false
}

// ValidVATRate reports whether v is empty, the literal "NO", or a one- or
// two-digit percentage with an optional "%" suffix.
func ValidVATRate(v string) bool {
	if v == "" || v == "NO" || v == "no" || v == "No" {
		return true
	}
	return reVATRate.MatchString(v)
}
