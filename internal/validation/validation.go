// Package validation holds the pure field predicates applied before any
// payment state is touched. Each predicate is side-effect free; a false
// result is a terminal, user-visible rejection.
package validation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	nameRe          = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)*$`)
	accountNumberRe = regexp.MustCompile(`^[0-9]{6,20}$`)
	swiftCodeRe     = regexp.MustCompile(`^[A-Za-z0-9]{8}$|^[A-Za-z0-9]{11}$`)
)

// Name reports whether s is 1-50 characters of letters, with single spaces
// allowed between words. Used for recipient and bank names.
func Name(s string) bool {
	return len(s) >= 1 && len(s) <= 50 && nameRe.MatchString(s)
}

// AccountNumber reports whether s is a 6-20 digit account number.
func AccountNumber(s string) bool {
	return accountNumberRe.MatchString(s)
}

// Amount reports whether n is strictly positive.
func Amount(n decimal.Decimal) bool {
	return n.IsPositive()
}

// SwiftCode reports whether s is exactly 8 or 11 alphanumeric characters.
func SwiftCode(s string) bool {
	return swiftCodeRe.MatchString(s)
}
