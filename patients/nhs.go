package patients

import (
	"strings"
)

const nhsNumberLength = 10

// NormalizeNhsNumber strips the spaces and dashes NHS numbers are commonly written with.
func NormalizeNhsNumber(value string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))
}

// IsValidNhsNumber applies the modulus 11 check to a 10 digit NHS number.
func IsValidNhsNumber(value string) bool {
	number := NormalizeNhsNumber(value)
	if len(number) != nhsNumberLength {
		return false
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return false
		}
	}

	check, ok := NhsNumberCheckDigit(number[:nhsNumberLength-1])
	return ok && check == int(number[nhsNumberLength-1]-'0')
}

// NhsNumberCheckDigit computes the check digit for the first nine digits of an NHS
// number. Sequences whose check digit would be 10 can't be issued and return false.
func NhsNumberCheckDigit(digits string) (int, bool) {
	if len(digits) != nhsNumberLength-1 {
		return 0, false
	}

	sum := 0
	for i, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		sum += int(c-'0') * (nhsNumberLength - i)
	}

	check := 11 - sum%11
	switch check {
	case 11:
		return 0, true
	case 10:
		return 0, false
	default:
		return check, true
	}
}
