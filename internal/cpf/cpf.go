// Package cpf normalizes and validates Brazilian taxpayer numbers (CPF).
package cpf

import "strings"

// Length is the number of digits of a normalized CPF.
const Length = 11

// Normalize strips every non-digit character from s.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Valid reports whether s, once normalized, is an 11-digit CPF whose two
// trailing check digits match the ones computed from its first nine digits.
func Valid(s string) bool {
	digits := Normalize(s)
	if len(digits) != Length {
		return false
	}
	if repeated(digits) {
		return false
	}

	first := checkDigit(digits[:9], 10)
	second := checkDigit(digits[:9]+string(rune('0'+first)), 11)

	return int(digits[9]-'0') == first && int(digits[10]-'0') == second
}

func checkDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}

	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func repeated(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
