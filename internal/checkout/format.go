package checkout

import "strings"

// FormatCardNumber normalizes card input as the user types: digits
// only, capped at 16, grouped into blocks of four.
func FormatCardNumber(raw string) string {
	digits := digitsOnly(raw, 16)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry normalizes expiry input: digits only, capped at four,
// with the separator inserted after the month once a third digit
// appears.
func FormatExpiry(raw string) string {
	digits := digitsOnly(raw, 4)
	if len(digits) >= 3 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// FormatCVV keeps at most four digits.
func FormatCVV(raw string) string {
	return digitsOnly(raw, 4)
}

// FormatZip keeps at most five digits.
func FormatZip(raw string) string {
	return digitsOnly(raw, 5)
}

// FormatCity strips digits; city names never contain them.
func FormatCity(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(raw string, limit int) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == limit {
				break
			}
		}
	}
	return b.String()
}
