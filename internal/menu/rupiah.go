package menu

import (
	"strconv"
	"strings"
)

// FormatRupiah renders whole rupiah with dot thousands separators, e.g. "Rp 25.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "Rp " + b.String()
}

// ParseRupiah keeps only the digits of a display price. Anything without digits is zero.
func ParseRupiah(display string) int64 {
	var value int64
	for _, r := range display {
		if r >= '0' && r <= '9' {
			value = value*10 + int64(r-'0')
		}
	}
	return value
}
