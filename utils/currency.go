package utils

import (
	"fmt"
	"strings"
)

// FormatRupiah memformat nominal Rupiah utuh (int64) dengan pemisah ribuan.
// Contoh: 350000 -> "Rp 350.000". Semua aritmetika uang di aplikasi ini
// memakai int64, jadi tidak ada bagian desimal.
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	formatted := "Rp " + strings.Join(groups, ".")
	if negative {
		return "-" + formatted
	}
	return formatted
}
