package services

import (
	"fmt"
	"strings"
)

// FormatINR formats an amount using the Indian numbering system, where the
// rightmost 3 digits form the first group and every 2 digits group after
// that (e.g. ₹12,34,567.00). Always two decimal places.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	var groups []string
	if n := len(intPart); n > 3 {
		head := intPart[:n-3]
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		groups = append(groups, intPart[n-3:])
	} else {
		groups = []string{intPart}
	}

	return sign + "₹" + strings.Join(groups, ",") + "." + decPart
}
