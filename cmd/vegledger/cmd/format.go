package cmd

import (
	"github.com/dustin/go-humanize"
)

// formatCurrency renders an amount with thousands separators.
func formatCurrency(amount float64) string {
	if amount < 0 {
		return "-₹" + humanize.CommafWithDigits(-amount, 2)
	}
	return "₹" + humanize.CommafWithDigits(amount, 2)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
