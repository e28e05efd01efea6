package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	cent    = decimal.NewFromFloat(0.01)
	million = decimal.NewFromInt(1_000_000)
)

// FormatUptime renders seconds as "{d}d {h}h {m}m", dropping the day part
// when it is zero.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatCurrency uses 8 decimals for sub-cent amounts and 2 otherwise.
func FormatCurrency(d decimal.Decimal) string {
	if d.LessThan(cent) {
		return "$" + d.StringFixed(8)
	}
	return "$" + d.StringFixed(2)
}

// FormatVolume renders d in millions with an M suffix.
func FormatVolume(d decimal.Decimal) string {
	return "$" + d.Div(million).StringFixed(2) + "M"
}

// FormatChange renders the magnitude of a percentage change; direction is
// conveyed separately.
func FormatChange(d decimal.Decimal) string {
	return d.Abs().StringFixed(1) + "%"
}
