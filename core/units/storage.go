// Package units formats storage sizes and prices for display.
package units

import (
	"github.com/shopspring/decimal"
)

// GBPerTB is the binary conversion used throughout the catalog (1.20 TB = 1228.8 GB)
var GBPerTB = decimal.NewFromInt(1024)

// FormatStorage renders a GB figure as "512.00 GB" below one terabyte and
// as "1.20 TB" from 1024 GB upward.
func FormatStorage(gb decimal.Decimal) string {
	if gb.GreaterThanOrEqual(GBPerTB) {
		return gb.Div(GBPerTB).StringFixed(2) + " TB"
	}
	return gb.StringFixed(2) + " GB"
}

// TBToGB converts terabytes to gigabytes
func TBToGB(tb decimal.Decimal) decimal.Decimal {
	return tb.Mul(GBPerTB)
}

// FormatCost renders a currency amount as "$111.19"
func FormatCost(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatRate renders a per-GB rate with enough precision for quarter-cent steps
func FormatRate(rate decimal.Decimal) string {
	return "$" + rate.StringFixed(4) + "/GB"
}
