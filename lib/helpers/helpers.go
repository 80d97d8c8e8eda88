package helpers

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmountUS formats a currency amount with comma thousand separators and
// up to two decimals, e.g. 1,351,420.55.
func FormatAmountUS(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", amount)
}

// FormatPrice renders a quote price with its currency symbol.
func FormatPrice(currencySymbol string, price float64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, price)
}

// FormatChange renders a price move as "-1.23 (-0.45%)".
func FormatChange(change, changePercent float64) string {
	return fmt.Sprintf("%.2f (%.2f%%)", change, changePercent)
}

// FormatVolume renders a share count with thousand separators.
func FormatVolume(volume int64) string {
	return humanize.Comma(volume)
}
