package console

import (
	"math"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout        = "2006-01-02"
	displayDateLayout = "02 Jan 2006"
	zeroRupees        = "₹0.00"
)

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

var currencySymbols = map[Currency]string{
	CurrencyINR: "₹",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
}

// FormatCurrency renders amount with the currency symbol and en-IN digit
// grouping. Unknown currencies fall back to their code as prefix.
func FormatCurrency(amount float64, currency Currency) string {
	if math.IsNaN(amount) {
		return zeroRupees
	}
	if currency == "" {
		currency = CurrencyINR
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = string(currency) + " "
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + currencyPrinter.Sprintf("%.2f", amount)
}

// FormatDate renders YYYY-MM-DD (or RFC 3339) as "14 Oct 2025". Empty or
// unparsable input yields an empty string.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return ""
		}
	}
	return monday.Format(t, displayDateLayout, monday.LocaleEnUS)
}

// Tone is the badge class used to render a payment status.
func (s PaymentStatus) Tone() string {
	switch s {
	case PaymentPending:
		return "bg-red-500"
	case PaymentProcessing:
		return "bg-yellow-500"
	case PaymentCompleted:
		return "bg-green-500"
	default:
		return ""
	}
}
