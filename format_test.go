package console_test

import (
	"math"
	"testing"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹4,500.00", console.FormatCurrency(4500, console.CurrencyINR))
	assert.Equal(t, "₹850.50", console.FormatCurrency(850.5, ""))
	assert.Equal(t, "$12.00", console.FormatCurrency(12, console.CurrencyUSD))
	assert.Equal(t, "-€3.25", console.FormatCurrency(-3.25, console.CurrencyEUR))
	assert.Equal(t, "₹0.00", console.FormatCurrency(math.NaN(), console.CurrencyUSD))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "14 Oct 2025", console.FormatDate("2025-10-14"))
	assert.Equal(t, "02 Jan 2025", console.FormatDate("2025-01-02T10:00:00Z"))
	assert.Equal(t, "", console.FormatDate(""))
	assert.Equal(t, "", console.FormatDate("yesterday"))
}

func TestPaymentStatusTone(t *testing.T) {
	assert.Equal(t, "bg-red-500", console.PaymentPending.Tone())
	assert.Equal(t, "bg-yellow-500", console.PaymentProcessing.Tone())
	assert.Equal(t, "bg-green-500", console.PaymentCompleted.Tone())
	assert.Equal(t, "", console.PaymentStatus("LOST").Tone())
}
