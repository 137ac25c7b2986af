package console_test

import (
	"math"
	"testing"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"rohit@wallet.com", "  anjali.singh@mail.co.in ", "k-rao_1@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a@b.c", "a@b.toolong", "a b@c.com"}

	for _, email := range valid {
		assert.True(t, console.IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, console.IsValidEmail(email), email)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, console.IsValidPassword("Secret1"))
	assert.True(t, console.IsValidPassword("aB3def"))

	for _, pw := range []string{"", "Pw1", "secret1", "SECRET1", "Secretx"} {
		assert.False(t, console.IsValidPassword(pw), pw)
	}
}

func TestIsValidAmount(t *testing.T) {
	assert.True(t, console.IsValidAmount(0.01))
	assert.True(t, console.IsValidAmount(1200))
	assert.False(t, console.IsValidAmount(0))
	assert.False(t, console.IsValidAmount(-1))
	assert.False(t, console.IsValidAmount(math.NaN()))
	assert.False(t, console.IsValidAmount(math.Inf(1)))
}

func TestIsValidRole(t *testing.T) {
	for _, role := range console.GetAllRoles() {
		assert.True(t, console.IsValidRole(role))
	}
	assert.False(t, console.IsValidRole(console.RoleNone))
	assert.False(t, console.IsValidRole("admin"))
}

func TestValidateUserForm(t *testing.T) {
	errs := console.ValidateUserForm(console.UserForm{Name: " A ", Email: "nope", Role: ""})
	assert.Equal(t, console.FieldErrors{
		"name":  "Name must be at least 2 characters",
		"email": "Invalid email format",
		"role":  "Role selection is required",
	}, errs)

	errs = console.ValidateUserForm(console.UserForm{Name: "Kiran Rao", Email: "kiran@wallet.com", Role: console.RoleFinanceManager})
	assert.True(t, errs.Valid())
}

func TestValidateWalletForm(t *testing.T) {
	errs := console.ValidateWalletForm(console.WalletForm{User: "Kiran", Email: "kiran@mail.com", Balance: 2500, Currency: console.CurrencyINR})
	assert.True(t, errs.Valid())

	errs = console.ValidateWalletForm(console.WalletForm{User: "Kiran", Balance: 0, Currency: console.CurrencyUSD})
	assert.True(t, errs.Valid(), "email is optional and zero balance is allowed")

	errs = console.ValidateWalletForm(console.WalletForm{Email: "bad", Balance: -1, Currency: "GBP"})
	assert.Contains(t, errs, "user")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "balance")
	assert.Equal(t, "Currency is not supported", errs["currency"])
}

func TestValidatePaymentForm(t *testing.T) {
	errs := console.ValidatePaymentForm(console.PaymentForm{User: "Anjali Singh", Amount: 150})
	assert.True(t, errs.Valid())

	errs = console.ValidatePaymentForm(console.PaymentForm{Amount: math.NaN()})
	assert.Equal(t, "Amount must be greater than zero", errs["amount"])
	assert.Contains(t, errs, "user")
}
