package console

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	emailPattern     = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	hasLowerPattern  = regexp.MustCompile(`[a-z]`)
	hasUpperPattern  = regexp.MustCompile(`[A-Z]`)
	hasDigitPattern  = regexp.MustCompile(`[0-9]`)
	minPasswordChars = 6
	minNameChars     = 2
)

// FieldErrors maps a form field to a readable message. Empty means valid.
type FieldErrors map[string]string

func (f FieldErrors) Valid() bool {
	return len(f) == 0
}

func (f FieldErrors) add(field string, value any, rules ...validation.Rule) {
	if err := validation.Validate(value, rules...); err != nil {
		f[field] = err.Error()
	}
}

var (
	emailRules = []validation.Rule{
		validation.Required.Error("Invalid email format"),
		validation.Match(emailPattern).Error("Invalid email format"),
	}
	passwordRules = []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.Length(minPasswordChars, 0).Error("Password must be at least 6 characters"),
		validation.Match(hasLowerPattern).Error("Password needs a lowercase letter"),
		validation.Match(hasUpperPattern).Error("Password needs an uppercase letter"),
		validation.Match(hasDigitPattern).Error("Password needs a digit"),
	}
	roleRules = []validation.Rule{
		validation.Required.Error("Role selection is required"),
		validation.In(RoleAdmin, RoleFinanceManager, RoleCustomer).Error("Role selection is required"),
	}
	amountRules = []validation.Rule{
		validation.By(positiveAmount),
	}
)

func positiveAmount(value any) error {
	amount, ok := value.(float64)
	if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("Amount must be greater than zero")
	}
	return nil
}

func nonNegativeBalance(value any) error {
	balance, ok := value.(float64)
	if !ok || math.IsNaN(balance) || math.IsInf(balance, 0) || balance < 0 {
		return fmt.Errorf("Balance must be zero or more")
	}
	return nil
}

// IsValidEmail checks the address shape after trimming surrounding space.
func IsValidEmail(email string) bool {
	return validation.Validate(strings.TrimSpace(email), emailRules...) == nil
}

// IsValidPassword requires six characters with a lowercase letter, an
// uppercase letter and a digit.
func IsValidPassword(password string) bool {
	return validation.Validate(password, passwordRules...) == nil
}

// IsValidAmount accepts finite amounts above zero.
func IsValidAmount(amount float64) bool {
	return validation.Validate(amount, amountRules...) == nil
}

func IsValidRole(role Role) bool {
	return validation.Validate(role, roleRules...) == nil
}

// UserForm is the admin create/edit user form.
type UserForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func ValidateUserForm(form UserForm) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", strings.TrimSpace(form.Name),
		validation.Required.Error("Name must be at least 2 characters"),
		validation.Length(minNameChars, 0).Error("Name must be at least 2 characters"),
	)
	errs.add("email", strings.TrimSpace(form.Email), emailRules...)
	errs.add("role", form.Role, roleRules...)
	return errs
}

// WalletForm is the admin create/edit wallet form.
type WalletForm struct {
	User     string   `json:"user"`
	Email    string   `json:"email"`
	Balance  float64  `json:"balance"`
	Currency Currency `json:"currency"`
}

// ValidateWalletForm checks the owner name, the optional email, the balance
// and the currency.
func ValidateWalletForm(form WalletForm) FieldErrors {
	errs := FieldErrors{}
	errs.add("user", strings.TrimSpace(form.User),
		validation.Required.Error("Customer name is required"),
	)
	if email := strings.TrimSpace(form.Email); email != "" {
		errs.add("email", email, emailRules...)
	}
	errs.add("balance", form.Balance, validation.By(nonNegativeBalance))
	errs.add("currency", form.Currency,
		validation.Required.Error("Currency is required"),
		validation.In(CurrencyINR, CurrencyUSD, CurrencyEUR).Error("Currency is not supported"),
	)
	return errs
}

// Wallet builds the record the form describes.
func (f WalletForm) Wallet() Wallet {
	return Wallet{
		User:     strings.TrimSpace(f.User),
		Email:    strings.TrimSpace(f.Email),
		Balance:  f.Balance,
		Currency: f.Currency,
	}
}

// PaymentForm is the customer new payment form.
type PaymentForm struct {
	User   string  `json:"user"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}

func ValidatePaymentForm(form PaymentForm) FieldErrors {
	errs := FieldErrors{}
	errs.add("user", strings.TrimSpace(form.User),
		validation.Required.Error("Payee is required"),
	)
	errs.add("amount", form.Amount, amountRules...)
	return errs
}

// Payment builds the record the form describes. Status is assigned by the store.
func (f PaymentForm) Payment() Payment {
	return Payment{
		User:   strings.TrimSpace(f.User),
		Amount: f.Amount,
		Date:   f.Date,
	}
}

// User builds the record the form describes. New users start active.
func (f UserForm) User() User {
	return User{
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Role:   f.Role,
		Active: true,
	}
}
