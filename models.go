package console

// PaymentStatus is the processing state of a payment
type PaymentStatus string

const (
	// PaymentPending is the state every new payment starts in
	PaymentPending PaymentStatus = "PENDING"
	// PaymentProcessing is picked up by finance
	PaymentProcessing PaymentStatus = "PROCESSING"
	// PaymentCompleted is settled
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// IsValid checks the status is one of the predefined values
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted:
		return true
	default:
		return false
	}
}

// Currency of a wallet balance
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists the supported currencies
var Currencies = []Currency{CurrencyINR, CurrencyUSD, CurrencyEUR}

// IsValid checks the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}

// DefaultWalletBalance is the opening balance of a new wallet
const DefaultWalletBalance = 0

const (
	AppName    = "Digital Wallet System"
	AppVersion = "1.0.0"
)

// User is an account managed by admins
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`
}

// Wallet holds a balance for a customer. User is a weak reference by name.
type Wallet struct {
	ID       int64    `json:"id"`
	User     string   `json:"user"`
	Email    string   `json:"email,omitempty"`
	Balance  float64  `json:"balance"`
	Currency Currency `json:"currency"`
}

// Payment is a transfer request tracked by finance
type Payment struct {
	ID     int64         `json:"id"`
	User   string        `json:"user"`
	Amount float64       `json:"amount"`
	Status PaymentStatus `json:"status"`
	Date   string        `json:"date,omitempty"`
}
