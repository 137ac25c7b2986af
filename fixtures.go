package console

import "time"

// Simulated latencies of the fixture sources.
const (
	FixtureUsersDelay    = 500 * time.Millisecond
	FixtureWalletsDelay  = 600 * time.Millisecond
	FixturePaymentsDelay = 500 * time.Millisecond
)

func FixtureUsers() []User {
	return []User{
		{ID: 1, Name: "Rohit Mehta", Email: "rohit@wallet.com", Role: RoleAdmin, Active: true},
		{ID: 2, Name: "Anjali Singh", Email: "anjali@wallet.com", Role: RoleCustomer, Active: true},
		{ID: 3, Name: "Kiran Rao", Email: "kiran@wallet.com", Role: RoleFinanceManager, Active: false},
	}
}

func FixtureWallets() []Wallet {
	return []Wallet{
		{ID: 101, User: "Anjali Singh", Email: "anjali@wallet.com", Balance: 4500, Currency: CurrencyINR},
		{ID: 102, User: "Rohit Mehta", Email: "rohit@wallet.com", Balance: 9820, Currency: CurrencyINR},
		{ID: 103, User: "Kiran Rao", Email: "kiran@wallet.com", Balance: 2650, Currency: CurrencyINR},
	}
}

func FixturePayments() []Payment {
	return []Payment{
		{ID: 501, User: "Anjali Singh", Amount: 1200, Status: PaymentCompleted, Date: "2025-10-14"},
		{ID: 502, User: "Rohit Mehta", Amount: 850, Status: PaymentPending, Date: "2025-10-13"},
		{ID: 503, User: "Kiran Rao", Amount: 2200, Status: PaymentProcessing, Date: "2025-10-12"},
	}
}
