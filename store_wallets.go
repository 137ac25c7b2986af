package console

import (
	"context"
	"fmt"
	"strings"
)

const msgWalletsFetchFailed = "Unable to load wallets"

// WalletStore backs the wallet list, detail and form screens.
type WalletStore struct {
	*Store[Wallet]
}

func NewWalletStore(opts ...StoreOption[Wallet]) *WalletStore {
	handlers := StoreHandlers[Wallet]{
		GetID: func(w Wallet) int64 { return w.ID },
		SetID: func(w *Wallet, id int64) { w.ID = id },
		Prepare: func(w *Wallet) {
			if w.Currency == "" {
				w.Currency = CurrencyINR
			}
		},
	}
	return &WalletStore{Store: NewStore("wallets", msgWalletsFetchFailed, handlers, opts...)}
}

// ForUser finds the wallet owned by name or email, case insensitive.
func (s *WalletStore) ForUser(nameOrEmail string) (Wallet, bool) {
	needle := strings.TrimSpace(nameOrEmail)
	matches := s.Filter(func(w Wallet) bool {
		return strings.EqualFold(w.User, needle) || (w.Email != "" && strings.EqualFold(w.Email, needle))
	})
	if len(matches) == 0 {
		return Wallet{}, false
	}
	return matches[0], true
}

// Recharge adds a positive amount to the wallet balance, false when the
// wallet is missing or the amount is not valid.
func (s *WalletStore) Recharge(id int64, amount float64) bool {
	if !IsValidAmount(amount) {
		return false
	}
	return s.Mutate(id, func(w *Wallet) {
		w.Balance += amount
	})
}

// ConfirmDeleteWallet prompts with the owner name before deleting.
func (s *WalletStore) ConfirmDeleteWallet(ctx context.Context, prompter Prompter, id int64, owner string) bool {
	return s.ConfirmDelete(ctx, prompter, id, fmt.Sprintf("Delete wallet for %s?", owner))
}
