package console_test

import (
	"context"
	"errors"
	"testing"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFetchAllReplacesCollection(t *testing.T) {
	ctx := context.Background()
	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreItems(console.User{ID: 99, Name: "Stale"}),
		console.WithStoreSource[console.User](console.NewFixtureSource(0, console.FixtureUsers()...)),
	)

	require.NoError(t, users.FetchAll(ctx))
	assert.Equal(t, console.FixtureUsers(), users.List())
	assert.False(t, users.Loading())
	assert.Empty(t, users.LastError())

	_, ok := users.Get(99)
	assert.False(t, ok)
}

func TestStoreFetchAllFailureKeepsItems(t *testing.T) {
	cases := []struct {
		name    string
		fetch   func(console.Source[console.Wallet]) *console.WalletStore
		message string
	}{
		{
			name: "wallets",
			fetch: func(src console.Source[console.Wallet]) *console.WalletStore {
				return console.NewWalletStore(
					console.WithStoreLogger[console.Wallet](quietLogger{}),
					console.WithStoreItems(console.FixtureWallets()...),
					console.WithStoreSource(src),
				)
			},
			message: "Unable to load wallets",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failing := console.SourceFunc[console.Wallet](func(ctx context.Context) ([]console.Wallet, error) {
				return nil, errors.New("timeout")
			})
			store := tc.fetch(failing)

			err := store.FetchAll(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, console.ErrFetchFailed)
			assert.Equal(t, tc.message, store.LastError())
			assert.Equal(t, console.FixtureWallets(), store.List())
			assert.False(t, store.Loading())
		})
	}
}

func TestStoreFetchAllErrorMessages(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreSource[console.User](console.SourceFunc[console.User](func(context.Context) ([]console.User, error) {
			return nil, boom
		})),
	)
	payments := console.NewPaymentStore(
		console.WithStoreLogger[console.Payment](quietLogger{}),
		console.WithStoreSource[console.Payment](console.SourceFunc[console.Payment](func(context.Context) ([]console.Payment, error) {
			panic("network stack gone")
		})),
	)

	assert.Error(t, users.FetchAll(ctx))
	assert.Equal(t, "Failed to fetch users", users.LastError())

	assert.Error(t, payments.FetchAll(ctx))
	assert.Equal(t, "Error fetching payments", payments.LastError())
	assert.False(t, payments.Loading())
}

func TestStoreFetchAllClearsPreviousError(t *testing.T) {
	fail := true
	src := console.SourceFunc[console.User](func(context.Context) ([]console.User, error) {
		if fail {
			return nil, errors.New("offline")
		}
		return console.FixtureUsers(), nil
	})
	users := console.NewUserStore(console.WithStoreLogger[console.User](quietLogger{}), console.WithStoreSource[console.User](src))

	require.Error(t, users.FetchAll(context.Background()))
	fail = false
	require.NoError(t, users.FetchAll(context.Background()))
	assert.Empty(t, users.LastError())
	assert.Equal(t, 3, users.Len())
}

func TestPaymentCreateAlwaysPending(t *testing.T) {
	payments := console.NewPaymentStore(
		console.WithStoreLogger[console.Payment](quietLogger{}),
		console.WithStoreIDGenerator[console.Payment](console.NewSequenceIDGenerator(900)),
		console.WithStoreItems(console.FixturePayments()...),
	)

	for _, status := range []console.PaymentStatus{console.PaymentCompleted, console.PaymentProcessing, "", "BOGUS"} {
		created := payments.Create(console.Payment{User: "Anjali Singh", Amount: 10, Status: status})
		assert.Equal(t, console.PaymentPending, created.Status)

		stored, ok := payments.Get(created.ID)
		require.True(t, ok)
		assert.Equal(t, console.PaymentPending, stored.Status)
	}

	list := payments.List()
	require.Len(t, list, 7)
	assert.Equal(t, int64(903), list[0].ID, "payments are prepended")
}

func TestUserAndWalletCreateAppend(t *testing.T) {
	ids := console.NewSequenceIDGenerator(1000)
	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreIDGenerator[console.User](ids),
		console.WithStoreItems(console.FixtureUsers()...),
	)
	wallets := console.NewWalletStore(
		console.WithStoreLogger[console.Wallet](quietLogger{}),
		console.WithStoreIDGenerator[console.Wallet](ids),
	)

	u := users.Create(console.User{ID: 1, Name: "Meera Das", Role: console.RoleCustomer})
	assert.Equal(t, int64(1000), u.ID, "caller ids are replaced")
	list := users.List()
	assert.Equal(t, u, list[len(list)-1])

	w := wallets.Create(console.Wallet{User: "Meera Das", Balance: 100})
	assert.Equal(t, int64(1001), w.ID)
	assert.Equal(t, console.CurrencyINR, w.Currency)
}

func TestCreateIDsAreNotReusedAfterDelete(t *testing.T) {
	users := console.NewUserStore(console.WithStoreLogger[console.User](quietLogger{}))
	first := users.Create(console.User{Name: "A"})
	require.True(t, users.Delete(first.ID))
	second := users.Create(console.User{Name: "B"})
	assert.Greater(t, second.ID, first.ID)
}

func TestUpdateUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	wallets := console.NewWalletStore(
		console.WithStoreLogger[console.Wallet](quietLogger{}),
		console.WithStoreItems(console.FixtureWallets()...),
	)
	before := wallets.List()

	assert.False(t, wallets.Update(console.Wallet{ID: 4242, User: "Ghost", Balance: 1}))
	assert.Equal(t, before, wallets.List())

	updated := before[1]
	updated.Balance = 10000
	assert.True(t, wallets.Update(updated))
	got, ok := wallets.Get(updated.ID)
	require.True(t, ok)
	assert.Equal(t, float64(10000), got.Balance)
}

func TestDeleteIsIdempotent(t *testing.T) {
	once := console.NewUserStore(console.WithStoreLogger[console.User](quietLogger{}), console.WithStoreItems(console.FixtureUsers()...))
	twice := console.NewUserStore(console.WithStoreLogger[console.User](quietLogger{}), console.WithStoreItems(console.FixtureUsers()...))

	assert.True(t, once.Delete(2))
	assert.True(t, twice.Delete(2))
	assert.False(t, twice.Delete(2))
	assert.Equal(t, once.List(), twice.List())
	assert.False(t, once.Delete(77))
	assert.Equal(t, 2, once.Len())
}

func TestWalletDeleteScenario(t *testing.T) {
	wallets := console.NewWalletStore(
		console.WithStoreLogger[console.Wallet](quietLogger{}),
		console.WithStoreItems(console.Wallet{ID: 1, User: "Anjali", Balance: 1200}),
	)

	wallets.Delete(1)

	assert.Equal(t, 0, wallets.Len())
	_, found := wallets.ForUser("Anjali")
	assert.False(t, found)
}

func TestWalletConfirmDelete(t *testing.T) {
	ctx := context.Background()
	wallets := console.NewWalletStore(
		console.WithStoreLogger[console.Wallet](quietLogger{}),
		console.WithStoreItems(console.FixtureWallets()...),
	)

	declined := &recordingPrompter{confirm: false}
	assert.False(t, wallets.ConfirmDeleteWallet(ctx, declined, 101, "Anjali Singh"))
	assert.Equal(t, []string{"Delete wallet for Anjali Singh?"}, declined.asked)
	assert.Equal(t, 3, wallets.Len())

	accepted := &recordingPrompter{confirm: true}
	assert.True(t, wallets.ConfirmDeleteWallet(ctx, accepted, 101, "Anjali Singh"))
	assert.Equal(t, 2, wallets.Len())
}

func TestWalletRechargeAndLookup(t *testing.T) {
	wallets := console.NewWalletStore(
		console.WithStoreLogger[console.Wallet](quietLogger{}),
		console.WithStoreItems(console.FixtureWallets()...),
	)

	w, ok := wallets.ForUser("ANJALI@wallet.com")
	require.True(t, ok)
	assert.Equal(t, int64(101), w.ID)

	assert.True(t, wallets.Recharge(101, 500))
	assert.False(t, wallets.Recharge(101, -5))
	assert.False(t, wallets.Recharge(999, 5))

	w, _ = wallets.Get(101)
	assert.Equal(t, float64(5000), w.Balance)
}

func TestPaymentStatusViews(t *testing.T) {
	payments := console.NewPaymentStore(
		console.WithStoreLogger[console.Payment](quietLogger{}),
		console.WithStoreItems(
			console.Payment{ID: 1, Status: console.PaymentPending},
			console.Payment{ID: 2, Status: console.PaymentCompleted},
		),
	)

	assert.Equal(t, []console.Payment{{ID: 1, Status: console.PaymentPending}}, payments.Pending())
	assert.Equal(t, []console.Payment{{ID: 2, Status: console.PaymentCompleted}}, payments.Completed())
	assert.Empty(t, payments.Processing())

	assert.True(t, payments.UpdateStatus(1, console.PaymentProcessing))
	assert.False(t, payments.UpdateStatus(3, console.PaymentProcessing))

	assert.Empty(t, payments.Pending())
	assert.Len(t, payments.Processing(), 1)
	assert.Len(t, payments.ByStatus(console.PaymentCompleted), 1)
}

func TestUserViews(t *testing.T) {
	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreItems(console.FixtureUsers()...),
	)

	assert.Len(t, users.Active(), 2)
	admins := users.ByRole(console.RoleAdmin)
	require.Len(t, admins, 1)
	assert.Equal(t, "Rohit Mehta", admins[0].Name)
}

func TestListReturnsCopy(t *testing.T) {
	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreItems(console.FixtureUsers()...),
	)
	list := users.List()
	list[0].Name = "Mutated"

	got, _ := users.Get(1)
	assert.Equal(t, "Rohit Mehta", got.Name)
}
