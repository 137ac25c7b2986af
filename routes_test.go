package console_test

import (
	"testing"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableResolve(t *testing.T) {
	table, err := console.NewRouteTable()
	require.NoError(t, err)

	cases := []struct {
		path    string
		route   console.RouteName
		params  map[string]string
		matched bool
	}{
		{"/", console.RouteLogin, map[string]string{}, true},
		{"/admin/users", console.RouteAdminUsers, map[string]string{}, true},
		{"/admin/users/new", console.RouteAdminUserNew, map[string]string{}, true},
		{"/wallets", console.RouteWalletList, map[string]string{}, true},
		{"/wallets/new", console.RouteWalletNew, map[string]string{}, true},
		{"/wallets/101", console.RouteWalletDetail, map[string]string{"id": "101"}, true},
		{"/wallets/101/edit", console.RouteWalletEdit, map[string]string{"id": "101"}, true},
		{"/my-wallet", console.RouteMyWallet, map[string]string{}, true},
		{"/wallet/recharge", console.RouteWalletRecharge, map[string]string{}, true},
		{"/payments", console.RoutePaymentDashboard, map[string]string{}, true},
		{"/payments/new", console.RoutePaymentNew, map[string]string{}, true},
		{"/payments/501", console.RoutePaymentEdit, map[string]string{"id": "501"}, true},
		{"/wallets/", console.RouteWalletList, map[string]string{}, true},
		{"/Wallets", console.RouteWalletList, map[string]string{}, true},
		{"/payments/501/", console.RoutePaymentEdit, map[string]string{"id": "501"}, true},
		{"/WALLETS/ab12/Edit", console.RouteWalletEdit, map[string]string{"id": "ab12"}, true},
		{"/does/not/exist", console.RouteLogin, map[string]string{}, false},
		{"/wallets/101/edit/extra", console.RouteLogin, map[string]string{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			route, params, matched := table.Resolve(tc.path)
			assert.Equal(t, tc.route, route.Name)
			assert.Equal(t, tc.matched, matched)
			assert.Equal(t, tc.params, params)
		})
	}
}

func TestRouteTableURL(t *testing.T) {
	table, err := console.NewRouteTable()
	require.NoError(t, err)

	path, err := table.URL(console.RouteWalletEdit, console.IDParam(102))
	require.NoError(t, err)
	assert.Equal(t, "/wallets/102/edit", path)

	path, err = table.URL(console.RouteLogin)
	require.NoError(t, err)
	assert.Equal(t, "/", path)

	_, err = table.URL("Nowhere")
	assert.ErrorIs(t, err, console.ErrRouteNotFound)

	_, err = table.URL(console.RouteWalletDetail)
	assert.ErrorIs(t, err, console.ErrRouteNotFound)
}

func TestRouteTableRequiresLogin(t *testing.T) {
	_, err := console.NewRouteTable(console.Route{Name: console.RouteMyWallet, Path: "/my-wallet"})
	assert.Error(t, err)

	_, err = console.NewRouteTable(
		console.Route{Name: console.RouteLogin, Path: "/"},
		console.Route{Name: console.RouteLogin, Path: "/login"},
	)
	assert.Error(t, err)
}

func TestRouteAllows(t *testing.T) {
	table, err := console.NewRouteTable()
	require.NoError(t, err)

	detail, ok := table.Lookup(console.RouteWalletDetail)
	require.True(t, ok)
	for _, role := range console.GetAllRoles() {
		assert.True(t, detail.Allows(role))
	}
	assert.False(t, detail.Allows(console.RoleNone))

	login, _ := table.Lookup(console.RouteLogin)
	assert.False(t, login.RequiresRoles())
	assert.Len(t, table.Routes(), 12)
}
