package console_test

import (
	"context"
	"testing"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, session console.SessionView, prompter console.Prompter) *console.Router {
	t.Helper()
	table, err := console.NewRouteTable()
	require.NoError(t, err)
	guard := newTestGuard(session, prompter, nil)
	return console.NewRouter(table, guard, console.WithRouterLogger(quietLogger{}))
}

func TestRouterNeverRendersDeniedTarget(t *testing.T) {
	prompter := &recordingPrompter{}
	router := newTestRouter(t, staticSession{token: "tok", role: console.RoleCustomer}, prompter)

	loc, err := router.Push(context.Background(), "/admin/users")
	require.NoError(t, err)

	// denied to login, then login bounces the customer home
	assert.Equal(t, console.RouteMyWallet, loc.Route)
	assert.Equal(t, "/my-wallet", loc.Path)
	assert.True(t, loc.Denied)
	assert.Equal(t, loc, router.Current())
	assert.Equal(t, []string{"Access denied"}, prompter.alerts)
}

func TestRouterAnonymousLandsOnLogin(t *testing.T) {
	router := newTestRouter(t, staticSession{}, &recordingPrompter{})

	loc, err := router.Navigate(context.Background(), console.RouteWalletDetail, console.IDParam(101))
	require.NoError(t, err)
	assert.Equal(t, console.RouteLogin, loc.Route)
	assert.Equal(t, "/", loc.Path)
	assert.False(t, loc.Denied)
}

func TestRouterCatchAllFallsBackToLogin(t *testing.T) {
	router := newTestRouter(t, staticSession{token: "tok", role: console.RoleFinanceManager}, &recordingPrompter{})

	loc, err := router.Push(context.Background(), "/nope")
	require.NoError(t, err)
	assert.Equal(t, console.RoutePaymentDashboard, loc.Route)
}

func TestRouterToleratesTrailingSlash(t *testing.T) {
	router := newTestRouter(t, staticSession{token: "tok", role: console.RoleFinanceManager}, &recordingPrompter{})

	loc, err := router.Push(context.Background(), "/wallets/")
	require.NoError(t, err)
	assert.Equal(t, console.RouteWalletList, loc.Route)
	assert.Equal(t, "/wallets/", loc.Path)
}

func TestRouterCarriesParams(t *testing.T) {
	router := newTestRouter(t, staticSession{token: "tok", role: console.RoleAdmin}, &recordingPrompter{})

	loc, err := router.Navigate(context.Background(), console.RouteWalletEdit, console.IDParam(103))
	require.NoError(t, err)
	assert.Equal(t, console.RouteWalletEdit, loc.Route)
	assert.Equal(t, "/wallets/103/edit", loc.Path)
	assert.Equal(t, map[string]string{"id": "103"}, loc.Params)

	current := router.Current()
	current.Params["id"] = "999"
	assert.Equal(t, "103", router.Current().Params["id"])
}

func TestRouterUnknownNameKeepsLocation(t *testing.T) {
	router := newTestRouter(t, staticSession{token: "tok", role: console.RoleAdmin}, &recordingPrompter{})
	_, err := router.Push(context.Background(), "/admin/users")
	require.NoError(t, err)

	loc, err := router.Navigate(context.Background(), "Reports")
	assert.ErrorIs(t, err, console.ErrRouteNotFound)
	assert.Equal(t, console.RouteAdminUsers, loc.Route)
}

// loopSession is a customer whose home route only admits admins.
type loopSession struct{}

func (loopSession) Token() string      { return "tok" }
func (loopSession) Role() console.Role { return console.RoleCustomer }

func TestRouterDetectsRedirectLoop(t *testing.T) {
	table, err := console.NewRouteTable(
		console.Route{Name: console.RouteLogin, Path: "/"},
		console.Route{Name: console.RouteMyWallet, Path: "/my-wallet", Roles: []console.Role{console.RoleAdmin}},
	)
	require.NoError(t, err)
	guard := newTestGuard(loopSession{}, &recordingPrompter{}, nil)
	router := console.NewRouter(table, guard, console.WithRouterLogger(quietLogger{}))

	_, err = router.Push(context.Background(), "/")
	assert.ErrorIs(t, err, console.ErrRedirectLoop)
}
