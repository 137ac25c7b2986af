package console

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/gorilla/mux"
)

// RouteName identifies a screen of the console.
type RouteName string

const (
	RouteLogin            RouteName = "Login"
	RouteAdminUsers       RouteName = "AdminUsers"
	RouteAdminUserNew     RouteName = "AdminUserNew"
	RouteWalletList       RouteName = "WalletList"
	RouteWalletNew        RouteName = "WalletNew"
	RouteWalletDetail     RouteName = "WalletDetail"
	RouteWalletEdit       RouteName = "WalletEdit"
	RouteMyWallet         RouteName = "MyWallet"
	RouteWalletRecharge   RouteName = "WalletRecharge"
	RoutePaymentDashboard RouteName = "PaymentDashboard"
	RoutePaymentNew       RouteName = "PaymentNew"
	RoutePaymentEdit      RouteName = "PaymentEdit"
)

func (n RouteName) String() string {
	return string(n)
}

const catchAllRoute = "catch-all"

// Route is one entry of the route table. Empty Roles means any
// authenticated principal may enter.
type Route struct {
	Name  RouteName
	Path  string
	Roles []Role
}

// RequiresRoles reports whether the route declares a role set.
func (r Route) RequiresRoles() bool {
	return len(r.Roles) > 0
}

// Allows reports whether role may enter the route.
func (r Route) Allows(role Role) bool {
	if !r.RequiresRoles() {
		return true
	}
	return role.In(r.Roles...)
}

// Param is a path parameter used to build a route URL.
type Param struct {
	Key   string
	Value string
}

// IDParam is the {id} parameter of detail and edit routes.
func IDParam(id int64) Param {
	return Param{Key: "id", Value: strconv.FormatInt(id, 10)}
}

// DefaultRoutes is the console route table in registration order. Static
// segments are registered ahead of the {id} patterns they overlap with.
func DefaultRoutes() []Route {
	all := GetAllRoles()
	backOffice := []Role{RoleAdmin, RoleFinanceManager}
	return []Route{
		{Name: RouteLogin, Path: "/"},
		{Name: RouteAdminUsers, Path: "/admin/users", Roles: []Role{RoleAdmin}},
		{Name: RouteAdminUserNew, Path: "/admin/users/new", Roles: []Role{RoleAdmin}},
		{Name: RouteWalletList, Path: "/wallets", Roles: backOffice},
		{Name: RouteWalletNew, Path: "/wallets/new", Roles: []Role{RoleAdmin}},
		{Name: RouteWalletDetail, Path: "/wallets/{id}", Roles: all},
		{Name: RouteWalletEdit, Path: "/wallets/{id}/edit", Roles: []Role{RoleAdmin}},
		{Name: RouteMyWallet, Path: "/my-wallet", Roles: []Role{RoleCustomer}},
		{Name: RouteWalletRecharge, Path: "/wallet/recharge", Roles: []Role{RoleCustomer}},
		{Name: RoutePaymentDashboard, Path: "/payments", Roles: backOffice},
		{Name: RoutePaymentNew, Path: "/payments/new", Roles: []Role{RoleCustomer}},
		{Name: RoutePaymentEdit, Path: "/payments/{id}", Roles: backOffice},
	}
}

// RouteTable resolves paths to routes and builds URLs from names. Paths no
// route claims fall through to the login route.
type RouteTable struct {
	mux    *mux.Router
	routes map[RouteName]Route
	order  []Route
}

// NewRouteTable registers routes in order. The table must contain RouteLogin,
// which doubles as the fallback.
func NewRouteTable(routes ...Route) (*RouteTable, error) {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}

	t := &RouteTable{
		mux:    mux.NewRouter(),
		routes: make(map[RouteName]Route, len(routes)),
	}

	for _, route := range routes {
		if _, exists := t.routes[route.Name]; exists {
			return nil, errors.New("duplicate route name", errors.CategoryBadInput).
				WithMetadata(map[string]any{"route": route.Name})
		}
		r := t.mux.Path(route.Path).Name(route.Name.String())
		if err := r.GetError(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid route path").
				WithMetadata(map[string]any{"route": route.Name, "path": route.Path})
		}
		route.Roles = append([]Role(nil), route.Roles...)
		t.routes[route.Name] = route
		t.order = append(t.order, route)
	}

	if _, ok := t.routes[RouteLogin]; !ok {
		return nil, errors.New("route table needs a login route", errors.CategoryBadInput)
	}

	t.mux.PathPrefix("/").Name(catchAllRoute)
	return t, nil
}

// Lookup finds a route by name.
func (t *RouteTable) Lookup(name RouteName) (Route, bool) {
	route, ok := t.routes[name]
	return route, ok
}

// Routes returns the table in registration order.
func (t *RouteTable) Routes() []Route {
	return append([]Route(nil), t.order...)
}

// Resolve matches path against the table, ignoring a trailing slash and the
// case of static segments. Parameter values keep their original case. The
// boolean is false when only the catch-all matched, in which case the login
// route is returned.
func (t *RouteTable) Resolve(path string) (Route, map[string]string, bool) {
	clean := strings.TrimRight(path, "/")
	if clean == "" {
		clean = "/"
	}
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: strings.ToLower(clean)}}
	var match mux.RouteMatch
	if t.mux.Match(req, &match) && match.Route != nil {
		if route, ok := t.routes[RouteName(match.Route.GetName())]; ok {
			return route, originalVars(match.Route, clean, match.Vars), true
		}
	}
	return t.routes[RouteLogin], map[string]string{}, false
}

// originalVars reads each variable back from path at the segment its
// template declares it.
func originalVars(route *mux.Route, path string, vars map[string]string) map[string]string {
	tpl, err := route.GetPathTemplate()
	if err != nil || len(vars) == 0 {
		return vars
	}
	segments := strings.Split(path, "/")
	out := make(map[string]string, len(vars))
	for i, part := range strings.Split(tpl, "/") {
		if !strings.HasPrefix(part, "{") || i >= len(segments) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}")
		name, _, _ = strings.Cut(name, ":")
		if _, ok := vars[name]; ok {
			out[name] = segments[i]
		}
	}
	for k, v := range vars {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// URL builds the path for name using params.
func (t *RouteTable) URL(name RouteName, params ...Param) (string, error) {
	if _, ok := t.routes[name]; !ok {
		return "", annotate(ErrRouteNotFound, nil, map[string]any{"route": name})
	}
	pairs := make([]string, 0, len(params)*2)
	for _, p := range params {
		pairs = append(pairs, p.Key, p.Value)
	}
	u, err := t.mux.Get(name.String()).URLPath(pairs...)
	if err != nil {
		return "", annotate(ErrRouteNotFound, err, map[string]any{"route": name})
	}
	return u.Path, nil
}
