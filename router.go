package console

import (
	"context"
	"sync"
)

// MaxRedirects bounds how many guard redirects a single transition follows.
const MaxRedirects = 8

// Location is where the router settled after a transition.
type Location struct {
	Route  RouteName         `json:"route"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
	// Denied is set when a role check redirected the transition.
	Denied bool `json:"denied,omitempty"`
}

// Router runs every transition through the Guard and follows its redirects.
type Router struct {
	mu      sync.RWMutex
	table   *RouteTable
	guard   *Guard
	current Location
	logger  Logger
}

// RouterOption customizes the Router.
type RouterOption func(*Router)

func WithRouterLogger(logger Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRouter(table *RouteTable, guard *Guard, opts ...RouterOption) *Router {
	r := &Router{
		table:  table,
		guard:  guard,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Navigate transitions to a named route.
func (r *Router) Navigate(ctx context.Context, name RouteName, params ...Param) (Location, error) {
	path, err := r.table.URL(name, params...)
	if err != nil {
		return r.Current(), err
	}
	return r.Push(ctx, path)
}

// Push transitions to a path. Unknown paths land on the login route.
func (r *Router) Push(ctx context.Context, path string) (Location, error) {
	loc, err := r.resolve(ctx, path)
	if err != nil {
		return r.Current(), err
	}

	r.mu.Lock()
	r.current = loc
	r.mu.Unlock()

	r.logger.Debug("navigated to %s (%s)", loc.Route, loc.Path)
	return loc, nil
}

// Current is the last settled location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc := r.current
	if loc.Params != nil {
		params := make(map[string]string, len(loc.Params))
		for k, v := range loc.Params {
			params[k] = v
		}
		loc.Params = params
	}
	return loc
}

// Table exposes the route table.
func (r *Router) Table() *RouteTable {
	return r.table
}

func (r *Router) resolve(ctx context.Context, path string) (Location, error) {
	denied := false
	for hop := 0; hop <= MaxRedirects; hop++ {
		route, params, matched := r.table.Resolve(path)
		if !matched {
			r.logger.Debug("no route for %q, falling back to %s", path, RouteLogin)
			if path, _ = r.table.URL(RouteLogin); path == "" {
				path = "/"
			}
		}

		decision := r.guard.Check(ctx, route)
		if decision.Allowed() {
			return Location{
				Route:  route.Name,
				Path:   path,
				Params: params,
				Denied: denied,
			}, nil
		}

		denied = denied || decision.Denied
		next, err := r.table.URL(decision.Redirect)
		if err != nil {
			return Location{}, err
		}
		r.logger.Debug("guard redirected %s to %s", route.Name, decision.Redirect)
		path = next
	}
	return Location{}, annotate(ErrRedirectLoop, nil, map[string]any{
		"path":  path,
		"limit": MaxRedirects,
	})
}
