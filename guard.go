package console

import (
	"context"
	"time"
)

const msgAccessDenied = "Access denied"

// SessionView is the part of the session the guard reads.
type SessionView interface {
	Token() string
	Role() Role
}

// Decision is the outcome of a guard check. A zero Redirect means the
// transition is allowed.
type Decision struct {
	Redirect RouteName
	// Denied is set when the redirect was caused by a role mismatch.
	Denied bool
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func allow() Decision {
	return Decision{}
}

func redirect(to RouteName) Decision {
	return Decision{Redirect: to}
}

// Guard enforces authentication and role membership before each route
// transition.
type Guard struct {
	session  SessionView
	prompter Prompter
	activity ActivitySink
	logger   Logger
	now      func() time.Time
}

// GuardOption customizes the Guard.
type GuardOption func(*Guard)

// WithGuardPrompter sets where the access denied alert is surfaced.
func WithGuardPrompter(p Prompter) GuardOption {
	return func(g *Guard) {
		if p != nil {
			g.prompter = p
		}
	}
}

func WithGuardActivitySink(sink ActivitySink) GuardOption {
	return func(g *Guard) {
		g.activity = normalizeActivitySink(sink)
	}
}

func WithGuardLogger(logger Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithGuardClock(clock func() time.Time) GuardOption {
	return func(g *Guard) {
		if clock != nil {
			g.now = clock
		}
	}
}

func NewGuard(session SessionView, opts ...GuardOption) *Guard {
	g := &Guard{
		session:  session,
		prompter: PrompterFuncs{},
		activity: noopActivitySink{},
		logger:   defLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Check evaluates a transition into route:
//  1. the login route skips the token check
//  2. no token redirects to login
//  3. a role outside the route's set alerts and redirects to login
//  4. an authenticated visit to login bounces to the role's home
//  5. anything else is allowed
func (g *Guard) Check(ctx context.Context, route Route) Decision {
	token := g.session.Token()
	role := g.session.Role()
	isLogin := route.Name == RouteLogin

	if !isLogin && token == "" {
		g.logger.Debug("guard: %s requires a session", route.Name)
		return redirect(RouteLogin)
	}

	if route.RequiresRoles() && !route.Allows(role) {
		g.logger.Info("guard: role %q denied on %s", role, route.Name)
		g.prompter.Alert(ctx, msgAccessDenied)
		recordActivity(ctx, g.activity, g.logger, g.now, ActivityEvent{
			EventType: ActivityEventAccessDenied,
			Role:      role,
			Route:     route.Name,
		})
		return Decision{Redirect: RouteLogin, Denied: true}
	}

	if isLogin && token != "" {
		if home, ok := role.HomeRoute(); ok {
			return redirect(home)
		}
	}

	return allow()
}
