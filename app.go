package console

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-wallet-console/client"
)

// SourceMode selects where resource stores load their collections from.
type SourceMode string

const (
	// SourceFixture serves the built in data set after a simulated delay
	SourceFixture SourceMode = "fixture"
	// SourceRemote lists through the REST API
	SourceRemote SourceMode = "remote"
	// SourceLocal reads and writes collections in the key-value store
	SourceLocal SourceMode = "local"
)

func (m SourceMode) IsValid() bool {
	switch m {
	case SourceFixture, SourceRemote, SourceLocal:
		return true
	default:
		return false
	}
}

// Storage keys of the local collections.
const (
	StorageKeyUsers    = "users"
	StorageKeyWallets  = "wallets"
	StorageKeyPayments = "payments"
)

// App wires the session, router and resource stores around one key-value
// store and one Resource Client.
type App struct {
	Storage  KeyValueStore
	Client   *client.Client
	Session  *Session
	Routes   *RouteTable
	Guard    *Guard
	Router   *Router
	Users    *UserStore
	Wallets  *WalletStore
	Payments *PaymentStore
}

type appConfig struct {
	mode          SourceMode
	auth          Authenticator
	prompter      Prompter
	logger        Logger
	activity      ActivitySink
	ids           IDGenerator
	clientOptions []client.Option
	routes        []Route
	fixtureDelay  *time.Duration
	now           func() time.Time
}

// AppOption customizes NewApp.
type AppOption func(*appConfig)

func WithSourceMode(mode SourceMode) AppOption {
	return func(c *appConfig) {
		c.mode = mode
	}
}

// WithAuthenticator sets the login backend, which defaults to posting to the
// API login endpoint.
func WithAuthenticator(auth Authenticator) AppOption {
	return func(c *appConfig) {
		c.auth = auth
	}
}

func WithPrompter(p Prompter) AppOption {
	return func(c *appConfig) {
		c.prompter = p
	}
}

func WithLogger(logger Logger) AppOption {
	return func(c *appConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithActivitySink(sink ActivitySink) AppOption {
	return func(c *appConfig) {
		c.activity = sink
	}
}

func WithIDGenerator(ids IDGenerator) AppOption {
	return func(c *appConfig) {
		c.ids = ids
	}
}

// WithClientOptions is passed through to client.New.
func WithClientOptions(opts ...client.Option) AppOption {
	return func(c *appConfig) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

func WithRoutes(routes ...Route) AppOption {
	return func(c *appConfig) {
		c.routes = routes
	}
}

// WithFixtureDelay overrides the simulated latency of fixture sources.
func WithFixtureDelay(d time.Duration) AppOption {
	return func(c *appConfig) {
		c.fixtureDelay = &d
	}
}

func WithClock(clock func() time.Time) AppOption {
	return func(c *appConfig) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewApp builds the console. The client's 401 handler expires the session,
// which only touches storage and the router, so it never issues a call.
func NewApp(storage KeyValueStore, opts ...AppOption) (*App, error) {
	if storage == nil {
		return nil, errors.New("key-value storage is required", errors.CategoryBadInput)
	}

	cfg := &appConfig{
		mode:   SourceFixture,
		logger: defLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if !cfg.mode.IsValid() {
		return nil, errors.New("unknown source mode", errors.CategoryBadInput).
			WithMetadata(map[string]any{"mode": cfg.mode})
	}
	if cfg.ids == nil {
		cfg.ids = NewClockIDGenerator(cfg.now)
	}

	app := &App{Storage: storage}

	clientOpts := []client.Option{
		client.WithLogger(cfg.logger),
		client.WithTokenSource(client.TokenSourceFunc(func() string {
			return app.Session.Token()
		})),
		client.WithUnauthorizedHandler(func(ctx context.Context, res *client.Response) {
			cfg.logger.Warn("api answered %d, expiring session", res.StatusCode)
			if err := app.Session.Expire(ctx); err != nil {
				cfg.logger.Error("session expiry failed: %v", err)
			}
		}),
	}
	app.Client = client.New(append(clientOpts, cfg.clientOptions...)...)

	auth := cfg.auth
	if auth == nil {
		auth = NewRemoteAuthenticator(app.Client)
	}

	app.Session = NewSession(storage, auth,
		WithSessionLogger(cfg.logger),
		WithSessionActivitySink(cfg.activity),
		WithSessionClock(cfg.now),
	)

	table, err := NewRouteTable(cfg.routes...)
	if err != nil {
		return nil, err
	}
	app.Routes = table

	guardOpts := []GuardOption{
		WithGuardLogger(cfg.logger),
		WithGuardActivitySink(cfg.activity),
		WithGuardClock(cfg.now),
	}
	if cfg.prompter != nil {
		guardOpts = append(guardOpts, WithGuardPrompter(cfg.prompter))
	}
	app.Guard = NewGuard(app.Session, guardOpts...)
	app.Router = NewRouter(table, app.Guard, WithRouterLogger(cfg.logger))
	app.Session.SetNavigator(app.Router)

	app.Users = NewUserStore(storeOptions(app, cfg, StorageKeyUsers, "/users", FixtureUsersDelay, FixtureUsers())...)
	app.Wallets = NewWalletStore(storeOptions(app, cfg, StorageKeyWallets, "/wallets", FixtureWalletsDelay, FixtureWallets())...)
	app.Payments = NewPaymentStore(storeOptions(app, cfg, StorageKeyPayments, "/payments", FixturePaymentsDelay, FixturePayments())...)

	return app, nil
}

func storeOptions[T any](app *App, cfg *appConfig, key, path string, delay time.Duration, fixtures []T) []StoreOption[T] {
	opts := []StoreOption[T]{
		WithStoreIDGenerator[T](cfg.ids),
		WithStoreLogger[T](cfg.logger),
	}

	switch cfg.mode {
	case SourceRemote:
		opts = append(opts, WithStoreSource[T](NewRemoteSource(client.NewResource[T](app.Client, path))))
	case SourceLocal:
		local := NewLocalSource[T](app.Storage, key)
		opts = append(opts, WithStoreSource[T](local), WithStoreSink[T](local))
	default:
		if cfg.fixtureDelay != nil {
			delay = *cfg.fixtureDelay
		}
		opts = append(opts, WithStoreSource[T](NewFixtureSource(delay, fixtures...)))
	}
	return opts
}

// Start restores the persisted session and settles the router on path.
func (a *App) Start(ctx context.Context, path string) (Location, error) {
	if err := a.Session.Hydrate(ctx); err != nil {
		return Location{}, err
	}
	if path == "" {
		path = "/"
	}
	return a.Router.Push(ctx, path)
}

// Refresh fetches all three collections, returning the first failure.
func (a *App) Refresh(ctx context.Context) error {
	var first error
	for _, fetch := range []func(context.Context) error{
		a.Users.FetchAll,
		a.Wallets.FetchAll,
		a.Payments.FetchAll,
	} {
		if err := fetch(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
