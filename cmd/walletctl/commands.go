package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	console "github.com/goliatone/go-wallet-console"
	"github.com/goliatone/go-wallet-console/client"
	"github.com/goliatone/go-wallet-console/config"
	"github.com/goliatone/go-print"
	"github.com/spf13/pflag"
)

type cli struct {
	cfg      *config.Config
	app      *console.App
	demo     *console.DemoAuthenticator
	prompter console.Prompter
	out      io.Writer
	logger   console.Logger
}

type command func(ctx context.Context, c *cli, args []string) error

var commands = map[string]command{
	"login":    loginCmd,
	"logout":   logoutCmd,
	"whoami":   whoamiCmd,
	"open":     openCmd,
	"seed":     seedCmd,
	"users":    usersCmd,
	"wallets":  walletsCmd,
	"payments": paymentsCmd,
}

func (c *cli) emit(v any) {
	fmt.Fprintln(c.out, print.MaybePrettyJSON(v))
}

// enter navigates to name and fails unless the guard let the transition through.
func (c *cli) enter(ctx context.Context, name console.RouteName, params ...console.Param) error {
	loc, err := c.app.Router.Navigate(ctx, name, params...)
	if err != nil {
		return err
	}
	if loc.Route != name {
		if loc.Denied {
			return fmt.Errorf("access denied to %s", name)
		}
		return fmt.Errorf("%s requires a session, run walletctl login", name)
	}
	return nil
}

func (c *cli) remote() bool {
	return c.cfg.Data.Source == config.SourceRemote
}

func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing id")
	}
	return strconv.ParseInt(args[0], 10, 64)
}

func formErrors(errs console.FieldErrors) error {
	if errs.Valid() {
		return nil
	}
	return fmt.Errorf("invalid form: %s", print.MaybePrettyJSON(errs))
}

func loginCmd(ctx context.Context, c *cli, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "ADMIN, FINANCE_MANAGER or CUSTOMER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, _ := console.ParseRole(*role)
	if err := c.app.Session.Login(ctx, *email, *password, parsed); err != nil {
		return fmt.Errorf("%s: %w", c.app.Session.LastError(), err)
	}
	c.emit(c.app.Router.Current())
	return nil
}

func logoutCmd(ctx context.Context, c *cli, _ []string) error {
	if err := c.app.Session.Logout(ctx); err != nil {
		return err
	}
	c.emit(c.app.Router.Current())
	return nil
}

func whoamiCmd(ctx context.Context, c *cli, _ []string) error {
	session := c.app.Session
	out := map[string]any{
		"authenticated": session.IsAuthenticated(),
		"role":          session.Role(),
	}
	if home, ok := session.Role().HomeRoute(); ok {
		out["home"] = home
	}
	if c.demo != nil && session.IsAuthenticated() {
		claims, err := c.demo.Parse(session.Token())
		if err != nil {
			return err
		}
		out["email"] = claims.Email
		if claims.ExpiresAt != nil {
			out["expires_at"] = claims.ExpiresAt.Time.Format(time.RFC3339)
		}
	}
	c.emit(out)
	return nil
}

func openCmd(ctx context.Context, c *cli, args []string) error {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}
	loc, err := c.app.Router.Push(ctx, path)
	if err != nil {
		return err
	}
	c.emit(loc)
	return nil
}

func seedCmd(ctx context.Context, c *cli, _ []string) error {
	if c.cfg.Data.Source != config.SourceLocal {
		return fmt.Errorf("seed only applies to the local data source")
	}
	kv := c.app.Storage
	if err := console.NewLocalSource[console.User](kv, console.StorageKeyUsers).Save(ctx, console.FixtureUsers()); err != nil {
		return err
	}
	if err := console.NewLocalSource[console.Wallet](kv, console.StorageKeyWallets).Save(ctx, console.FixtureWallets()); err != nil {
		return err
	}
	return console.NewLocalSource[console.Payment](kv, console.StorageKeyPayments).Save(ctx, console.FixturePayments())
}

func usersCmd(ctx context.Context, c *cli, args []string) error {
	sub, rest := subcommand(args)
	users := c.app.Users
	resource := client.NewResource[console.User](c.app.Client, "/users")

	switch sub {
	case "list":
		if err := c.enter(ctx, console.RouteAdminUsers); err != nil {
			return err
		}
		if err := users.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s: %w", users.LastError(), err)
		}
		c.emit(users.List())
		return nil

	case "new":
		if err := c.enter(ctx, console.RouteAdminUserNew); err != nil {
			return err
		}
		fs := pflag.NewFlagSet("users new", pflag.ContinueOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "email")
		role := fs.String("role", "", "role")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		parsed, _ := console.ParseRole(*role)
		form := console.UserForm{Name: *name, Email: *email, Role: parsed}
		if err := formErrors(console.ValidateUserForm(form)); err != nil {
			return err
		}
		if c.remote() {
			created, err := resource.Create(ctx, form.User())
			if err != nil {
				return err
			}
			c.emit(created)
			return nil
		}
		if err := users.FetchAll(ctx); err != nil {
			return err
		}
		c.emit(users.Create(form.User()))
		return nil

	case "delete":
		if err := c.enter(ctx, console.RouteAdminUsers); err != nil {
			return err
		}
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if c.remote() {
			if err := resource.Delete(ctx, id); err != nil {
				return err
			}
			c.emit(deleteResult{ID: id, Deleted: true})
			return nil
		}
		if err := users.FetchAll(ctx); err != nil {
			return err
		}
		if _, ok := users.Get(id); !ok {
			return fmt.Errorf("user %d not found", id)
		}
		deleted := users.ConfirmDelete(ctx, c.prompter, id, fmt.Sprintf("Delete user %d?", id))
		c.emit(deleteResult{ID: id, Deleted: deleted})
		return nil
	}
	return fmt.Errorf("unknown users command %q", sub)
}

func walletsCmd(ctx context.Context, c *cli, args []string) error {
	sub, rest := subcommand(args)
	wallets := c.app.Wallets
	resource := client.NewResource[console.Wallet](c.app.Client, "/wallets")

	load := func() error {
		if err := wallets.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s: %w", wallets.LastError(), err)
		}
		return nil
	}

	switch sub {
	case "list":
		if err := c.enter(ctx, console.RouteWalletList); err != nil {
			return err
		}
		if err := load(); err != nil {
			return err
		}
		c.emit(walletRows(wallets.List()))
		return nil

	case "show":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := c.enter(ctx, console.RouteWalletDetail, console.IDParam(id)); err != nil {
			return err
		}
		if c.remote() {
			w, err := resource.Get(ctx, id)
			if err != nil {
				return err
			}
			c.emit(walletRow(w))
			return nil
		}
		if err := load(); err != nil {
			return err
		}
		w, ok := wallets.Get(id)
		if !ok {
			return fmt.Errorf("wallet %d not found", id)
		}
		c.emit(walletRow(w))
		return nil

	case "new", "edit":
		var id int64
		var err error
		if sub == "edit" {
			if id, err = parseID(rest); err != nil {
				return err
			}
			rest = rest[1:]
			err = c.enter(ctx, console.RouteWalletEdit, console.IDParam(id))
		} else {
			err = c.enter(ctx, console.RouteWalletNew)
		}
		if err != nil {
			return err
		}
		if err := load(); err != nil {
			return err
		}

		form := console.WalletForm{Balance: console.DefaultWalletBalance, Currency: console.CurrencyINR}
		if sub == "edit" {
			current, ok := wallets.Get(id)
			if !ok {
				return fmt.Errorf("wallet %d not found", id)
			}
			form = console.WalletForm{User: current.User, Email: current.Email, Balance: current.Balance, Currency: current.Currency}
		}

		fs := pflag.NewFlagSet("wallets "+sub, pflag.ContinueOnError)
		fs.StringVar(&form.User, "user", form.User, "customer name")
		fs.StringVar(&form.Email, "email", form.Email, "customer email")
		fs.Float64Var(&form.Balance, "balance", form.Balance, "wallet balance")
		currency := fs.String("currency", string(form.Currency), "INR, USD or EUR")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		form.Currency = console.Currency(*currency)
		if err := formErrors(console.ValidateWalletForm(form)); err != nil {
			return err
		}

		wallet := form.Wallet()
		if sub == "new" {
			if c.remote() {
				created, err := resource.Create(ctx, wallet)
				if err != nil {
					return err
				}
				c.emit(walletRow(created))
				return nil
			}
			c.emit(walletRow(wallets.Create(wallet)))
			return nil
		}

		wallet.ID = id
		if c.remote() {
			if _, err := resource.Update(ctx, id, wallet); err != nil {
				return err
			}
		}
		wallets.Update(wallet)
		c.emit(walletRow(wallet))
		return nil

	case "delete":
		if err := c.enter(ctx, console.RouteWalletList); err != nil {
			return err
		}
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := load(); err != nil {
			return err
		}
		w, ok := wallets.Get(id)
		if !ok {
			return fmt.Errorf("wallet %d not found", id)
		}
		if !c.prompter.Confirm(ctx, fmt.Sprintf("Delete wallet for %s?", w.User)) {
			c.emit(deleteResult{ID: id})
			return nil
		}
		if c.remote() {
			if err := resource.Delete(ctx, id); err != nil {
				return err
			}
		}
		c.emit(deleteResult{ID: id, Deleted: wallets.Delete(id)})
		return nil

	case "mine", "recharge":
		route := console.RouteMyWallet
		if sub == "recharge" {
			route = console.RouteWalletRecharge
		}
		if err := c.enter(ctx, route); err != nil {
			return err
		}
		if err := load(); err != nil {
			return err
		}
		w, err := c.ownWallet()
		if err != nil {
			return err
		}
		if sub == "recharge" {
			if len(rest) == 0 {
				return fmt.Errorf("missing amount")
			}
			amount, err := strconv.ParseFloat(rest[0], 64)
			if err != nil || !console.IsValidAmount(amount) {
				return fmt.Errorf("amount must be greater than zero")
			}
			if !wallets.Recharge(w.ID, amount) {
				return fmt.Errorf("wallet %d not found", w.ID)
			}
			w, _ = wallets.Get(w.ID)
			if c.remote() {
				if _, err := resource.Update(ctx, w.ID, w); err != nil {
					return err
				}
			}
		}
		c.emit(walletRow(w))
		return nil
	}
	return fmt.Errorf("unknown wallets command %q", sub)
}

// identity is the signed in email or name. A hydrated session carries no
// profile, so demo tokens are decoded instead.
func (c *cli) identity() []string {
	if profile := c.app.Session.User(); profile != nil {
		return []string{profile.Email, profile.Name}
	}
	if c.demo != nil {
		if claims, err := c.demo.Parse(c.app.Session.Token()); err == nil {
			return []string{claims.Email}
		}
	}
	return nil
}

func (c *cli) ownWallet() (console.Wallet, error) {
	keys := c.identity()
	for _, key := range keys {
		if key == "" {
			continue
		}
		if w, ok := c.app.Wallets.ForUser(key); ok {
			return w, nil
		}
	}
	return console.Wallet{}, fmt.Errorf("no wallet for %v", keys)
}

func paymentsCmd(ctx context.Context, c *cli, args []string) error {
	sub, rest := subcommand(args)
	payments := c.app.Payments
	resource := client.NewResource[console.Payment](c.app.Client, "/payments")

	load := func() error {
		if err := payments.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s: %w", payments.LastError(), err)
		}
		return nil
	}

	switch sub {
	case "list", "pending", "processing", "completed":
		if err := c.enter(ctx, console.RoutePaymentDashboard); err != nil {
			return err
		}
		if err := load(); err != nil {
			return err
		}
		var rows []console.Payment
		switch sub {
		case "pending":
			rows = payments.Pending()
		case "processing":
			rows = payments.Processing()
		case "completed":
			rows = payments.Completed()
		default:
			rows = payments.List()
		}
		c.emit(paymentRows(rows))
		return nil

	case "new":
		if err := c.enter(ctx, console.RoutePaymentNew); err != nil {
			return err
		}
		fs := pflag.NewFlagSet("payments new", pflag.ContinueOnError)
		user := fs.String("user", "", "payee")
		amount := fs.Float64("amount", 0, "amount")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		form := console.PaymentForm{User: *user, Amount: *amount, Date: time.Now().Format("2006-01-02")}
		if form.User == "" {
			if keys := c.identity(); len(keys) > 0 {
				form.User = keys[0]
			}
		}
		if err := formErrors(console.ValidatePaymentForm(form)); err != nil {
			return err
		}
		if c.remote() {
			payment := form.Payment()
			payment.Status = console.PaymentPending
			created, err := resource.Create(ctx, payment)
			if err != nil {
				return err
			}
			c.emit(paymentRow(created))
			return nil
		}
		if err := load(); err != nil {
			return err
		}
		c.emit(paymentRow(payments.Create(form.Payment())))
		return nil

	case "status":
		if len(rest) < 2 {
			return fmt.Errorf("usage: payments status <id> <STATUS>")
		}
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := c.enter(ctx, console.RoutePaymentEdit, console.IDParam(id)); err != nil {
			return err
		}
		status := console.PaymentStatus(rest[1])
		if !status.IsValid() {
			return fmt.Errorf("unknown status %q", rest[1])
		}
		if c.remote() {
			if _, err := resource.Patch(ctx, id, map[string]any{"status": status}); err != nil {
				return err
			}
		}
		if err := load(); err != nil {
			return err
		}
		payments.UpdateStatus(id, status)
		if p, ok := payments.Get(id); ok {
			c.emit(paymentRow(p))
		}
		return nil

	case "delete":
		if err := c.enter(ctx, console.RoutePaymentDashboard); err != nil {
			return err
		}
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if c.remote() {
			if err := resource.Delete(ctx, id); err != nil {
				return err
			}
			c.emit(deleteResult{ID: id, Deleted: true})
			return nil
		}
		if err := load(); err != nil {
			return err
		}
		if _, ok := payments.Get(id); !ok {
			return fmt.Errorf("payment %d not found", id)
		}
		deleted := payments.ConfirmDelete(ctx, c.prompter, id, fmt.Sprintf("Delete payment %d?", id))
		c.emit(deleteResult{ID: id, Deleted: deleted})
		return nil
	}
	return fmt.Errorf("unknown payments command %q", sub)
}

// deleteResult is printed by every delete command; Deleted is false when the
// prompt was declined.
type deleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

type walletView struct {
	console.Wallet
	Display string `json:"display"`
}

func walletRow(w console.Wallet) walletView {
	return walletView{Wallet: w, Display: console.FormatCurrency(w.Balance, w.Currency)}
}

func walletRows(items []console.Wallet) []walletView {
	out := make([]walletView, 0, len(items))
	for _, w := range items {
		out = append(out, walletRow(w))
	}
	return out
}

type paymentView struct {
	console.Payment
	Display string `json:"display"`
	When    string `json:"when,omitempty"`
	Tone    string `json:"tone"`
}

func paymentRow(p console.Payment) paymentView {
	return paymentView{
		Payment: p,
		Display: console.FormatCurrency(p.Amount, console.CurrencyINR),
		When:    console.FormatDate(p.Date),
		Tone:    p.Status.Tone(),
	}
}

func paymentRows(items []console.Payment) []paymentView {
	out := make([]paymentView, 0, len(items))
	for _, p := range items {
		out = append(out, paymentRow(p))
	}
	return out
}
