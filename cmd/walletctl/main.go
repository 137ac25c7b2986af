// Command walletctl drives the wallet console from a terminal. The session
// and local collections persist in the configured key-value store between
// invocations.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	console "github.com/goliatone/go-wallet-console"
	"github.com/goliatone/go-wallet-console/client"
	"github.com/goliatone/go-wallet-console/config"
	"github.com/goliatone/go-wallet-console/storage"
	"github.com/goliatone/go-print"
	"github.com/spf13/pflag"
)

const usage = `usage: walletctl [flags] <command> [args]

commands:
  login     --email --password --role
  logout
  whoami
  open      <path>
  seed      write the fixture data set into local storage
  users     [list | new --name --email --role | delete <id>]
  wallets   [list | show <id> | new --user --email --balance --currency |
             edit <id> --balance --currency | delete <id> | mine | recharge <amount>]
  payments  [list | pending | processing | completed | new --user --amount |
             status <id> <STATUS> | delete <id>]

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "walletctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("walletctl", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configFile := flags.StringP("config", "c", "", "config file (.json, .yaml)")
	envFile := flags.String("env-file", config.DefaultEnvFile, "dotenv file")
	source := flags.String("source", "", "data source: fixture, remote or local")
	baseURL := flags.String("base-url", "", "API base URL")
	dsn := flags.String("dsn", "", "sqlite DSN for the session store")
	verbose := flags.BoolP("verbose", "v", false, "log debug output")
	yes := flags.BoolP("yes", "y", false, "answer yes to confirmations")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	overrides := map[string]any{}
	if *source != "" {
		overrides["data.source"] = *source
	}
	if *baseURL != "" {
		overrides["api.base_url"] = *baseURL
	}
	if *dsn != "" {
		overrides["storage.driver"] = config.StorageSQLite
		overrides["storage.dsn"] = *dsn
	}

	cfg, err := config.Load(
		config.WithFile(*configFile),
		config.WithEnvFile(*envFile),
		config.WithOverrides(overrides),
	)
	if err != nil {
		return err
	}

	logger := &stderrLogger{w: stderr, verbose: *verbose}
	logger.Debug("config: %s", print.MaybePrettyJSON(cfg))

	kv, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer kv.Close()

	c := &cli{
		cfg:    cfg,
		out:    stdout,
		logger: logger,
	}
	prompter := console.PrompterFuncs{
		AlertFunc: func(_ context.Context, message string) {
			fmt.Fprintln(stderr, message)
		},
		ConfirmFunc: func(_ context.Context, message string) bool {
			if *yes {
				return true
			}
			fmt.Fprintf(stderr, "%s [y/N] ", message)
			answer, _ := bufio.NewReader(stdin).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			return answer == "y" || answer == "yes"
		},
	}
	c.prompter = prompter

	opts := []console.AppOption{
		console.WithSourceMode(console.SourceMode(cfg.Data.Source)),
		console.WithLogger(logger),
		console.WithPrompter(prompter),
		console.WithFixtureDelay(cfg.Data.FixtureDelay),
		console.WithActivitySink(console.ActivitySinkFunc(func(_ context.Context, e console.ActivityEvent) error {
			logger.Info("activity %s email=%s role=%s route=%s", e.EventType, e.Email, e.Role, e.Route)
			return nil
		})),
		console.WithClientOptions(
			client.WithBaseURL(cfg.API.BaseURL),
			client.WithTimeout(cfg.API.Timeout),
		),
	}
	if cfg.Auth.Mode == config.AuthDemo {
		c.demo = console.NewDemoAuthenticator([]byte(cfg.Auth.SigningKey),
			console.WithDemoIssuer(cfg.Auth.Issuer),
			console.WithDemoDelay(cfg.Auth.Delay),
			console.WithDemoTTL(cfg.Auth.TTL),
		)
		opts = append(opts, console.WithAuthenticator(c.demo))
	}

	app, err := console.NewApp(kv, opts...)
	if err != nil {
		return err
	}
	c.app = app

	if err := app.Session.Hydrate(ctx); err != nil {
		return err
	}

	name, rest := flags.Arg(0), flags.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		flags.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd(ctx, c, rest)
}

func openStorage(ctx context.Context, cfg config.Storage) (storage.Store, error) {
	if cfg.Driver == config.StorageMemory {
		return storage.NewMemory(), nil
	}
	return storage.OpenSQLite(ctx, cfg.DSN)
}

type stderrLogger struct {
	w       io.Writer
	verbose bool
}

func (l *stderrLogger) Debug(format string, args ...any) {
	if l.verbose {
		l.printf("DBG", format, args...)
	}
}

func (l *stderrLogger) Info(format string, args ...any) {
	if l.verbose {
		l.printf("INF", format, args...)
	}
}

func (l *stderrLogger) Warn(format string, args ...any) {
	l.printf("WRN", format, args...)
}

func (l *stderrLogger) Error(format string, args ...any) {
	l.printf("ERR", format, args...)
}

func (l *stderrLogger) printf(level, format string, args ...any) {
	fmt.Fprintf(l.w, "%s [%s] "+format+"\n", append([]any{time.Now().Format(time.TimeOnly), level}, args...)...)
}
