package console

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// KeyValueStore is the durable storage the session and local sources persist to.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Navigator performs a client side transition to a named route.
type Navigator interface {
	Navigate(ctx context.Context, name RouteName, params ...Param) (Location, error)
}

// Prompter replaces blocking alert/confirm dialogs.
type Prompter interface {
	Alert(ctx context.Context, message string)
	Confirm(ctx context.Context, message string) bool
}

// Credentials is what the login form submits.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Grant is a successful authentication answer.
type Grant struct {
	Token string   `json:"token"`
	User  *Profile `json:"user,omitempty"`
}

// Profile describes the signed in principal.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Authenticator performs the login call against the identity backend.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*Grant, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds Credentials) (*Grant, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, creds Credentials) (*Grant, error) {
	return f(ctx, creds)
}

// PrompterFuncs builds a Prompter out of optional callbacks. A nil Confirm
// answers yes, a nil Alert drops the message.
type PrompterFuncs struct {
	AlertFunc   func(ctx context.Context, message string)
	ConfirmFunc func(ctx context.Context, message string) bool
}

func (p PrompterFuncs) Alert(ctx context.Context, message string) {
	if p.AlertFunc != nil {
		p.AlertFunc(ctx, message)
	}
}

func (p PrompterFuncs) Confirm(ctx context.Context, message string) bool {
	if p.ConfirmFunc == nil {
		return true
	}
	return p.ConfirmFunc(ctx, message)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] WALLET "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] WALLET "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] WALLET "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] WALLET "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
