package console

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-wallet-console/client"
	"github.com/google/uuid"
)

const (
	defaultDemoIssuer = "wallet-console"
	defaultDemoDelay  = 800 * time.Millisecond
	defaultDemoTTL    = 24 * time.Hour
)

// DemoClaims is the payload of tokens minted by DemoAuthenticator.
type DemoClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// DemoAuthenticator accepts any well formed credentials after a simulated
// round trip and mints a signed token carrying the chosen role.
type DemoAuthenticator struct {
	signingKey []byte
	issuer     string
	delay      time.Duration
	ttl        time.Duration
	now        func() time.Time
}

// DemoAuthenticatorOption customizes the DemoAuthenticator.
type DemoAuthenticatorOption func(*DemoAuthenticator)

func WithDemoDelay(d time.Duration) DemoAuthenticatorOption {
	return func(a *DemoAuthenticator) {
		if d >= 0 {
			a.delay = d
		}
	}
}

func WithDemoIssuer(issuer string) DemoAuthenticatorOption {
	return func(a *DemoAuthenticator) {
		if issuer != "" {
			a.issuer = issuer
		}
	}
}

func WithDemoTTL(ttl time.Duration) DemoAuthenticatorOption {
	return func(a *DemoAuthenticator) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithDemoClock injects a custom clock (useful for tests).
func WithDemoClock(clock func() time.Time) DemoAuthenticatorOption {
	return func(a *DemoAuthenticator) {
		if clock != nil {
			a.now = clock
		}
	}
}

func NewDemoAuthenticator(signingKey []byte, opts ...DemoAuthenticatorOption) *DemoAuthenticator {
	a := &DemoAuthenticator{
		signingKey: signingKey,
		issuer:     defaultDemoIssuer,
		delay:      defaultDemoDelay,
		ttl:        defaultDemoTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *DemoAuthenticator) Authenticate(ctx context.Context, creds Credentials) (*Grant, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if creds.Email == "" || creds.Password == "" || !creds.Role.IsValid() {
		return nil, ErrInvalidLogin
	}

	now := a.now()
	claims := &DemoClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    a.issuer,
			Subject:   creds.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Email: creds.Email,
		Role:  creds.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to sign demo token")
	}

	return &Grant{
		Token: token,
		User: &Profile{
			ID:    claims.ID,
			Email: creds.Email,
			Role:  creds.Role,
		},
	}, nil
}

// Parse validates a token minted by this authenticator.
func (a *DemoAuthenticator) Parse(token string) (*DemoClaims, error) {
	claims := &DemoClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.signingKey, nil
	},
		jwt.WithIssuer(a.issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryAuth, "invalid demo token").
			WithCode(errors.CodeUnauthorized)
	}
	if !parsed.Valid {
		return nil, ErrInvalidLogin
	}
	return claims, nil
}

// RemoteAuthenticator posts the credentials to the API login endpoint.
type RemoteAuthenticator struct {
	client *client.Client
	path   string
}

func NewRemoteAuthenticator(c *client.Client) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: c, path: "/login"}
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, creds Credentials) (*Grant, error) {
	grant := &Grant{}
	if err := a.client.Post(ctx, a.path, creds, grant); err != nil {
		return nil, err
	}
	return grant, nil
}
