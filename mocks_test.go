package console_test

import (
	"context"
	"sync"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/mock"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, creds console.Credentials) (*console.Grant, error) {
	args := m.Called(ctx, creds)
	grant, _ := args.Get(0).(*console.Grant)
	return grant, args.Error(1)
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Navigate(ctx context.Context, name console.RouteName, params ...console.Param) (console.Location, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(console.Location), args.Error(1)
}

type recordingSink struct {
	mu     sync.Mutex
	events []console.ActivityEvent
}

func (s *recordingSink) Record(_ context.Context, event console.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Types() []console.ActivityEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]console.ActivityEventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType)
	}
	return out
}

type recordingPrompter struct {
	mu      sync.Mutex
	alerts  []string
	asked   []string
	confirm bool
}

func (p *recordingPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *recordingPrompter) Confirm(_ context.Context, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, message)
	return p.confirm
}

type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}

// staticSession is a SessionView with fixed values.
type staticSession struct {
	token string
	role  console.Role
}

func (s staticSession) Token() string      { return s.token }
func (s staticSession) Role() console.Role { return s.role }
