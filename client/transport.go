package client

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Request is the transport level view of an outbound call.
type Request struct {
	Method  string
	URL     string
	Header  map[string]string
	Body    []byte
	Timeout time.Duration
}

// Response is what the transport got back.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport executes a Request. Implementations should return ctx.Err() once
// the context is done.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// FiberTransport sends requests with fiber's fasthttp backed Agent.
type FiberTransport struct{}

var _ Transport = FiberTransport{}

func NewFiberTransport() FiberTransport {
	return FiberTransport{}
}

func (FiberTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.AcquireAgent()
	r := agent.Request()
	r.Header.SetMethod(req.Method)
	r.SetRequestURI(req.URL)

	for k, v := range req.Header {
		agent.Set(k, v)
	}

	if len(req.Body) > 0 {
		agent.Body(req.Body)
	}

	timeout := req.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid request")
	}

	type result struct {
		code int
		body []byte
		errs []error
	}

	done := make(chan result, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- result{code: code, body: body, errs: errs}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if len(res.errs) > 0 {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, res.errs[0]
		}
		return &Response{StatusCode: res.code, Body: res.body}, nil
	}
}
