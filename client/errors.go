package client

import "github.com/goliatone/go-errors"

const (
	TextCodeUnauthorized     = "API_UNAUTHORIZED"
	TextCodeTimeout          = "API_TIMEOUT"
	TextCodeUnexpectedStatus = "API_UNEXPECTED_STATUS"
	TextCodeTransport        = "API_TRANSPORT_FAILURE"
	TextCodeDecode           = "API_DECODE_FAILURE"
)

// ErrUnauthorized is returned when the API answers 401.
var ErrUnauthorized = errors.New("request not authorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrTimeout is returned when a call exceeds the client timeout.
var ErrTimeout = errors.New("request timed out", errors.CategoryOperation).
	WithTextCode(TextCodeTimeout).
	WithCode(errors.CodeInternal)

// ErrUnexpectedStatus is returned for any other non 2xx answer.
var ErrUnexpectedStatus = errors.New("unexpected response status", errors.CategoryOperation).
	WithTextCode(TextCodeUnexpectedStatus).
	WithCode(errors.CodeInternal)

// ErrTransport wraps network level failures.
var ErrTransport = errors.New("request failed", errors.CategoryOperation).
	WithTextCode(TextCodeTransport).
	WithCode(errors.CodeInternal)

// ErrDecode is returned when a response body is not the expected JSON.
var ErrDecode = errors.New("unable to decode response", errors.CategoryBadInput).
	WithTextCode(TextCodeDecode).
	WithCode(errors.CodeBadRequest)

// annotate clones base so the sentinel stays untouched while errors.Is still
// matches it through Source.
func annotate(base *errors.Error, cause error, metadata map[string]any) error {
	clone := base.Clone()
	if clone == nil {
		return base
	}
	clone.Source = base
	if cause != nil {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata["cause"] = cause.Error()
	}
	return clone.WithMetadata(metadata)
}
