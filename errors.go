package console

import "github.com/goliatone/go-errors"

const (
	TextCodeMissingCredentials = "MISSING_CREDENTIALS"
	TextCodeInvalidLogin       = "INVALID_LOGIN"
	TextCodeAccessDenied       = "ACCESS_DENIED"
	TextCodeRouteNotFound      = "ROUTE_NOT_FOUND"
	TextCodeRedirectLoop       = "REDIRECT_LOOP"
	TextCodeFetchFailed        = "FETCH_FAILED"
)

// ErrMissingCredentials is returned when login is attempted without email, password or role.
var ErrMissingCredentials = errors.New("email, password and role are required", errors.CategoryValidation).
	WithTextCode(TextCodeMissingCredentials).
	WithCode(errors.CodeBadRequest)

// ErrInvalidLogin is returned when the authenticator rejects the credentials.
var ErrInvalidLogin = errors.New("invalid login", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidLogin).
	WithCode(errors.CodeUnauthorized)

// ErrAccessDenied marks a navigation blocked by role.
var ErrAccessDenied = errors.New("access denied", errors.CategoryAuthz).
	WithTextCode(TextCodeAccessDenied).
	WithCode(errors.CodeForbidden)

// ErrRouteNotFound is returned when navigating to an unknown route name.
var ErrRouteNotFound = errors.New("route not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRouteNotFound).
	WithCode(errors.CodeNotFound)

// ErrRedirectLoop is returned when guard redirects do not settle.
var ErrRedirectLoop = errors.New("too many redirects", errors.CategoryInternal).
	WithTextCode(TextCodeRedirectLoop).
	WithCode(errors.CodeInternal)

// ErrFetchFailed wraps source failures surfaced by FetchAll.
var ErrFetchFailed = errors.New("fetch failed", errors.CategoryOperation).
	WithTextCode(TextCodeFetchFailed).
	WithCode(errors.CodeInternal)

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
