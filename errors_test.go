package console_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFailureCarriesStoreMetadata(t *testing.T) {
	users := console.NewUserStore(
		console.WithStoreLogger[console.User](quietLogger{}),
		console.WithStoreSource[console.User](console.SourceFunc[console.User](func(context.Context) ([]console.User, error) {
			return nil, errors.New("connection refused")
		})),
	)

	err := users.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, console.ErrFetchFailed)

	var richErr *goerrors.Error
	if assert.ErrorAs(t, err, &richErr) {
		assert.Equal(t, console.TextCodeFetchFailed, richErr.TextCode)
		assert.Equal(t, "users", richErr.Metadata["store"])
		assert.Equal(t, "connection refused", richErr.Metadata["cause"])
	}

	assert.Nil(t, console.ErrFetchFailed.Metadata["store"], "sentinel stays untouched")
}

func TestMissingStoreSourceFails(t *testing.T) {
	payments := console.NewPaymentStore(console.WithStoreLogger[console.Payment](quietLogger{}))
	err := payments.FetchAll(context.Background())
	assert.ErrorIs(t, err, console.ErrFetchFailed)
	assert.Equal(t, "Error fetching payments", payments.LastError())
}

func TestLoginErrorsCarryTextCodes(t *testing.T) {
	session := console.NewSession(nil, nil, console.WithSessionLogger(quietLogger{}))

	err := session.Login(context.Background(), "", "", console.RoleNone)
	var richErr *goerrors.Error
	if assert.ErrorAs(t, err, &richErr) {
		assert.Equal(t, console.TextCodeMissingCredentials, richErr.TextCode)
		assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
	}
}
