package errors

import (
	"net/http"
	"testing"

	"rentease/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsSentinelIdentity(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("price must not be negative")

	assert.ErrorIs(t, detailed, ErrValidationFailed)
	assert.Equal(t, "price must not be negative", detailed.Details())
	// The sentinel itself stays untouched.
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestBaseError_IsDistinguishesSentinels(t *testing.T) {
	assert.NotErrorIs(t, ErrUserNotFound, ErrListingNotFound)
	// Same business code, different status: the login variant is a 400.
	assert.NotErrorIs(t, ErrLoginUserNotFound, ErrUserNotFound)
	assert.NotErrorIs(t, ErrUserNotFound, errors.New("user not found"))
}

func TestBaseError_SurvivesWrapping(t *testing.T) {
	wrapped := errors.Wrap(ErrForbidden.WithDetails("not the owner"), "delete listing")

	assert.ErrorIs(t, wrapped, ErrForbidden)

	var appErr AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.Equal(t, "not the owner", appErr.Details())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrPasswordHashFailed.WrapMessage("bcrypt: cost out of range")

	assert.ErrorIs(t, err, ErrPasswordHashFailed)
	assert.Contains(t, err.Error(), "bcrypt: cost out of range")

	var appErr AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrPasswordHashFailed.ErrorCode(), appErr.ErrorCode())
}
