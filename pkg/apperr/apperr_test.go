package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthentication(t *testing.T) {
	err := Authentication("invalid credentials for %s", "alice@test.com")

	var authErr *AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid credentials for alice@test.com", err.Error())
}

func TestAccountCreation(t *testing.T) {
	err := AccountCreation("user with this email already exists")

	var accErr *AccountCreationError
	assert.True(t, errors.As(err, &accErr))
}

func TestNotFound(t *testing.T) {
	err := NotFound("post not found: %s", "hello-world")

	var nfErr *NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "post not found: hello-world", err.Error())
}

func TestForbidden(t *testing.T) {
	err := Forbidden("you can only %s your own posts", "update")

	var forbiddenErr *ForbiddenError
	assert.True(t, errors.As(err, &forbiddenErr))
	assert.Equal(t, "you can only update your own posts", err.Error())
}

func TestStorage_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause, "failed to upload file")

	var stErr *StorageError
	assert.True(t, errors.As(err, &stErr))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStorage_NoCause(t *testing.T) {
	err := Storage(nil, "storage is not initialized")
	assert.Equal(t, "storage is not initialized", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorsAs_AcrossWrapping(t *testing.T) {
	inner := NotFound("no such document")
	wrapped := fmt.Errorf("delete post: %w", inner)

	var nfErr *NotFoundError
	assert.True(t, errors.As(wrapped, &nfErr))
}
