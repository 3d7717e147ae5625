package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullCodeUsesDomainPrefix(t *testing.T) {
	assert.Equal(t, "SHOP_NOT_FOUND", NotFound("shop", "").FullCode())
	assert.Equal(t, "SHOP_NOT_SELECTED", NotFound("SHOP", "").WithCode("NOT_SELECTED").FullCode())
	assert.Equal(t, "PHONEBOOK_CONFLICT", Conflict("PHONEBOOK", "").FullCode())
	assert.Equal(t, "INTERNAL_ERROR", Internal("", errors.New("boom")).FullCode())
}

func TestBodyForAppError(t *testing.T) {
	err := Forbidden("SHOP_INVITE", "only the primary owner").WithHint("ask the owner")

	status, body := Body(err)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "SHOP_INVITE_FORBIDDEN", body.Code)
	assert.Equal(t, "only the primary owner", body.Detail)
	assert.Equal(t, "ask the owner", body.Hint)
	assert.Empty(t, body.Exception)
}

func TestBodyForUnknownErrorIsInternal(t *testing.T) {
	status, body := Body(errors.New("driver exploded"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "driver exploded", body.Exception)
}

func TestBodyHidesExceptionWhenDisabled(t *testing.T) {
	ExposeExceptions = false
	defer func() { ExposeExceptions = true }()

	_, body := Body(Internal("TREATMENT", errors.New("secret")))

	assert.Empty(t, body.Exception)
}

func TestAsAndIsThroughWrapping(t *testing.T) {
	inner := Conflict("TREATMENT_MENU", "duplicate name")
	wrapped := fmt.Errorf("create: %w", inner)

	ae, ok := As(wrapped)
	assert.True(t, ok)
	assert.Same(t, inner, ae)
	assert.True(t, Is(wrapped, http.StatusConflict, "TREATMENT_MENU_CONFLICT"))
	assert.Equal(t, http.StatusConflict, StatusOf(wrapped))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("x")))
}
