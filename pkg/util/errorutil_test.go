package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	conflict := NewConflict("busy", nil)
	assert.Same(t, conflict, error(ToDomainError(fmt.Errorf("wrap: %w", conflict))))

	notFound := ToDomainError(fmt.Errorf("load: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	fe := ToDomainError(fiber.NewError(http.StatusForbidden, "nope"))
	assert.Equal(t, "FORBIDDEN", fe.Code)
	assert.Equal(t, "nope", fe.Message)

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
	assert.ErrorContains(t, internal, "boom")
}

func TestMapErrorKeepsNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
}
