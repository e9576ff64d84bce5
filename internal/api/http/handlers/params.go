package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/auth"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return dto.Validate(out)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid subscription id", map[string]any{"id": c.Params("id")})
	}
	return int64(id), nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}
