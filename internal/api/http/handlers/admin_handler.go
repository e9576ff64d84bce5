package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

const dateLayout = "2006-01-02"

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	admin AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// DashboardStats handles GET /api/admin/dashboard-stats?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var rng repository.StatsRange
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return apperrors.NewValidationError("invalid from date", map[string]any{"from": from})
		}
		rng.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return apperrors.NewValidationError("invalid to date", map[string]any{"to": to})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		rng.To = &end
	}

	stats, err := h.admin.DashboardStats(c.UserContext(), rng)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromStats(stats))
}
