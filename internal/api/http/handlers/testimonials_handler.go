package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
)

// TestimonialsHandler exposes the public review board.
type TestimonialsHandler struct {
	testimonials TestimonialService
}

// NewTestimonialsHandler constructs handler.
func NewTestimonialsHandler(testimonials TestimonialService) *TestimonialsHandler {
	return &TestimonialsHandler{testimonials: testimonials}
}

// List handles GET /api/testimonials.
func (h *TestimonialsHandler) List(c *fiber.Ctx) error {
	list, err := h.testimonials.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTestimonials(list))
}

// Create handles POST /api/testimonials.
func (h *TestimonialsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.TestimonialRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	t, err := h.testimonials.Create(c.UserContext(), p.User, req.Review, req.Rating)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTestimonial(*t))
}
