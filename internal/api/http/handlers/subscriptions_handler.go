package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/service"
)

// SubscriptionsHandler exposes a customer's subscription endpoints.
type SubscriptionsHandler struct {
	subscriptions   SubscriptionService
	payments        PaymentService
	recommendations RecommendationService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptions SubscriptionService, payments PaymentService, recommendations RecommendationService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptions, payments: payments, recommendations: recommendations}
}

// Subscribe handles POST /api/subscribe.
func (h *SubscriptionsHandler) Subscribe(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SubscribeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, err := h.subscriptions.Create(c.UserContext(), p.UserID(), service.SubscribeInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Plan:      req.SelectedPlan,
		Meals:     req.SelectedMeals,
		Days:      req.SelectedDays,
		Allergies: req.Allergies,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.SubscribeResponse{
		Message:        "Subscription created successfully",
		SubscriptionID: sub.ID,
		TotalPrice:     sub.TotalPrice,
	})
}

// List handles GET /api/subscriptions.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	subs, err := h.subscriptions.List(c.UserContext(), p.UserID())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSubscriptions(subs))
}

// UpdateStatus handles PUT /api/subscriptions/:id/status.
func (h *SubscriptionsHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.StatusUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, err := h.subscriptions.UpdateStatus(c.UserContext(), p.UserID(), id, domain.SubscriptionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusUpdateResponse{
		Message: "Subscription status updated",
		Status:  string(sub.Status),
	})
}

// CreatePayment handles POST /api/subscriptions/:id/create-payment.
func (h *SubscriptionsHandler) CreatePayment(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payment, err := h.payments.CreatePayment(c.UserContext(), p.User, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.PaymentResponse{
		SnapToken:   payment.SnapToken,
		RedirectURL: payment.RedirectURL,
		OrderID:     payment.OrderID,
	})
}

// Recommend handles POST /api/subscriptions/:id/ai-recommendation.
func (h *SubscriptionsHandler) Recommend(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	recs, err := h.recommendations.ForSubscription(c.UserContext(), p.UserID(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRecommendations(recs))
}
