package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/service"
)

// PaymentsHandler receives processor notifications.
type PaymentsHandler struct {
	payments PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payments PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// Notification handles POST /api/payments/notification.
func (h *PaymentsHandler) Notification(c *fiber.Ctx) error {
	var req dto.PaymentNotification
	if err := parseBody(c, &req); err != nil {
		return err
	}

	err := h.payments.HandleNotification(c.UserContext(), service.Notification{
		OrderID:           req.OrderID,
		StatusCode:        req.StatusCode,
		GrossAmount:       req.GrossAmount,
		SignatureKey:      req.SignatureKey,
		TransactionStatus: req.TransactionStatus,
		TransactionID:     req.TransactionID,
		FraudStatus:       req.FraudStatus,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Notification processed"})
}
