package worker

import (
	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/service"
)

// StartNotificationWorker wires the e-mail notifications onto the event dispatcher.
// Handlers run synchronously on the publishing request.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		logger.Warn("notification worker disabled")
		return
	}
	notifications.RegisterHandlers()
	logger.Info("notification worker started")
}
