package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
	}
}

// HandleNotification processes one new-order message from the fanout
// exchange and surfaces it on the merchant notification feed.
func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order notification", "", nil, err)
		return err
	}

	h.logger.Info("order_notification_received", fmt.Sprintf("New %s order for %s", msg.OrderType, msg.MenuName),
		msg.OrderID, map[string]interface{}{
			"order_id":   msg.OrderID,
			"menu_id":    msg.MenuID,
			"order_type": msg.OrderType,
			"total":      msg.Total,
		})

	// Print to console
	fmt.Printf("New order for %s: %s, total Rs.%s (%d items)\n",
		msg.MenuName, msg.OrderType, msg.Total, len(msg.Items))

	return nil
}
