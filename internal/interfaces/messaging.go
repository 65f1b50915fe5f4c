package interfaces

import (
	"context"
	"time"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// OrderNotification is the message fanned out to merchant notification
// feeds after a successful checkout.
type OrderNotification struct {
	OrderID      string             `json:"order_id"`
	MenuID       string             `json:"menu_id"`
	MenuName     string             `json:"menu_name"`
	OrderType    string             `json:"order_type"`
	TableNumber  *string            `json:"table_number"`
	CustomerName *string            `json:"customer_name"`
	Items        []domain.OrderItem `json:"items"`
	Total        string             `json:"total"`
	SubmittedAt  time.Time          `json:"submitted_at"`
}

// Messaging ports (Adapter/RabbitMQ)
type NotificationPublisher interface {
	PublishOrderNotification(ctx context.Context, msg OrderNotification) error
}

type NotificationConsumer interface {
	ConsumeOrderNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
