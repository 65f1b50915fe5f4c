package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

const notificationsExchange = "order_notifications"

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.NotificationPublisher {
	return &publisher{conn: conn}
}

// PublishOrderNotification fans a new-order event out to merchant
// notification feeds. Checkout treats failures as best effort.
func (p *publisher) PublishOrderNotification(ctx context.Context, msg interfaces.OrderNotification) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(notificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(notificationsExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
