package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/adapter/whatsapp"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

// CheckoutResult is what the public menu page needs after a successful
// submit: the composed message, the wa.me link to open, and the total for
// the confirmation dialog.
type CheckoutResult struct {
	Order    *domain.Order
	Message  string
	DeepLink string
	Total    decimal.Decimal
}

type Service struct {
	orders    interfaces.OrderRepository
	publisher interfaces.NotificationPublisher
	wa        *whatsapp.Composer
	logger    logger.Logger
}

func NewService(orders interfaces.OrderRepository, publisher interfaces.NotificationPublisher, wa *whatsapp.Composer, logger logger.Logger) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		wa:        wa,
		logger:    logger,
	}
}

// SubmitOrder performs the single atomic checkout step for a session:
// compose the order message, persist the pending order, and hand the
// wa.me deep link back. On success the cart and the optional identity
// fields are cleared, the confirmation is shown, and the chosen
// fulfillment mode is kept for the next order.
//
// The messaging handoff is not conditioned on persistence: if the order
// insert fails the error is logged and the deep link is still returned,
// so the merchant receives the WhatsApp message even when the dashboard
// record is missing.
func (s *Service) SubmitOrder(ctx context.Context, comp *Composer) (*CheckoutResult, error) {
	comp.mu.Lock()
	defer comp.mu.Unlock()

	menu := comp.menu
	if comp.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if !menu.CanReceiveOrders() {
		return nil, domain.ErrNoWhatsAppNumber
	}

	customerName := strings.TrimSpace(comp.customerName)
	tableNumber := strings.TrimSpace(comp.tableNumber)
	items := comp.cart.Snapshot()
	total := comp.cart.Total()

	message := s.wa.ComposeMessage(menu.Name, comp.mode, customerName, tableNumber, items, total)

	order, err := domain.NewOrder(menu.ID, comp.mode, customerName, tableNumber, items, total)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Handoff proceeds regardless; the customer still reaches WhatsApp.
		s.logger.Error("order_persist_failed", "Failed to persist order, proceeding with handoff", "", map[string]interface{}{
			"menu_id": menu.ID,
		}, err)
	} else {
		s.logger.Debug("order_created", "Order persisted", order.ID, map[string]interface{}{
			"menu_id": menu.ID,
			"total":   total.String(),
		})
		s.publishNotification(ctx, menu, order)
	}

	link := s.wa.DeepLink(*menu.WhatsAppNumber, message)

	comp.lastTotal = total
	comp.confirmationVisible = true
	comp.cart.Clear()
	comp.customerName = ""
	comp.tableNumber = ""

	return &CheckoutResult{
		Order:    order,
		Message:  message,
		DeepLink: link,
		Total:    total,
	}, nil
}

func (s *Service) publishNotification(ctx context.Context, menu *domain.Menu, order *domain.Order) {
	msg := interfaces.OrderNotification{
		OrderID:      order.ID,
		MenuID:       menu.ID,
		MenuName:     menu.Name,
		OrderType:    order.OrderType,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		Items:        order.Items,
		Total:        order.Total.String(),
		SubmittedAt:  time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish order notification", order.ID, nil, err)
	}
}
