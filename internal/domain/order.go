package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FulfillmentMode is how the customer wants the order served.
type FulfillmentMode string

const (
	ModeDineIn   FulfillmentMode = "dine-in"
	ModeTakeaway FulfillmentMode = "takeaway"
	ModeDelivery FulfillmentMode = "delivery"
)

// Label returns the human-readable form transmitted to the merchant
// and stored on the order record.
func (m FulfillmentMode) Label() string {
	switch m {
	case ModeDineIn:
		return "Dine-In"
	case ModeTakeaway:
		return "Takeaway"
	case ModeDelivery:
		return "Delivery"
	default:
		return ""
	}
}

// Valid reports whether the mode is one of the three known values.
func (m FulfillmentMode) Valid() bool {
	return m == ModeDineIn || m == ModeTakeaway || m == ModeDelivery
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is one submitted checkout. It is append-only from the customer's
// side; only the merchant dashboard moves its status afterwards.
type Order struct {
	ID            string
	MenuID        string
	OrderType     string
	TableNumber   *string
	CustomerName  *string
	CustomerPhone *string
	Items         []OrderItem
	Total         decimal.Decimal
	Status        Status
	CreatedAt     time.Time
	MenuName      string
}

// OrderItem is a snapshot of one cart line at checkout time. The json tags
// match the shape stored in the orders.items jsonb column.
type OrderItem struct {
	Name  string          `json:"name"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// NewOrder builds a pending order from a cart snapshot. The table number is
// only transmitted for dine-in; the customer phone is never collected at
// checkout.
func NewOrder(menuID string, mode FulfillmentMode, customerName, tableNumber string, items []OrderItem, total decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if !mode.Valid() {
		return nil, ErrInvalidFulfillmentMode
	}

	order := &Order{
		MenuID:    menuID,
		OrderType: mode.Label(),
		Items:     items,
		Total:     total,
		Status:    StatusPending,
	}
	if customerName != "" {
		order.CustomerName = &customerName
	}
	if mode == ModeDineIn && tableNumber != "" {
		order.TableNumber = &tableNumber
	}
	return order, nil
}

// CanTransitionTo checks a merchant-side status move.
func (o *Order) CanTransitionTo(newStatus Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending:   {StatusCompleted, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, s := range validTransitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrNoWhatsAppNumber        = errors.New("menu has no whatsapp number configured")
	ErrInvalidFulfillmentMode  = errors.New("invalid fulfillment mode")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrMenuNotFound            = errors.New("menu not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrNotMenuOwner            = errors.New("menu does not belong to this user")
)
