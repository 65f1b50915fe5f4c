package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFulfillmentModeLabels(t *testing.T) {
	tests := []struct {
		mode  FulfillmentMode
		label string
	}{
		{ModeDineIn, "Dine-In"},
		{ModeTakeaway, "Takeaway"},
		{ModeDelivery, "Delivery"},
		{FulfillmentMode("drive-thru"), ""},
	}

	for _, tt := range tests {
		if got := tt.mode.Label(); got != tt.label {
			t.Errorf("Label(%q) = %q, want %q", tt.mode, got, tt.label)
		}
	}
}

func TestNewOrder(t *testing.T) {
	items := []OrderItem{{Name: "Butter Chicken", Qty: 1, Price: decimal.NewFromInt(350)}}
	total := decimal.NewFromInt(350)

	order, err := NewOrder("menu-1", ModeDineIn, "Asha", "12", items, total)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	if order.OrderType != "Dine-In" {
		t.Errorf("order type = %q, want Dine-In", order.OrderType)
	}
	if order.TableNumber == nil || *order.TableNumber != "12" {
		t.Errorf("table number = %v, want 12", order.TableNumber)
	}
	if order.CustomerName == nil || *order.CustomerName != "Asha" {
		t.Errorf("customer name = %v, want Asha", order.CustomerName)
	}
	if order.CustomerPhone != nil {
		t.Errorf("customer phone should never be set at creation, got %v", *order.CustomerPhone)
	}
	if order.Status != StatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if !order.Total.Equal(total) {
		t.Errorf("total = %s, want %s", order.Total, total)
	}
}

func TestNewOrderTableOnlyForDineIn(t *testing.T) {
	items := []OrderItem{{Name: "Dosa", Qty: 2, Price: decimal.NewFromInt(90)}}

	order, err := NewOrder("menu-1", ModeTakeaway, "", "12", items, decimal.NewFromInt(180))
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	if order.TableNumber != nil {
		t.Errorf("table number should not be transmitted for takeaway, got %v", *order.TableNumber)
	}
	if order.CustomerName != nil {
		t.Errorf("empty customer name should stay nil, got %v", *order.CustomerName)
	}
}

func TestNewOrderRejectsEmptyCart(t *testing.T) {
	if _, err := NewOrder("menu-1", ModeDineIn, "", "", nil, decimal.Zero); err != ErrEmptyCart {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestNewOrderRejectsUnknownMode(t *testing.T) {
	items := []OrderItem{{Name: "Chai", Qty: 1, Price: decimal.NewFromInt(20)}}
	if _, err := NewOrder("menu-1", FulfillmentMode("postal"), "", "", items, decimal.NewFromInt(20)); err != ErrInvalidFulfillmentMode {
		t.Errorf("expected ErrInvalidFulfillmentMode, got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		order := &Order{Status: tt.from}
		if got := order.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}
