package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu is a merchant's published menu. Categories arrive from the repository
// already ordered by sort_order; nothing downstream may re-sort them.
type Menu struct {
	ID             string
	UserID         string
	Name           string
	Description    *string
	CoverImage     *string
	WhatsAppNumber *string
	IsPublished    bool
	Views          int
	CreatedAt      time.Time
	Categories     []Category
}

// Category groups items on a menu. Items are ordered by sort_order.
type Category struct {
	ID        string
	MenuID    string
	Name      string
	SortOrder int
	Items     []Item
}

// Item is a single dish on a menu.
type Item struct {
	ID          string
	CategoryID  string
	Name        string
	Price       decimal.Decimal
	Description *string
	ImageURL    *string
	Available   bool
	SortOrder   int
}

// CanReceiveOrders reports whether the menu is able to take WhatsApp orders.
func (m *Menu) CanReceiveOrders() bool {
	return m.WhatsAppNumber != nil && *m.WhatsAppNumber != ""
}

// FindItem looks an item up by id across all categories.
func (m *Menu) FindItem(itemID string) (Item, bool) {
	for _, c := range m.Categories {
		for _, item := range c.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return Item{}, false
}

// ItemCount returns the number of items across all categories.
func (m *Menu) ItemCount() int {
	n := 0
	for _, c := range m.Categories {
		n += len(c.Items)
	}
	return n
}
