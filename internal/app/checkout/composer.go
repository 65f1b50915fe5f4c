package checkout

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// Composer holds the order draft for one browsing session on a public menu
// page: the cart, the fulfillment details, and the post-checkout
// confirmation state. All mutations happen through discrete customer
// actions; the mutex only guards against overlapping HTTP requests on the
// same session token.
type Composer struct {
	mu sync.Mutex

	menu *domain.Menu
	cart domain.Cart

	mode         domain.FulfillmentMode
	customerName string
	tableNumber  string

	confirmationVisible bool
	lastTotal           decimal.Decimal
}

// NewComposer starts an empty order draft against the given menu. The
// fulfillment mode defaults to dine-in, matching the public menu page.
func NewComposer(menu *domain.Menu) *Composer {
	return &Composer{
		menu: menu,
		mode: domain.ModeDineIn,
	}
}

func (c *Composer) Menu() *domain.Menu {
	return c.menu
}

// AddItem puts one unit of the item into the cart, snapshotting its name
// and price on first add. Unavailable items are ignored.
func (c *Composer) AddItem(item domain.Item) {
	if !item.Available {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Add(item.ID, item.Name, item.Price)
}

// RemoveItem takes one unit of the item out of the cart. Absent ids are a
// no-op.
func (c *Composer) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Remove(itemID)
}

// LineQuantity returns the quantity in the cart for the item, 0 if absent.
func (c *Composer) LineQuantity(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Quantity(itemID)
}

// TotalItemCount is the sum of all line quantities.
func (c *Composer) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.ItemCount()
}

// TotalAmount is the full-precision cart total.
func (c *Composer) TotalAmount() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Total()
}

// Lines returns the cart lines in insertion order.
func (c *Composer) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Lines()
}

// SetMode switches the fulfillment mode. A previously entered table number
// is kept when switching away from dine-in; it just stops being
// transmitted until dine-in is selected again.
func (c *Composer) SetMode(mode domain.FulfillmentMode) error {
	if !mode.Valid() {
		return domain.ErrInvalidFulfillmentMode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	return nil
}

func (c *Composer) Mode() domain.FulfillmentMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Composer) SetCustomerName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerName = name
}

func (c *Composer) SetTableNumber(table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableNumber = table
}

// ConfirmationVisible reports whether the post-checkout confirmation is
// showing.
func (c *Composer) ConfirmationVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmationVisible
}

// LastTotal is the total of the most recently submitted order.
func (c *Composer) LastTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTotal
}

// DismissConfirmation hides the confirmation state. Idempotent.
func (c *Composer) DismissConfirmation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmationVisible = false
}
