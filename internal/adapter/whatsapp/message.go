package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// Attribution footer appended to every composed order message.
const footer = "Sent via Digital Menu QR"

// Composer renders order messages and wa.me deep links for the messaging
// handoff. Amounts are shown in whole rupees; the stored order total keeps
// full precision.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// ComposeMessage builds the plain-text order message sent to the merchant.
// The customer name is included only when present, the table number only
// for dine-in orders.
func (c *Composer) ComposeMessage(menuName string, mode domain.FulfillmentMode, customerName, tableNumber string, items []domain.OrderItem, total decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New Order - %s*\n", menuName)
	fmt.Fprintf(&b, "Order Type: *%s*\n", mode.Label())
	if name := strings.TrimSpace(customerName); name != "" {
		fmt.Fprintf(&b, "Name: *%s*\n", name)
	}
	if table := strings.TrimSpace(tableNumber); mode == domain.ModeDineIn && table != "" {
		fmt.Fprintf(&b, "Table: *%s*\n", table)
	}

	b.WriteString("\n---\n")
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		fmt.Fprintf(&b, "%dx %s - Rs.%s\n", item.Qty, item.Name, formatAmount(lineTotal))
	}
	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Total: Rs.%s*\n", formatAmount(total))
	b.WriteString("\n" + footer)

	return b.String()
}

// DeepLink builds the pre-filled wa.me URL for the given contact number.
// The number is reduced to its digits; wa.me accepts no leading symbols.
func (c *Composer) DeepLink(whatsappNumber, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", sanitizeNumber(whatsappNumber), url.QueryEscape(message))
}

// formatAmount truncates to whole currency units for display.
func formatAmount(d decimal.Decimal) string {
	return d.Truncate(0).String()
}

func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
