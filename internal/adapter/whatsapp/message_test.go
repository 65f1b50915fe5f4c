package whatsapp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

func TestComposeMessageDineIn(t *testing.T) {
	c := NewComposer()
	items := []domain.OrderItem{
		{Name: "Butter Chicken", Qty: 1, Price: decimal.NewFromInt(350)},
	}

	msg := c.ComposeMessage("Spice Garden", domain.ModeDineIn, "Asha", "12", items, decimal.NewFromInt(350))

	for _, want := range []string{
		"*New Order - Spice Garden*",
		"Order Type: *Dine-In*",
		"Name: *Asha*",
		"Table: *12*",
		"1x Butter Chicken - Rs.350",
		"*Total: Rs.350*",
		"Sent via Digital Menu QR",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeMessageOmitsOptionalFields(t *testing.T) {
	c := NewComposer()
	items := []domain.OrderItem{
		{Name: "Masala Dosa", Qty: 2, Price: decimal.NewFromInt(90)},
	}

	msg := c.ComposeMessage("Spice Garden", domain.ModeTakeaway, "", "12", items, decimal.NewFromInt(180))

	if strings.Contains(msg, "Name:") {
		t.Errorf("message should omit empty customer name:\n%s", msg)
	}
	// Table numbers are only transmitted for dine-in.
	if strings.Contains(msg, "Table:") {
		t.Errorf("message should omit table number for takeaway:\n%s", msg)
	}
	if !strings.Contains(msg, "Order Type: *Takeaway*") {
		t.Errorf("message missing takeaway label:\n%s", msg)
	}
	if !strings.Contains(msg, "2x Masala Dosa - Rs.180") {
		t.Errorf("message missing item line:\n%s", msg)
	}
}

func TestComposeMessageTruncatesDisplayAmounts(t *testing.T) {
	c := NewComposer()
	price, _ := decimal.NewFromString("99.95")
	items := []domain.OrderItem{
		{Name: "Thali", Qty: 2, Price: price},
	}
	total, _ := decimal.NewFromString("199.90")

	msg := c.ComposeMessage("Spice Garden", domain.ModeDelivery, "", "", items, total)

	if !strings.Contains(msg, "2x Thali - Rs.199") {
		t.Errorf("line amount should truncate to whole rupees:\n%s", msg)
	}
	if !strings.Contains(msg, "*Total: Rs.199*") {
		t.Errorf("total should truncate to whole rupees:\n%s", msg)
	}
}

func TestDeepLink(t *testing.T) {
	c := NewComposer()

	link := c.DeepLink("+91 98765-43210", "Order: *Total: Rs.350*")

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Errorf("deep link should strip the number down to digits, got %s", link)
	}
	if strings.ContainsAny(strings.TrimPrefix(link, "https://"), " *\n") {
		t.Errorf("message body should be url-encoded, got %s", link)
	}
}
