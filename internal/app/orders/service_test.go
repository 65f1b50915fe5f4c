package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type fakeOrderRepo struct {
	orders   map[string]*domain.Order
	statuses map[string]domain.Status
	deleted  []string
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{
		orders:   map[string]*domain.Order{},
		statuses: map[string]domain.Status{},
	}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	f.statuses[orderID] = status
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, orderID string) error {
	f.deleted = append(f.deleted, orderID)
	delete(f.orders, orderID)
	return nil
}

type fakeMenuRepo struct {
	menus map[string]*domain.Menu
}

func newFakeMenuRepo(menus ...*domain.Menu) *fakeMenuRepo {
	repo := &fakeMenuRepo{menus: map[string]*domain.Menu{}}
	for _, m := range menus {
		repo.menus[m.ID] = m
	}
	return repo
}

func (f *fakeMenuRepo) Create(ctx context.Context, menu *domain.Menu) error {
	f.menus[menu.ID] = menu
	return nil
}

func (f *fakeMenuRepo) FindByID(ctx context.Context, menuID string) (*domain.Menu, error) {
	m, ok := f.menus[menuID]
	if !ok {
		return nil, domain.ErrMenuNotFound
	}
	return m, nil
}

func (f *fakeMenuRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Menu, error) {
	var out []*domain.Menu
	for _, m := range f.menus {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) SetPublished(ctx context.Context, menuID string, published bool) error {
	return nil
}

func (f *fakeMenuRepo) IncrementViews(ctx context.Context, menuID string) error {
	return nil
}

func (f *fakeMenuRepo) CountItemsByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, m := range f.menus {
		if m.UserID == userID {
			count += m.ItemCount()
		}
	}
	return count, nil
}

func pendingOrder(id, menuID string) *domain.Order {
	return &domain.Order{
		ID:        id,
		MenuID:    menuID,
		OrderType: "Dine-In",
		Status:    domain.StatusPending,
		Total:     decimal.NewFromInt(350),
	}
}

func TestUpdateStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder("order-1", "menu-1"))
	menuRepo := newFakeMenuRepo(&domain.Menu{ID: "menu-1", UserID: "user-1"})
	svc := NewService(orderRepo, menuRepo, logger.New("test"))
	session := auth.Session{UserID: "user-1"}

	if err := svc.UpdateStatus(context.Background(), session, "order-1", domain.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if orderRepo.statuses["order-1"] != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", orderRepo.statuses["order-1"])
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	order := pendingOrder("order-1", "menu-1")
	order.Status = domain.StatusCompleted
	orderRepo := newFakeOrderRepo(order)
	menuRepo := newFakeMenuRepo(&domain.Menu{ID: "menu-1", UserID: "user-1"})
	svc := NewService(orderRepo, menuRepo, logger.New("test"))

	err := svc.UpdateStatus(context.Background(), auth.Session{UserID: "user-1"}, "order-1", domain.StatusCancelled)
	if !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
	if _, ok := orderRepo.statuses["order-1"]; ok {
		t.Error("status should not be written for a rejected transition")
	}
}

func TestUpdateStatusHidesForeignOrders(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder("order-1", "menu-1"))
	menuRepo := newFakeMenuRepo(&domain.Menu{ID: "menu-1", UserID: "someone-else"})
	svc := NewService(orderRepo, menuRepo, logger.New("test"))

	err := svc.UpdateStatus(context.Background(), auth.Session{UserID: "user-1"}, "order-1", domain.StatusCompleted)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("foreign orders should look absent, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder("order-1", "menu-1"))
	menuRepo := newFakeMenuRepo(&domain.Menu{ID: "menu-1", UserID: "user-1"})
	svc := NewService(orderRepo, menuRepo, logger.New("test"))

	if err := svc.Delete(context.Background(), auth.Session{UserID: "user-1"}, "order-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(orderRepo.deleted) != 1 || orderRepo.deleted[0] != "order-1" {
		t.Errorf("unexpected deletions: %v", orderRepo.deleted)
	}
}

func TestDeleteUnknownOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	menuRepo := newFakeMenuRepo()
	svc := NewService(orderRepo, menuRepo, logger.New("test"))

	err := svc.Delete(context.Background(), auth.Session{UserID: "user-1"}, "order-9")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	menuRepo := newFakeMenuRepo(
		&domain.Menu{
			ID: "menu-1", UserID: "user-1", Name: "Spice Garden", Views: 40, IsPublished: true,
			Categories: []domain.Category{{Items: []domain.Item{{ID: "i1"}, {ID: "i2"}}}},
		},
		&domain.Menu{
			ID: "menu-2", UserID: "user-1", Name: "Night Cafe", Views: 120, IsPublished: true,
			Categories: []domain.Category{{Items: []domain.Item{{ID: "i3"}}}},
		},
		&domain.Menu{ID: "menu-3", UserID: "user-1", Name: "Drafts", Views: 5},
		&domain.Menu{ID: "menu-4", UserID: "other", Name: "Not Mine", Views: 999, IsPublished: true},
	)
	svc := NewService(newFakeOrderRepo(), menuRepo, logger.New("test"))

	summary, err := svc.Summary(context.Background(), auth.Session{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalViews != 165 {
		t.Errorf("total views = %d, want 165", summary.TotalViews)
	}
	if summary.TotalMenus != 3 {
		t.Errorf("total menus = %d, want 3", summary.TotalMenus)
	}
	if summary.PublishedMenus != 2 {
		t.Errorf("published menus = %d, want 2", summary.PublishedMenus)
	}
	if summary.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", summary.TotalItems)
	}

	if len(summary.MenuViews) != 3 {
		t.Fatalf("expected 3 breakdown rows, got %d", len(summary.MenuViews))
	}
	for i := 1; i < len(summary.MenuViews); i++ {
		if summary.MenuViews[i-1].Views < summary.MenuViews[i].Views {
			t.Errorf("breakdown not sorted by views descending: %+v", summary.MenuViews)
		}
	}
	if summary.MenuViews[0].MenuName != "Night Cafe" {
		t.Errorf("top menu = %q, want Night Cafe", summary.MenuViews[0].MenuName)
	}
}

var _ interfaces.OrderRepository = (*fakeOrderRepo)(nil)
var _ interfaces.MenuRepository = (*fakeMenuRepo)(nil)
