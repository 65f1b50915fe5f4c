package interfaces

import (
	"context"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// Repository ports (Adapter/Postgres)
type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	FindByID(ctx context.Context, menuID string) (*domain.Menu, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Menu, error)
	SetPublished(ctx context.Context, menuID string, published bool) error
	IncrementViews(ctx context.Context, menuID string) error
	CountItemsByUser(ctx context.Context, userID string) (int, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) error
	Delete(ctx context.Context, orderID string) error
}

type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
