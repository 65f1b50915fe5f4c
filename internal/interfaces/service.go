package interfaces

import (
	"context"

	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// Service ports (Business Logic)
type MenuService interface {
	GetPublicMenu(ctx context.Context, menuID string) (*domain.Menu, error)
	CreateMenu(ctx context.Context, session auth.Session, cmd CreateMenuCommand) (*domain.Menu, error)
	ListMenus(ctx context.Context, session auth.Session) ([]*domain.Menu, error)
	SetPublished(ctx context.Context, session auth.Session, menuID string, published bool) error
	PublicURL(menuID string) string
}

type OrderService interface {
	List(ctx context.Context, session auth.Session) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, session auth.Session, orderID string, status domain.Status) error
	Delete(ctx context.Context, session auth.Session, orderID string) error
	Summary(ctx context.Context, session auth.Session) (*AnalyticsSummary, error)
}

type AccountService interface {
	Get(ctx context.Context, session auth.Session) (*domain.Profile, error)
	Update(ctx context.Context, session auth.Session, cmd UpdateProfileCommand) (*domain.Profile, error)
}

// Commands
type CreateMenuCommand struct {
	Name           string
	Description    *string
	CoverImage     *string
	WhatsAppNumber *string
	Categories     []CreateCategoryCommand
}

type CreateCategoryCommand struct {
	Name  string
	Items []CreateItemCommand
}

type CreateItemCommand struct {
	Name        string
	Price       string
	Description *string
	ImageURL    *string
	Available   bool
}

type UpdateProfileCommand struct {
	FullName       *string
	RestaurantName *string
	Phone          *string
}

// AnalyticsSummary is the dashboard roll-up of menu view counters.
type AnalyticsSummary struct {
	TotalViews     int
	PublishedMenus int
	TotalMenus     int
	TotalItems     int
	MenuViews      []MenuViewCount
}

// MenuViewCount is one row of the per-menu views breakdown, sorted by
// views descending on read.
type MenuViewCount struct {
	MenuID      string
	MenuName    string
	Views       int
	IsPublished bool
}
