package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type Service struct {
	repo    interfaces.MenuRepository
	logger  logger.Logger
	baseURL string
}

func NewService(repo interfaces.MenuRepository, logger logger.Logger, baseURL string) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetPublicMenu loads a menu for the public page and bumps its view
// counter. The counter update is best effort; a failure never blocks the
// menu render. Categories and items come back in the repository's order
// and are returned untouched.
func (s *Service) GetPublicMenu(ctx context.Context, menuID string) (*domain.Menu, error) {
	if err := s.repo.IncrementViews(ctx, menuID); err != nil {
		s.logger.Error("views_increment_failed", "Failed to increment menu views", "", map[string]interface{}{
			"menu_id": menuID,
		}, err)
	}

	return s.repo.FindByID(ctx, menuID)
}

// CreateMenu builds and stores a menu with its categories and items.
// Category and item positions in the command become their sort order.
func (s *Service) CreateMenu(ctx context.Context, session auth.Session, cmd interfaces.CreateMenuCommand) (*domain.Menu, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, errors.New("menu name is required")
	}

	m := &domain.Menu{
		UserID:         session.UserID,
		Name:           name,
		Description:    cmd.Description,
		CoverImage:     cmd.CoverImage,
		WhatsAppNumber: cmd.WhatsAppNumber,
	}

	for _, cat := range cmd.Categories {
		catName := strings.TrimSpace(cat.Name)
		if catName == "" {
			return nil, errors.New("category name is required")
		}

		category := domain.Category{Name: catName}
		for _, item := range cat.Items {
			itemName := strings.TrimSpace(item.Name)
			if itemName == "" {
				return nil, errors.New("item name is required")
			}

			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				return nil, fmt.Errorf("invalid price for item %q: %w", itemName, err)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("price for item %q must not be negative", itemName)
			}

			category.Items = append(category.Items, domain.Item{
				Name:        itemName,
				Price:       price,
				Description: item.Description,
				ImageURL:    item.ImageURL,
				Available:   item.Available,
			})
		}
		m.Categories = append(m.Categories, category)
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("menu_create_failed", "Failed to create menu", "", map[string]interface{}{
			"user_id": session.UserID,
		}, err)
		return nil, err
	}

	s.logger.Info("menu_created", fmt.Sprintf("Menu %s created", m.Name), m.ID, map[string]interface{}{
		"menu_id":    m.ID,
		"categories": len(m.Categories),
	})

	return m, nil
}

func (s *Service) ListMenus(ctx context.Context, session auth.Session) ([]*domain.Menu, error) {
	return s.repo.ListByUser(ctx, session.UserID)
}

func (s *Service) SetPublished(ctx context.Context, session auth.Session, menuID string, published bool) error {
	m, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return err
	}
	if m.UserID != session.UserID {
		return domain.ErrNotMenuOwner
	}
	return s.repo.SetPublished(ctx, menuID, published)
}

// PublicURL is the link a merchant encodes into the printed QR code.
func (s *Service) PublicURL(menuID string) string {
	return fmt.Sprintf("%s/menu/%s", s.baseURL, menuID)
}
