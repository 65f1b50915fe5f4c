package orders

import (
	"context"
	"sort"

	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

// Service is the merchant side of orders: the dashboard list, status
// moves, deletion, and the analytics roll-up.
type Service struct {
	orderRepo interfaces.OrderRepository
	menuRepo  interfaces.MenuRepository
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, menuRepo interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context, session auth.Session) ([]*domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, session.UserID)
}

func (s *Service) UpdateStatus(ctx context.Context, session auth.Session, orderID string, status domain.Status) error {
	order, err := s.ownedOrder(ctx, session, orderID)
	if err != nil {
		return err
	}
	if !order.CanTransitionTo(status) {
		return domain.ErrInvalidStatusTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.logger.Info("order_status_updated", "Order status updated", orderID, map[string]interface{}{
		"order_id": orderID,
		"status":   string(status),
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, session auth.Session, orderID string) error {
	if _, err := s.ownedOrder(ctx, session, orderID); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info("order_deleted", "Order deleted", orderID, map[string]interface{}{
		"order_id": orderID,
	})
	return nil
}

// Summary aggregates the merchant's view counters for the analytics page.
// The per-menu breakdown is sorted by views descending.
func (s *Service) Summary(ctx context.Context, session auth.Session) (*interfaces.AnalyticsSummary, error) {
	menus, err := s.menuRepo.ListByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	itemCount, err := s.menuRepo.CountItemsByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	summary := &interfaces.AnalyticsSummary{
		TotalMenus: len(menus),
		TotalItems: itemCount,
	}
	for _, m := range menus {
		summary.TotalViews += m.Views
		if m.IsPublished {
			summary.PublishedMenus++
		}
		summary.MenuViews = append(summary.MenuViews, interfaces.MenuViewCount{
			MenuID:      m.ID,
			MenuName:    m.Name,
			Views:       m.Views,
			IsPublished: m.IsPublished,
		})
	}

	sort.SliceStable(summary.MenuViews, func(i, j int) bool {
		return summary.MenuViews[i].Views > summary.MenuViews[j].Views
	})

	return summary, nil
}

func (s *Service) ownedOrder(ctx context.Context, session auth.Session, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	m, err := s.menuRepo.FindByID(ctx, order.MenuID)
	if err != nil {
		return nil, err
	}
	if m.UserID != session.UserID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
