package account

import (
	"context"

	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type Service struct {
	repo   interfaces.ProfileRepository
	logger logger.Logger
}

func NewService(repo interfaces.ProfileRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Get(ctx context.Context, session auth.Session) (*domain.Profile, error) {
	return s.repo.FindByID(ctx, session.UserID)
}

// Update applies the provided fields to the merchant profile; nil fields
// are left unchanged. Email and password stay with the auth collaborator.
func (s *Service) Update(ctx context.Context, session auth.Session, cmd interfaces.UpdateProfileCommand) (*domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.FullName != nil {
		profile.FullName = cmd.FullName
	}
	if cmd.RestaurantName != nil {
		profile.RestaurantName = cmd.RestaurantName
	}
	if cmd.Phone != nil {
		profile.Phone = cmd.Phone
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile_updated", "Profile updated", session.UserID, nil)
	return profile, nil
}
