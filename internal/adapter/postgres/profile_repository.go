package postgres

import (
	"context"
	"fmt"

	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type profileRepository struct {
	db DB
}

func NewProfileRepository(db DB) interfaces.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, full_name, restaurant_name, email, phone
		FROM profiles
		WHERE id = $1
	`

	var profile domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.FullName, &profile.RestaurantName, &profile.Email, &profile.Phone,
	)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, restaurant_name = $2, phone = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, profile.FullName, profile.RestaurantName, profile.Phone, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
