package postgres

import (
	"context"
	"fmt"

	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

// Create inserts the menu together with its categories and items in one
// transaction. Sort order is taken from slice position so reads replay the
// exact authoring order.
func (r *menuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO menus (user_id, name, description, cover_image, whatsapp_number, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		menu.UserID, menu.Name, menu.Description, menu.CoverImage, menu.WhatsAppNumber, menu.IsPublished,
	).Scan(&menu.ID, &menu.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	for ci := range menu.Categories {
		cat := &menu.Categories[ci]
		cat.MenuID = menu.ID
		cat.SortOrder = ci

		catQuery := `
			INSERT INTO categories (menu_id, name, sort_order)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, catQuery, cat.MenuID, cat.Name, cat.SortOrder).Scan(&cat.ID); err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}

		for ii := range cat.Items {
			item := &cat.Items[ii]
			item.CategoryID = cat.ID
			item.SortOrder = ii

			itemQuery := `
				INSERT INTO items (category_id, name, price, description, image_url, available, sort_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id
			`
			err := tx.QueryRow(ctx, itemQuery,
				item.CategoryID, item.Name, item.Price, item.Description, item.ImageURL, item.Available, item.SortOrder,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// FindByID loads a menu with its categories and items, both in sort_order.
// The slice order is the ordering contract; callers must not re-sort.
func (r *menuRepository) FindByID(ctx context.Context, menuID string) (*domain.Menu, error) {
	query := `
		SELECT id, user_id, name, description, cover_image, whatsapp_number, is_published, views, created_at
		FROM menus
		WHERE id = $1
	`

	var menu domain.Menu
	err := r.db.QueryRow(ctx, query, menuID).Scan(
		&menu.ID, &menu.UserID, &menu.Name, &menu.Description, &menu.CoverImage,
		&menu.WhatsAppNumber, &menu.IsPublished, &menu.Views, &menu.CreatedAt,
	)
	if err != nil {
		return nil, domain.ErrMenuNotFound
	}

	if err := r.loadCategories(ctx, &menu); err != nil {
		return nil, err
	}

	return &menu, nil
}

func (r *menuRepository) loadCategories(ctx context.Context, menu *domain.Menu) error {
	catQuery := `
		SELECT id, menu_id, name, sort_order
		FROM categories
		WHERE menu_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := r.db.Query(ctx, catQuery, menu.ID)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.MenuID, &cat.Name, &cat.SortOrder); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		menu.Categories = append(menu.Categories, cat)
	}
	rows.Close()

	for ci := range menu.Categories {
		cat := &menu.Categories[ci]

		itemQuery := `
			SELECT id, category_id, name, price, description, image_url, available, sort_order
			FROM items
			WHERE category_id = $1
			ORDER BY sort_order ASC
		`
		itemRows, err := r.db.Query(ctx, itemQuery, cat.ID)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}

		for itemRows.Next() {
			var item domain.Item
			if err := itemRows.Scan(
				&item.ID, &item.CategoryID, &item.Name, &item.Price,
				&item.Description, &item.ImageURL, &item.Available, &item.SortOrder,
			); err != nil {
				itemRows.Close()
				return fmt.Errorf("failed to scan item: %w", err)
			}
			cat.Items = append(cat.Items, item)
		}
		itemRows.Close()
	}

	return nil
}

func (r *menuRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Menu, error) {
	query := `
		SELECT id, user_id, name, description, cover_image, whatsapp_number, is_published, views, created_at
		FROM menus
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(
			&menu.ID, &menu.UserID, &menu.Name, &menu.Description, &menu.CoverImage,
			&menu.WhatsAppNumber, &menu.IsPublished, &menu.Views, &menu.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, &menu)
	}
	rows.Close()

	for _, menu := range menus {
		if err := r.loadCategories(ctx, menu); err != nil {
			return nil, err
		}
	}

	return menus, nil
}

func (r *menuRepository) SetPublished(ctx context.Context, menuID string, published bool) error {
	query := `UPDATE menus SET is_published = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, published, menuID)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// IncrementViews bumps the menu's view counter. Called on every public
// menu load, best effort.
func (r *menuRepository) IncrementViews(ctx context.Context, menuID string) error {
	query := `UPDATE menus SET views = views + 1 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, menuID)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func (r *menuRepository) CountItemsByUser(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(i.id)
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN menus m ON m.id = c.menu_id
		WHERE m.user_id = $1
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}
