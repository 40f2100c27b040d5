package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/closet/internal/domain"
)

const clothingColumns = `id, user_id, name, category, description, color, brand, size,
	tags, purchase_date, image_url, created_at, updated_at`

// ClothingRepository handles clothing item persistence
type ClothingRepository struct {
	db *DB
}

// NewClothingRepository creates a new clothing repository
func NewClothingRepository(db *DB) *ClothingRepository {
	return &ClothingRepository{db: db}
}

// Create stores a new item, assigning an ID when none is set
func (r *ClothingRepository) Create(ctx context.Context, item *domain.ClothingItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	tags, err := encodeTags(item.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO clothing_items (`+clothingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.UserID, item.Name, item.Category, item.Description, item.Color,
		item.Brand, item.Size, tags, item.PurchaseDate, item.ImageURL,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert clothing item: %w", err)
	}
	return nil
}

// Get retrieves one of the user's items. It returns nil, nil when absent.
func (r *ClothingRepository) Get(ctx context.Context, userID, id string) (*domain.ClothingItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+clothingColumns+`
		FROM clothing_items WHERE id = ? AND user_id = ?
	`, id, userID)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByUser retrieves all of the user's items, newest first
func (r *ClothingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ClothingItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clothingColumns+`
		FROM clothing_items WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.ClothingItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CountByUser returns the number of items the user owns
func (r *ClothingRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clothing_items WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// Update overwrites an item's mutable fields
func (r *ClothingRepository) Update(ctx context.Context, item *domain.ClothingItem) error {
	item.UpdatedAt = time.Now().UTC()

	tags, err := encodeTags(item.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE clothing_items SET name = ?, category = ?, description = ?, color = ?,
			brand = ?, size = ?, tags = ?, purchase_date = ?, image_url = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, item.Name, item.Category, item.Description, item.Color, item.Brand, item.Size,
		tags, item.PurchaseDate, item.ImageURL, item.UpdatedAt, item.ID, item.UserID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("clothing item %s: %w", item.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes one of the user's items
func (r *ClothingRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("clothing item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.ClothingItem, error) {
	item := &domain.ClothingItem{}
	var tagsJSON sql.NullString

	if err := s.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Description,
		&item.Color, &item.Brand, &item.Size, &tagsJSON, &item.PurchaseDate, &item.ImageURL,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", item.ID, err)
		}
	}

	return item, nil
}

// encodeTags stores absent tags as NULL so they read back as nil.
func encodeTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}
