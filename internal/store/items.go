package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matickr/katalog/internal/model"
)

// InsertItem inserts a new item and returns the stored row.
func InsertItem(ctx context.Context, db *sql.DB, name, description string, price float64, imageURL *string) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, price, image_url) VALUES (?, ?, ?, ?)`,
		name, description, price, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var imageURL sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, price, image_url, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Price, &imageURL, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if imageURL.Valid {
		item.ImageURL = &imageURL.String
	}
	return item, nil
}

// ListItems returns all items, most recently created first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, price, image_url, created_at, updated_at
		 FROM items ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var imageURL sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &imageURL, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if imageURL.Valid {
			url := imageURL.String
			item.ImageURL = &url
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem writes all mutable fields of an item and returns the number
// of rows affected.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name, description string, price float64, imageURL *string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, description, price, imageURL, id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting affected rows: %w", err)
	}
	return affected, nil
}

// DeleteItem removes an item and returns the number of rows affected.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting affected rows: %w", err)
	}
	return affected, nil
}
