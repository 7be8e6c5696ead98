package store

import (
	"context"
	"testing"

	"github.com/matickr/katalog/internal/db"
)

func TestInsertAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	url := "/uploads/abc.jpg"
	item, err := InsertItem(ctx, database, "Lamp", "Desk lamp", 24.99, &url)
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if item.ID <= 0 {
		t.Errorf("expected positive id, got %d", item.ID)
	}
	if item.Name != "Lamp" || item.Price != 24.99 {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ImageURL == nil || *item.ImageURL != url {
		t.Errorf("expected image url %q, got %v", url, item.ImageURL)
	}
}

func TestGetMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestListItemsOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	url := "/uploads/a.png"
	first, _ := InsertItem(ctx, database, "First", "d", 1, &url)
	second, _ := InsertItem(ctx, database, "Second", "d", 2, &url)
	third, _ := InsertItem(ctx, database, "Third", "d", 3, &url)

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != third.ID || items[1].ID != second.ID || items[2].ID != first.ID {
		t.Errorf("expected descending id order, got %d, %d, %d", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	url := "/uploads/a.png"
	item, _ := InsertItem(ctx, database, "Chair", "Wooden chair", 50, &url)

	affected, err := UpdateItem(ctx, database, item.ID, "Chair", "Wooden chair", 45, nil)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Price != 45 {
		t.Errorf("expected price 45, got %v", got.Price)
	}
	if got.ImageURL != nil {
		t.Errorf("expected nil image url, got %v", *got.ImageURL)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	url := "/uploads/a.png"
	item, _ := InsertItem(ctx, database, "Gone", "d", 1, &url)

	affected, err := DeleteItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}

	affected, err = DeleteItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("DeleteItem (second): %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 affected rows for missing item, got %d", affected)
	}
}
