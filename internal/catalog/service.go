package catalog

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matickr/katalog/internal/imaging"
	"github.com/matickr/katalog/internal/media"
	"github.com/matickr/katalog/internal/model"
	"github.com/matickr/katalog/internal/store"
)

// Service implements the item catalog operations. It owns the ordering
// invariant between the media store and the database: uploads are written
// before the row that references them, and old files are deleted only after
// the row no longer points at them. A failure mid-operation can therefore
// leave an orphaned file on disk, but never a row referencing a missing file.
type Service struct {
	db    *sql.DB
	media *media.Store
	log   zerolog.Logger
}

// NewService creates an item service over the given database and media store.
func NewService(db *sql.DB, media *media.Store, logger zerolog.Logger) *Service {
	return &Service{
		db:    db,
		media: media,
		log:   logger.With().Str("service", "catalog").Logger(),
	}
}

// CreateInput holds the form fields for a new item. Price is kept as the
// raw form value so the service owns its validation.
type CreateInput struct {
	Name        string
	Description string
	Price       string
}

// UpdateInput holds the form fields for an item update. Nil pointers mean
// "keep the stored value". RemoveImage is set when the caller explicitly
// cleared the image (an empty existingImageUrl marker).
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *string
	RemoveImage bool
}

// List returns all items, most recently created first.
func (s *Service) List(ctx context.Context) ([]model.Item, error) {
	items, err := store.ListItems(ctx, s.db)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list items")
		return nil, &StorageError{Err: err}
	}
	return items, nil
}

// Create validates the fields and the mandatory image, stores the image
// file, then inserts the row. If the insert fails the file is removed again
// (best effort).
func (s *Service) Create(ctx context.Context, in CreateInput, image *multipart.FileHeader) (*model.Item, error) {
	if in.Name == "" || in.Description == "" || in.Price == "" {
		return nil, ValidationError("missing required item fields (name, description, price)")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	if image == nil {
		return nil, ValidationError("no image file uploaded for new item")
	}

	url, err := s.storeUpload(image)
	if err != nil {
		return nil, err
	}

	item, err := store.InsertItem(ctx, s.db, in.Name, in.Description, price, &url)
	if err != nil {
		// The row write failed, so the freshly written file is an orphan.
		if rmErr := s.media.Remove(url); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("url", url).Msg("failed to clean up upload after insert failure")
		}
		s.log.Error().Err(err).Msg("failed to insert item")
		return nil, &StorageError{Err: err}
	}

	s.log.Info().Int64("id", item.ID).Str("name", item.Name).Msg("item created")
	return item, nil
}

// Update applies the given field changes to an existing item. A new image
// replaces the stored one; an explicit removal marker clears it; otherwise
// the stored image is kept. The previous file is deleted only after the row
// write succeeds, and a deletion failure is logged rather than surfaced.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput, image *multipart.FileHeader) (*model.Item, error) {
	existing, err := store.GetItem(ctx, s.db, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to fetch item for update")
		return nil, &StorageError{Err: err}
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	name := existing.Name
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ValidationError("name must not be empty")
		}
		name = *in.Name
	}

	description := existing.Description
	if in.Description != nil {
		if *in.Description == "" {
			return nil, ValidationError("description must not be empty")
		}
		description = *in.Description
	}

	price := existing.Price
	if in.Price != nil {
		price, err = parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
	}

	newURL := existing.ImageURL
	var oldFile *string
	switch {
	case image != nil:
		url, err := s.storeUpload(image)
		if err != nil {
			return nil, err
		}
		newURL = &url
		oldFile = existing.ImageURL
	case in.RemoveImage:
		newURL = nil
		oldFile = existing.ImageURL
	}

	affected, err := store.UpdateItem(ctx, s.db, id, name, description, price, newURL)
	if err != nil {
		// The old file must survive: the row still references it. A newly
		// uploaded file is left orphaned instead.
		if image != nil && newURL != nil {
			s.log.Warn().Str("url", *newURL).Msg("orphaned upload after failed item update")
		}
		s.log.Error().Err(err).Int64("id", id).Msg("failed to update item")
		return nil, &StorageError{Err: err}
	}
	if affected == 0 {
		// The item was deleted between the fetch and the write. A freshly
		// stored upload references no row, so discard it.
		if image != nil && newURL != nil {
			if rmErr := s.media.Remove(*newURL); rmErr != nil {
				s.log.Warn().Err(rmErr).Str("url", *newURL).Msg("failed to clean up upload after vanished item")
			}
		}
		return nil, ErrNotFound
	}

	if oldFile != nil && *oldFile != "" {
		if err := s.media.Remove(*oldFile); err != nil {
			s.log.Warn().Err(err).Str("url", *oldFile).Msg("failed to delete replaced image")
		}
	}

	item, err := store.GetItem(ctx, s.db, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to fetch item after update")
		return nil, &StorageError{Err: err}
	}
	if item == nil {
		return nil, ErrNotFound
	}

	s.log.Info().Int64("id", id).Msg("item updated")
	return item, nil
}

// Delete removes the item's row, then its image file if one exists on disk.
// File deletion is best effort and never fails the operation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := store.GetItem(ctx, s.db, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to fetch item for delete")
		return &StorageError{Err: err}
	}
	if existing == nil {
		return ErrNotFound
	}

	affected, err := store.DeleteItem(ctx, s.db, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete item")
		return &StorageError{Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}

	if existing.ImageURL != nil && s.media.Exists(*existing.ImageURL) {
		if err := s.media.Remove(*existing.ImageURL); err != nil {
			s.log.Warn().Err(err).Str("url", *existing.ImageURL).Msg("failed to delete item image")
		}
	}

	s.log.Info().Int64("id", id).Msg("item deleted")
	return nil
}

// storeUpload validates an uploaded image and writes it to the media store,
// returning the stored file's relative URL.
func (s *Service) storeUpload(fh *multipart.FileHeader) (string, error) {
	if !media.AllowedExtension(fh.Filename) {
		return "", ValidationError("invalid file type, only jpg, jpeg, png and gif allowed")
	}
	if fh.Size > media.MaxUploadSize {
		return "", ValidationError("file size exceeds limit (5 MiB)")
	}

	f, err := fh.Open()
	if err != nil {
		return "", ValidationError("uploaded image could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, media.MaxUploadSize+1))
	if err != nil {
		return "", ValidationError("uploaded image could not be read")
	}
	if len(data) > media.MaxUploadSize {
		return "", ValidationError("file size exceeds limit (5 MiB)")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	processed, err := imaging.Process(data, ext)
	if err != nil {
		return "", ValidationError(err.Error())
	}

	url, err := s.media.Save(processed, fh.Filename)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store upload")
		return "", &StorageError{Err: err}
	}
	return url, nil
}

// parsePrice validates a raw form price value.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ValidationError("price must be a number")
	}
	if price < 0 {
		return 0, ValidationError("price must not be negative")
	}
	return price, nil
}
