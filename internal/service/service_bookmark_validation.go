package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

// BookmarkValidationService trims and validates payloads before they reach
// the wrapped service.
type BookmarkValidationService struct {
	inner     BookmarkService
	validator validators.Validator
}

func NewBookmarkValidationService() BookmarkServiceWrapper {
	return &BookmarkValidationService{
		validator: validators.NewBookmarkValidator(),
	}
}

func (v *BookmarkValidationService) ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}

	return v.inner.ListBookmarks(ctx, ownerID)
}

func (v *BookmarkValidationService) CreateBookmark(ctx context.Context, ownerID int64, input models.BookmarkInput) (models.Bookmark, error) {
	input = validators.NormalizeBookmarkInput(input)
	if ownerID <= 0 {
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateBookmark(ctx, ownerID, input)
}

func (v *BookmarkValidationService) UpdateBookmark(ctx context.Context, update models.BookmarkUpdate) (models.Bookmark, error) {
	update.BookmarkInput = validators.NormalizeBookmarkInput(update.BookmarkInput)
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateBookmark(ctx, update)
}

func (v *BookmarkValidationService) DeleteBookmark(ctx context.Context, ownerID int64, id string) error {
	update := models.BookmarkUpdate{ID: id, OwnerID: ownerID}
	if err := v.validator.Validate(ctx, update, validators.FieldID, validators.FieldUserID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteBookmark(ctx, ownerID, id)
}

func (v *BookmarkValidationService) Wrap(inner BookmarkService) BookmarkService {
	v.inner = inner
	return v
}
