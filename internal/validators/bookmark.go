package validators

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-bookmarks/models"
)

// Field name constants used to scope validation.
const (
	FieldID     = "id"
	FieldUserID = "user_id"
	FieldTitle  = "title"
	FieldURL    = "url"
)

const (
	MaxTitleLength = 255
	MaxURLLength   = 2048
)

// BookmarkValidator validates bookmark payloads: models.BookmarkInput,
// models.BookmarkUpdate and models.Bookmark, by value or pointer.
type BookmarkValidator struct{}

// NewBookmarkValidator returns a BookmarkValidator as a Validator.
func NewBookmarkValidator() Validator {
	return &BookmarkValidator{}
}

// Validate dispatches on the dynamic type of obj.
func (v *BookmarkValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BookmarkInput:
		return v.validateInput(value, fields...)
	case *models.BookmarkInput:
		return v.validateInput(*value, fields...)

	case models.BookmarkUpdate:
		return v.validateUpdate(value, fields...)
	case *models.BookmarkUpdate:
		return v.validateUpdate(*value, fields...)

	case models.Bookmark:
		return v.validateBookmark(value, fields...)
	case *models.Bookmark:
		return v.validateBookmark(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// NormalizeBookmarkInput trims surrounding whitespace from every field.
func NormalizeBookmarkInput(in models.BookmarkInput) models.BookmarkInput {
	return models.BookmarkInput{
		Title: strings.TrimSpace(in.Title),
		URL:   strings.TrimSpace(in.URL),
	}
}

func (v *BookmarkValidator) validateInput(in models.BookmarkInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldURL}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(in.Title); err != nil {
				return err
			}
		case FieldURL:
			if err := validateURL(in.URL); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BookmarkValidator) validateUpdate(update models.BookmarkUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUserID, FieldTitle, FieldURL}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(update.ID) == "" {
				return ErrInvalidBookmarkID
			}
		case FieldUserID:
			if update.OwnerID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTitle, FieldURL:
			if err := v.validateInput(update.BookmarkInput, f); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BookmarkValidator) validateBookmark(b models.Bookmark, fields ...string) error {
	update := models.BookmarkUpdate{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		BookmarkInput: models.BookmarkInput{Title: b.Title, URL: b.URL},
	}
	return v.validateUpdate(update, fields...)
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyURL
	}
	if len(raw) > MaxURLLength {
		return ErrURLTooLong
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
