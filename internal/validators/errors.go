package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidBookmarkID = errors.New("invalid bookmark ID")
	ErrEmptyTitle        = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrEmptyURL          = errors.New("url is required")
	ErrURLTooLong        = errors.New("url is too long")
	ErrInvalidURL        = errors.New("url must be absolute, e.g. https://example.com")
)
