package lists

import "errors"

var (
	ErrListNotFound      = errors.New("list not found")
	ErrItemNotFound      = errors.New("list item not found")
	ErrMetadataNotFound  = errors.New("metadata not found")
	ErrMiniatureNotFound = errors.New("miniature not found")
	ErrForbidden         = errors.New("forbidden")
)
