package catalog

import "errors"

var (
	ErrFactionNotFound   = errors.New("faction not found")
	ErrUnitTypeNotFound  = errors.New("unit type not found")
	ErrMiniatureNotFound = errors.New("miniature not found")
	ErrFactionNameTaken  = errors.New("faction name already exists")
	ErrUnitTypeNameTaken = errors.New("unit type name already exists")
	ErrFactionInUse      = errors.New("faction is referenced by miniatures")
	ErrUnitTypeInUse     = errors.New("unit type is referenced by miniatures")
	ErrMiniatureInUse    = errors.New("miniature is referenced by list items")
)
