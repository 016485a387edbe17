package lists

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetList(ctx context.Context, listID string) (*List, error)
	ListUserLists(ctx context.Context, userID string) ([]ListSummary, error)
	ListPublicLists(ctx context.Context, page Page) ([]PublicListSummary, int64, error)
	CreateList(ctx context.Context, list *List) error
	UpdateList(ctx context.Context, list *List) error
	DeleteList(ctx context.Context, listID string) error
	TouchList(ctx context.Context, listID string, at time.Time) error

	MiniatureExists(ctx context.Context, miniatureID string) (bool, error)

	ListItemDetails(ctx context.Context, listID string) ([]ItemDetail, error)
	GetItem(ctx context.Context, itemID string) (*ListItem, error)
	GetItemDetail(ctx context.Context, itemID string) (*ItemDetail, error)
	CreateItem(ctx context.Context, item *ListItem) error
	UpdateItem(ctx context.Context, itemID string, changes ItemChanges) error
	DeleteItem(ctx context.Context, itemID string) error

	GetMetadataByItem(ctx context.Context, itemID string) (*Metadata, error)
	CreateMetadata(ctx context.Context, metadata *Metadata) error
	UpdateMetadata(ctx context.Context, metadata *Metadata) error
	DeleteMetadata(ctx context.Context, itemID string) error
}
