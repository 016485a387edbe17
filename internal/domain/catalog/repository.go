package catalog

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListFactions(ctx context.Context) ([]Faction, error)
	GetFaction(ctx context.Context, id string) (*Faction, error)
	FactionNameExists(ctx context.Context, name, excludeID string) (bool, error)
	CreateFaction(ctx context.Context, faction *Faction) error
	UpdateFaction(ctx context.Context, faction *Faction) error
	DeleteFaction(ctx context.Context, id string) error
	CountMiniaturesByFaction(ctx context.Context, factionID string) (int64, error)

	ListUnitTypes(ctx context.Context) ([]UnitType, error)
	GetUnitType(ctx context.Context, id string) (*UnitType, error)
	UnitTypeNameExists(ctx context.Context, name, excludeID string) (bool, error)
	CreateUnitType(ctx context.Context, unitType *UnitType) error
	UpdateUnitType(ctx context.Context, unitType *UnitType) error
	DeleteUnitType(ctx context.Context, id string) error
	CountMiniaturesByUnitType(ctx context.Context, unitTypeID string) (int64, error)

	ListMiniatures(ctx context.Context, filter MiniatureFilter) ([]Miniature, error)
	GetMiniature(ctx context.Context, id string) (*Miniature, error)
	CreateMiniature(ctx context.Context, miniature *Miniature) error
	UpdateMiniature(ctx context.Context, miniature *Miniature) error
	DeleteMiniature(ctx context.Context, id string) error
	CountListItemsByMiniature(ctx context.Context, miniatureID string) (int64, error)
}
