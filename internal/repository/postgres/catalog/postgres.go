package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	catalogdomain "mini-tracker-go/internal/domain/catalog"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(catalogdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListFactions(ctx context.Context) ([]catalogdomain.Faction, error) {
	var factions []catalogdomain.Faction
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&factions).Error; err != nil {
		return nil, err
	}
	return factions, nil
}

func (r *PostgresRepository) GetFaction(ctx context.Context, id string) (*catalogdomain.Faction, error) {
	var faction catalogdomain.Faction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&faction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrFactionNotFound
		}
		return nil, err
	}
	return &faction, nil
}

func (r *PostgresRepository) FactionNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	return r.nameExists(ctx, &catalogdomain.Faction{}, name, excludeID)
}

func (r *PostgresRepository) CreateFaction(ctx context.Context, faction *catalogdomain.Faction) error {
	return r.db.WithContext(ctx).Create(faction).Error
}

func (r *PostgresRepository) UpdateFaction(ctx context.Context, faction *catalogdomain.Faction) error {
	return r.db.WithContext(ctx).
		Model(&catalogdomain.Faction{}).
		Where("id = ?", faction.ID).
		Updates(map[string]interface{}{
			"name":        faction.Name,
			"description": faction.Description,
		}).Error
}

func (r *PostgresRepository) DeleteFaction(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalogdomain.Faction{}).Error
}

func (r *PostgresRepository) CountMiniaturesByFaction(ctx context.Context, factionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalogdomain.Miniature{}).
		Where("faction_id = ?", factionID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListUnitTypes(ctx context.Context) ([]catalogdomain.UnitType, error) {
	var unitTypes []catalogdomain.UnitType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&unitTypes).Error; err != nil {
		return nil, err
	}
	return unitTypes, nil
}

func (r *PostgresRepository) GetUnitType(ctx context.Context, id string) (*catalogdomain.UnitType, error) {
	var unitType catalogdomain.UnitType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&unitType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrUnitTypeNotFound
		}
		return nil, err
	}
	return &unitType, nil
}

func (r *PostgresRepository) UnitTypeNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	return r.nameExists(ctx, &catalogdomain.UnitType{}, name, excludeID)
}

func (r *PostgresRepository) CreateUnitType(ctx context.Context, unitType *catalogdomain.UnitType) error {
	return r.db.WithContext(ctx).Create(unitType).Error
}

func (r *PostgresRepository) UpdateUnitType(ctx context.Context, unitType *catalogdomain.UnitType) error {
	return r.db.WithContext(ctx).
		Model(&catalogdomain.UnitType{}).
		Where("id = ?", unitType.ID).
		Updates(map[string]interface{}{
			"name":        unitType.Name,
			"description": unitType.Description,
		}).Error
}

func (r *PostgresRepository) DeleteUnitType(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalogdomain.UnitType{}).Error
}

func (r *PostgresRepository) CountMiniaturesByUnitType(ctx context.Context, unitTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalogdomain.Miniature{}).
		Where("unit_type_id = ?", unitTypeID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListMiniatures(ctx context.Context, filter catalogdomain.MiniatureFilter) ([]catalogdomain.Miniature, error) {
	query := r.db.WithContext(ctx).Model(&catalogdomain.Miniature{}).Preload(clause.Associations)
	if filter.FactionID != "" {
		query = query.Where("faction_id = ?", filter.FactionID)
	}
	if filter.UnitTypeID != "" {
		query = query.Where("unit_type_id = ?", filter.UnitTypeID)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var miniatures []catalogdomain.Miniature
	if err := query.Order("name ASC, id ASC").Find(&miniatures).Error; err != nil {
		return nil, err
	}
	return miniatures, nil
}

func (r *PostgresRepository) GetMiniature(ctx context.Context, id string) (*catalogdomain.Miniature, error) {
	var miniature catalogdomain.Miniature
	if err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		Where("id = ?", id).
		First(&miniature).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrMiniatureNotFound
		}
		return nil, err
	}
	return &miniature, nil
}

func (r *PostgresRepository) CreateMiniature(ctx context.Context, miniature *catalogdomain.Miniature) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(miniature).Error
}

func (r *PostgresRepository) UpdateMiniature(ctx context.Context, miniature *catalogdomain.Miniature) error {
	return r.db.WithContext(ctx).
		Model(&catalogdomain.Miniature{}).
		Where("id = ?", miniature.ID).
		Updates(map[string]interface{}{
			"name":         miniature.Name,
			"faction_id":   miniature.FactionID,
			"unit_type_id": miniature.UnitTypeID,
			"points_value": miniature.PointsValue,
			"base_size":    miniature.BaseSize,
			"description":  miniature.Description,
		}).Error
}

func (r *PostgresRepository) DeleteMiniature(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalogdomain.Miniature{}).Error
}

func (r *PostgresRepository) CountListItemsByMiniature(ctx context.Context, miniatureID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("list_items").
		Where("miniature_id = ?", miniatureID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) nameExists(ctx context.Context, model any, name, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(model).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
