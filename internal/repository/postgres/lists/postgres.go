package lists

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	listsdomain "mini-tracker-go/internal/domain/lists"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(listsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetList(ctx context.Context, listID string) (*listsdomain.List, error) {
	var list listsdomain.List
	if err := r.db.WithContext(ctx).Where("id = ?", listID).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listsdomain.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

const itemCountSelect = "(SELECT COUNT(*) FROM list_items WHERE list_items.list_id = lists.id) AS item_count"

func (r *PostgresRepository) ListUserLists(ctx context.Context, userID string) ([]listsdomain.ListSummary, error) {
	type row struct {
		listsdomain.List
		ItemCount int64 `gorm:"column:item_count"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("lists").
		Select("lists.*, "+itemCountSelect).
		Where("lists.user_id = ?", userID).
		Order("lists.updated_at DESC, lists.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]listsdomain.ListSummary, 0, len(rows))
	for _, item := range rows {
		result = append(result, listsdomain.ListSummary{List: item.List, ItemCount: item.ItemCount})
	}
	return result, nil
}

func (r *PostgresRepository) ListPublicLists(ctx context.Context, page listsdomain.Page) ([]listsdomain.PublicListSummary, int64, error) {
	query := r.db.WithContext(ctx).Table("lists").Where("lists.is_public = ?", true)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type row struct {
		listsdomain.List
		OwnerUsername string `gorm:"column:owner_username"`
		ItemCount     int64  `gorm:"column:item_count"`
	}

	query = query.
		Select("lists.*, users.username AS owner_username, " + itemCountSelect).
		Joins("JOIN users ON users.id = lists.user_id").
		Order("lists.updated_at DESC, lists.id ASC")
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if offset := page.Offset(); offset > 0 {
		query = query.Offset(offset)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]listsdomain.PublicListSummary, 0, len(rows))
	for _, item := range rows {
		result = append(result, listsdomain.PublicListSummary{
			List:          item.List,
			OwnerUsername: item.OwnerUsername,
			ItemCount:     item.ItemCount,
		})
	}
	return result, total, nil
}

func (r *PostgresRepository) CreateList(ctx context.Context, list *listsdomain.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *PostgresRepository) UpdateList(ctx context.Context, list *listsdomain.List) error {
	result := r.db.WithContext(ctx).
		Model(&listsdomain.List{}).
		Where("id = ?", list.ID).
		UpdateColumns(map[string]interface{}{
			"name":        list.Name,
			"description": list.Description,
			"is_public":   list.IsPublic,
			"updated_at":  list.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listsdomain.ErrListNotFound
	}
	return nil
}

// DeleteList removes metadata, items and the list in that order so the
// outcome does not depend on the driver enforcing cascades.
func (r *PostgresRepository) DeleteList(ctx context.Context, listID string) error {
	db := r.db.WithContext(ctx)
	itemIDs := db.Model(&listsdomain.ListItem{}).Select("id").Where("list_id = ?", listID)
	if err := db.Where("list_item_id IN (?)", itemIDs).Delete(&listsdomain.Metadata{}).Error; err != nil {
		return err
	}
	if err := db.Where("list_id = ?", listID).Delete(&listsdomain.ListItem{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", listID).Delete(&listsdomain.List{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listsdomain.ErrListNotFound
	}
	return nil
}

// TouchList moves updated_at forward to at. An older at is a no-op.
func (r *PostgresRepository) TouchList(ctx context.Context, listID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&listsdomain.List{}).
		Where("id = ? AND updated_at < ?", listID, at).
		UpdateColumn("updated_at", at).Error
}

func (r *PostgresRepository) MiniatureExists(ctx context.Context, miniatureID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("miniatures").
		Where("id = ?", miniatureID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type itemDetailRow struct {
	ID             string                     `gorm:"column:id"`
	ListID         string                     `gorm:"column:list_id"`
	MiniatureID    string                     `gorm:"column:miniature_id"`
	Quantity       int                        `gorm:"column:quantity"`
	AssemblyStatus listsdomain.AssemblyStatus `gorm:"column:assembly_status"`
	PaintingStatus listsdomain.PaintingStatus `gorm:"column:painting_status"`
	Notes          *string                    `gorm:"column:notes"`
	AddedAt        time.Time                  `gorm:"column:added_at"`
	MiniatureName  string                     `gorm:"column:miniature_name"`
	FactionName    *string                    `gorm:"column:faction_name"`
	UnitTypeName   *string                    `gorm:"column:unit_type_name"`
	PointsValue    *int                       `gorm:"column:points_value"`
}

func (row itemDetailRow) toDomain() listsdomain.ItemDetail {
	return listsdomain.ItemDetail{
		ListItem: listsdomain.ListItem{
			ID:             row.ID,
			ListID:         row.ListID,
			MiniatureID:    row.MiniatureID,
			Quantity:       row.Quantity,
			AssemblyStatus: row.AssemblyStatus,
			PaintingStatus: row.PaintingStatus,
			Notes:          row.Notes,
			AddedAt:        row.AddedAt,
		},
		MiniatureName: row.MiniatureName,
		FactionName:   row.FactionName,
		UnitTypeName:  row.UnitTypeName,
		PointsValue:   row.PointsValue,
	}
}

func (r *PostgresRepository) itemDetailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("list_items").
		Select(`
			list_items.id,
			list_items.list_id,
			list_items.miniature_id,
			list_items.quantity,
			list_items.assembly_status,
			list_items.painting_status,
			list_items.notes,
			list_items.added_at,
			miniatures.name AS miniature_name,
			factions.name AS faction_name,
			unit_types.name AS unit_type_name,
			miniatures.points_value AS points_value`).
		Joins("JOIN miniatures ON miniatures.id = list_items.miniature_id").
		Joins("LEFT JOIN factions ON factions.id = miniatures.faction_id").
		Joins("LEFT JOIN unit_types ON unit_types.id = miniatures.unit_type_id")
}

func (r *PostgresRepository) ListItemDetails(ctx context.Context, listID string) ([]listsdomain.ItemDetail, error) {
	var rows []itemDetailRow
	if err := r.itemDetailQuery(ctx).
		Where("list_items.list_id = ?", listID).
		Order("list_items.added_at ASC, list_items.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]listsdomain.ItemDetail, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (*listsdomain.ListItem, error) {
	var item listsdomain.ListItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listsdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) GetItemDetail(ctx context.Context, itemID string) (*listsdomain.ItemDetail, error) {
	var rows []itemDetailRow
	if err := r.itemDetailQuery(ctx).
		Where("list_items.id = ?", itemID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, listsdomain.ErrItemNotFound
	}
	detail := rows[0].toDomain()
	return &detail, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *listsdomain.ListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, itemID string, changes listsdomain.ItemChanges) error {
	updates := map[string]interface{}{}
	if changes.Quantity != nil {
		updates["quantity"] = *changes.Quantity
	}
	if changes.AssemblyStatus != nil {
		updates["assembly_status"] = *changes.AssemblyStatus
	}
	if changes.PaintingStatus != nil {
		updates["painting_status"] = *changes.PaintingStatus
	}
	if changes.ClearNotes {
		updates["notes"] = nil
	} else if changes.Notes != nil {
		updates["notes"] = *changes.Notes
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&listsdomain.ListItem{}).
		Where("id = ?", itemID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listsdomain.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("list_item_id = ?", itemID).Delete(&listsdomain.Metadata{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", itemID).Delete(&listsdomain.ListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listsdomain.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) GetMetadataByItem(ctx context.Context, itemID string) (*listsdomain.Metadata, error) {
	var metadata listsdomain.Metadata
	if err := r.db.WithContext(ctx).
		Where("list_item_id = ?", itemID).
		Order("created_at ASC").
		First(&metadata).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listsdomain.ErrMetadataNotFound
		}
		return nil, err
	}
	return &metadata, nil
}

func (r *PostgresRepository) CreateMetadata(ctx context.Context, metadata *listsdomain.Metadata) error {
	return r.db.WithContext(ctx).Create(metadata).Error
}

func (r *PostgresRepository) UpdateMetadata(ctx context.Context, metadata *listsdomain.Metadata) error {
	return r.db.WithContext(ctx).
		Model(&listsdomain.Metadata{}).
		Where("id = ?", metadata.ID).
		Updates(map[string]interface{}{
			"paint_colors":     metadata.PaintColors,
			"techniques":       metadata.Techniques,
			"purchase_date":    metadata.PurchaseDate,
			"cost":             metadata.Cost,
			"storage_location": metadata.StorageLocation,
			"custom_notes":     metadata.CustomNotes,
			"updated_at":       metadata.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteMetadata(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).
		Where("list_item_id = ?", itemID).
		Delete(&listsdomain.Metadata{}).Error
}
