package catalog

import "time"

type Faction struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type UnitType struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Miniature struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:200;not null;index"`
	FactionID   *string   `gorm:"type:uuid;index"`
	UnitTypeID  *string   `gorm:"type:uuid;index"`
	PointsValue *int      `gorm:"column:points_value"`
	BaseSize    *string   `gorm:"size:50"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	Faction     *Faction  `gorm:"foreignKey:FactionID;references:ID;constraint:OnDelete:RESTRICT"`
	UnitType    *UnitType `gorm:"foreignKey:UnitTypeID;references:ID;constraint:OnDelete:RESTRICT"`
}

type ReferenceInput struct {
	Name        string
	Description *string
}

type UpdateReferenceInput struct {
	ID               string
	Name             *string
	Description      *string
	ClearDescription bool
}

type MiniatureFilter struct {
	FactionID  string
	UnitTypeID string
	Query      string
}

type CreateMiniatureInput struct {
	Name        string
	FactionID   *string
	UnitTypeID  *string
	PointsValue *int
	BaseSize    *string
	Description *string
}

// UpdateMiniatureInput is a partial update. Clear* flags null out a field.
type UpdateMiniatureInput struct {
	ID               string
	Name             *string
	FactionID        *string
	ClearFaction     bool
	UnitTypeID       *string
	ClearUnitType    bool
	PointsValue      *int
	ClearPoints      bool
	BaseSize         *string
	ClearBaseSize    bool
	Description      *string
	ClearDescription bool
}
