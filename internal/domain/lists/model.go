package lists

import (
	"time"

	"mini-tracker-go/internal/domain/catalog"
)

type List struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"size:100;not null"`
	Description *string   `gorm:"type:text"`
	IsPublic    bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type ListItem struct {
	ID             string             `gorm:"type:uuid;primaryKey"`
	ListID         string             `gorm:"type:uuid;index;not null"`
	MiniatureID    string             `gorm:"type:uuid;index;not null"`
	Quantity       int                `gorm:"not null;default:1"`
	AssemblyStatus AssemblyStatus     `gorm:"type:varchar(20);not null"`
	PaintingStatus PaintingStatus     `gorm:"type:varchar(20);not null"`
	Notes          *string            `gorm:"type:text"`
	AddedAt        time.Time          `gorm:"autoCreateTime"`
	List           *List              `gorm:"foreignKey:ListID;references:ID;constraint:OnDelete:CASCADE"`
	Miniature      *catalog.Miniature `gorm:"foreignKey:MiniatureID;references:ID;constraint:OnDelete:RESTRICT"`
}

type Metadata struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	ListItemID      string    `gorm:"type:uuid;index;not null"`
	PaintColors     *string   `gorm:"type:text"`
	Techniques      *string   `gorm:"type:text"`
	PurchaseDate    *string   `gorm:"size:10"`
	Cost            *float64  `gorm:"column:cost"`
	StorageLocation *string   `gorm:"type:text"`
	CustomNotes     *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
	ListItem        *ListItem `gorm:"foreignKey:ListItemID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Metadata) TableName() string {
	return "list_item_metadata"
}

// Identity is the caller a core operation acts for. The zero value is anonymous.
type Identity struct {
	UserID  string
	IsAdmin bool
}

func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// ItemDetail is a list item joined with the catalog fields statistics need.
type ItemDetail struct {
	ListItem
	MiniatureName string
	FactionName   *string
	UnitTypeName  *string
	PointsValue   *int
}

type Statistics struct {
	TotalItems       int              `json:"totalItems"`
	TotalPoints      int              `json:"totalPoints"`
	AssemblyProgress AssemblyProgress `json:"assemblyProgress"`
	PaintingProgress PaintingProgress `json:"paintingProgress"`
}

type ListSummary struct {
	List
	ItemCount int64
}

type PublicListSummary struct {
	List
	OwnerUsername string
	ItemCount     int64
}

type ListDetail struct {
	List       List
	Access     Access
	Items      []ItemDetail
	Statistics Statistics
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type PublicListsPage struct {
	Lists []PublicListSummary
	Total int64
}

type CreateListInput struct {
	Name        string
	Description *string
	IsPublic    bool
}

type UpdateListInput struct {
	ID               string
	Name             *string
	Description      *string
	ClearDescription bool
	IsPublic         *bool
}

type AddItemInput struct {
	ListID         string
	MiniatureID    string
	Quantity       *int
	AssemblyStatus *AssemblyStatus
	PaintingStatus *PaintingStatus
	Notes          *string
}

type UpdateItemInput struct {
	ID             string
	Quantity       *int
	AssemblyStatus *AssemblyStatus
	PaintingStatus *PaintingStatus
	Notes          *string
	ClearNotes     bool
}

// ItemChanges holds the columns an item update writes. Nil fields are left alone.
type ItemChanges struct {
	Quantity       *int
	AssemblyStatus *AssemblyStatus
	PaintingStatus *PaintingStatus
	Notes          *string
	ClearNotes     bool
}

func (c ItemChanges) Empty() bool {
	return c.Quantity == nil && c.AssemblyStatus == nil && c.PaintingStatus == nil && c.Notes == nil && !c.ClearNotes
}

type MetadataInput struct {
	ItemID          string
	PaintColors     *string
	Techniques      *string
	PurchaseDate    *string
	Cost            *float64
	StorageLocation *string
	CustomNotes     *string
}
