package lists

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"mini-tracker-go/internal/domain/validation"
)

const (
	MaxListNameLength  = 100
	MaxItemQuantity    = 100000
	DefaultPageLimit   = 20
	MaxPageLimit       = 100
	purchaseDateFormat = "2006-01-02"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ResolveAccess loads a list and decides what the caller may do with it.
// It never writes.
func (s *Service) ResolveAccess(ctx context.Context, listID string, who Identity) (*List, Access, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, AccessDenied, err
	}
	return list, Decide(list.UserID, list.IsPublic, who), nil
}

func (s *Service) CreateList(ctx context.Context, who Identity, input CreateListInput) (*List, error) {
	if who.Anonymous() {
		return nil, ErrForbidden
	}

	name, err := normalizeListName(input.Name)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	list := List{
		ID:          uuid.NewString(),
		UserID:      who.UserID,
		Name:        name,
		Description: trimOptional(input.Description),
		IsPublic:    input.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateList(ctx, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetListDetail returns the list with its items and statistics when the
// caller may read it.
func (s *Service) GetListDetail(ctx context.Context, who Identity, listID string) (*ListDetail, error) {
	list, access, err := s.ResolveAccess(ctx, listID, who)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, ErrForbidden
	}

	items, err := s.repo.ListItemDetails(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ItemDetail{}
	}

	return &ListDetail{
		List:       *list,
		Access:     access,
		Items:      items,
		Statistics: Summarize(items),
	}, nil
}

func (s *Service) ListMine(ctx context.Context, who Identity) ([]ListSummary, error) {
	if who.Anonymous() {
		return nil, ErrForbidden
	}
	lists, err := s.repo.ListUserLists(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []ListSummary{}
	}
	return lists, nil
}

func (s *Service) ListPublic(ctx context.Context, page Page) (*PublicListsPage, error) {
	page = NormalizePage(page)
	lists, total, err := s.repo.ListPublicLists(ctx, page)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []PublicListSummary{}
	}
	return &PublicListsPage{Lists: lists, Total: total}, nil
}

func (s *Service) UpdateList(ctx context.Context, who Identity, input UpdateListInput) (*List, error) {
	if input.Name == nil && input.Description == nil && !input.ClearDescription && input.IsPublic == nil {
		return nil, validation.New("", "no fields to update")
	}

	var name string
	if input.Name != nil {
		normalized, err := normalizeListName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = normalized
	}

	list, err := s.authorizeWrite(ctx, input.ID, who)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		list.Name = name
	}
	if input.ClearDescription {
		list.Description = nil
	} else if input.Description != nil {
		list.Description = trimOptional(input.Description)
	}
	if input.IsPublic != nil {
		list.IsPublic = *input.IsPublic
	}
	list.UpdatedAt = s.touchTime(list)

	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) DeleteList(ctx context.Context, who Identity, listID string) error {
	list, err := s.authorizeWrite(ctx, listID, who)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		return tx.DeleteList(ctx, list.ID)
	})
}

func (s *Service) AddItem(ctx context.Context, who Identity, input AddItemInput) (*ItemDetail, error) {
	miniatureID := strings.TrimSpace(input.MiniatureID)
	if miniatureID == "" {
		return nil, validation.New("miniatureId", "miniatureId is required")
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	assembly := AssemblyNotStarted
	if input.AssemblyStatus != nil {
		assembly = *input.AssemblyStatus
	}
	painting := PaintingUnpainted
	if input.PaintingStatus != nil {
		painting = *input.PaintingStatus
	}
	if err := validateStatuses(&assembly, &painting); err != nil {
		return nil, err
	}

	list, err := s.authorizeWrite(ctx, input.ListID, who)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.MiniatureExists(ctx, miniatureID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMiniatureNotFound
	}

	item := ListItem{
		ID:             uuid.NewString(),
		ListID:         list.ID,
		MiniatureID:    miniatureID,
		Quantity:       quantity,
		AssemblyStatus: assembly,
		PaintingStatus: painting,
		Notes:          trimOptional(input.Notes),
		AddedAt:        s.now().UTC(),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateItem(ctx, &item); err != nil {
			return err
		}
		return s.touch(ctx, tx, list)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetItemDetail(ctx, item.ID)
}

func (s *Service) GetItem(ctx context.Context, who Identity, itemID string) (*ItemDetail, error) {
	item, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, item.ListID, who); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, who Identity, input UpdateItemInput) (*ItemDetail, error) {
	changes := ItemChanges{
		Quantity:       input.Quantity,
		AssemblyStatus: input.AssemblyStatus,
		PaintingStatus: input.PaintingStatus,
		ClearNotes:     input.ClearNotes,
	}
	if input.Notes != nil {
		if notes := trimOptional(input.Notes); notes != nil {
			changes.Notes = notes
		} else {
			changes.ClearNotes = true
		}
	}
	if changes.Empty() {
		return nil, validation.New("", "no fields to update")
	}
	if changes.Quantity != nil {
		if err := validateQuantity(*changes.Quantity); err != nil {
			return nil, err
		}
	}
	if err := validateStatuses(changes.AssemblyStatus, changes.PaintingStatus); err != nil {
		return nil, err
	}

	item, list, err := s.authorizeItemWrite(ctx, input.ID, who)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateItem(ctx, item.ID, changes); err != nil {
			return err
		}
		return s.touch(ctx, tx, list)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetItemDetail(ctx, item.ID)
}

func (s *Service) DeleteItem(ctx context.Context, who Identity, itemID string) error {
	item, list, err := s.authorizeItemWrite(ctx, itemID, who)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		return s.touch(ctx, tx, list)
	})
}

func (s *Service) GetMetadata(ctx context.Context, who Identity, itemID string) (*Metadata, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, item.ListID, who); err != nil {
		return nil, err
	}
	return s.repo.GetMetadataByItem(ctx, item.ID)
}

// UpsertMetadata creates the item's metadata or replaces every field of the
// existing row. The bool reports whether a row was created.
func (s *Service) UpsertMetadata(ctx context.Context, who Identity, input MetadataInput) (*Metadata, bool, error) {
	if input.Cost != nil && (*input.Cost < 0 || math.IsNaN(*input.Cost) || math.IsInf(*input.Cost, 0)) {
		return nil, false, validation.New("cost", "cost must be a non-negative number")
	}
	purchaseDate := trimOptional(input.PurchaseDate)
	if purchaseDate != nil {
		if _, err := time.Parse(purchaseDateFormat, *purchaseDate); err != nil {
			return nil, false, validation.New("purchaseDate", "purchaseDate must be formatted as YYYY-MM-DD")
		}
	}

	item, list, err := s.authorizeItemWrite(ctx, input.ItemID, who)
	if err != nil {
		return nil, false, err
	}

	var (
		result  *Metadata
		created bool
	)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		now := s.now().UTC()
		metadata, err := tx.GetMetadataByItem(ctx, item.ID)
		switch {
		case errors.Is(err, ErrMetadataNotFound):
			metadata = &Metadata{ID: uuid.NewString(), ListItemID: item.ID, CreatedAt: now}
			created = true
		case err != nil:
			return err
		}
		metadata.UpdatedAt = now

		metadata.PaintColors = trimOptional(input.PaintColors)
		metadata.Techniques = trimOptional(input.Techniques)
		metadata.PurchaseDate = purchaseDate
		metadata.Cost = input.Cost
		metadata.StorageLocation = trimOptional(input.StorageLocation)
		metadata.CustomNotes = trimOptional(input.CustomNotes)

		if created {
			err = tx.CreateMetadata(ctx, metadata)
		} else {
			err = tx.UpdateMetadata(ctx, metadata)
		}
		if err != nil {
			return err
		}
		result = metadata
		return s.touch(ctx, tx, list)
	})
	if err != nil {
		return nil, false, err
	}

	return result, created, nil
}

func (s *Service) DeleteMetadata(ctx context.Context, who Identity, itemID string) error {
	item, list, err := s.authorizeItemWrite(ctx, itemID, who)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetMetadataByItem(ctx, item.ID); err != nil {
			return err
		}
		if err := tx.DeleteMetadata(ctx, item.ID); err != nil {
			return err
		}
		return s.touch(ctx, tx, list)
	})
}

func (s *Service) authorizeRead(ctx context.Context, listID string, who Identity) error {
	_, access, err := s.ResolveAccess(ctx, listID, who)
	if err != nil {
		return err
	}
	if !access.CanRead() {
		return ErrForbidden
	}
	return nil
}

func (s *Service) authorizeWrite(ctx context.Context, listID string, who Identity) (*List, error) {
	list, access, err := s.ResolveAccess(ctx, listID, who)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite() {
		return nil, ErrForbidden
	}
	return list, nil
}

func (s *Service) authorizeItemWrite(ctx context.Context, itemID string, who Identity) (*ListItem, *List, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.authorizeWrite(ctx, item.ListID, who)
	if err != nil {
		return nil, nil, err
	}
	return item, list, nil
}

// touch bumps the parent list inside the caller's transaction.
func (s *Service) touch(ctx context.Context, tx Repository, list *List) error {
	at := s.touchTime(list)
	if err := tx.TouchList(ctx, list.ID, at); err != nil {
		return err
	}
	list.UpdatedAt = at
	return nil
}

// touchTime never moves updated_at backwards.
func (s *Service) touchTime(list *List) time.Time {
	now := s.now().UTC()
	if now.Before(list.UpdatedAt) {
		return list.UpdatedAt
	}
	return now
}

func NormalizePage(page Page) Page {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = DefaultPageLimit
	}
	if page.Limit > MaxPageLimit {
		page.Limit = MaxPageLimit
	}
	return page
}

func normalizeListName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", validation.New("name", "name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxListNameLength {
		return "", validation.Newf("name", "name must be at most %d characters", MaxListNameLength)
	}
	return trimmed, nil
}

func validateStatuses(assembly *AssemblyStatus, painting *PaintingStatus) error {
	if assembly != nil && !assembly.Valid() {
		return validation.New("assemblyStatus", "assemblyStatus is not a known status")
	}
	if painting != nil && !painting.Valid() {
		return validation.New("paintingStatus", "paintingStatus is not a known status")
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return validation.New("quantity", "quantity must be a positive integer")
	}
	if quantity > MaxItemQuantity {
		return validation.Newf("quantity", "quantity must be at most %d", MaxItemQuantity)
	}
	return nil
}
