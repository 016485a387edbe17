package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"mini-tracker-go/internal/domain/validation"
)

type fakeCatalogRepo struct {
	factions   map[string]*Faction
	unitTypes  map[string]*UnitType
	miniatures map[string]*Miniature
	listItems  map[string]int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		factions:   make(map[string]*Faction),
		unitTypes:  make(map[string]*UnitType),
		miniatures: make(map[string]*Miniature),
		listItems:  make(map[string]int64),
	}
}

func (r *fakeCatalogRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCatalogRepo) ListFactions(ctx context.Context) ([]Faction, error) {
	var result []Faction
	for _, faction := range r.factions {
		result = append(result, *faction)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCatalogRepo) GetFaction(ctx context.Context, id string) (*Faction, error) {
	faction, ok := r.factions[id]
	if !ok {
		return nil, ErrFactionNotFound
	}
	copied := *faction
	return &copied, nil
}

func (r *fakeCatalogRepo) FactionNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	for _, faction := range r.factions {
		if faction.ID != excludeID && strings.EqualFold(faction.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCatalogRepo) CreateFaction(ctx context.Context, faction *Faction) error {
	copied := *faction
	r.factions[faction.ID] = &copied
	return nil
}

func (r *fakeCatalogRepo) UpdateFaction(ctx context.Context, faction *Faction) error {
	return r.CreateFaction(ctx, faction)
}

func (r *fakeCatalogRepo) DeleteFaction(ctx context.Context, id string) error {
	delete(r.factions, id)
	return nil
}

func (r *fakeCatalogRepo) CountMiniaturesByFaction(ctx context.Context, factionID string) (int64, error) {
	var count int64
	for _, miniature := range r.miniatures {
		if miniature.FactionID != nil && *miniature.FactionID == factionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCatalogRepo) ListUnitTypes(ctx context.Context) ([]UnitType, error) {
	var result []UnitType
	for _, unitType := range r.unitTypes {
		result = append(result, *unitType)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCatalogRepo) GetUnitType(ctx context.Context, id string) (*UnitType, error) {
	unitType, ok := r.unitTypes[id]
	if !ok {
		return nil, ErrUnitTypeNotFound
	}
	copied := *unitType
	return &copied, nil
}

func (r *fakeCatalogRepo) UnitTypeNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	for _, unitType := range r.unitTypes {
		if unitType.ID != excludeID && strings.EqualFold(unitType.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCatalogRepo) CreateUnitType(ctx context.Context, unitType *UnitType) error {
	copied := *unitType
	r.unitTypes[unitType.ID] = &copied
	return nil
}

func (r *fakeCatalogRepo) UpdateUnitType(ctx context.Context, unitType *UnitType) error {
	return r.CreateUnitType(ctx, unitType)
}

func (r *fakeCatalogRepo) DeleteUnitType(ctx context.Context, id string) error {
	delete(r.unitTypes, id)
	return nil
}

func (r *fakeCatalogRepo) CountMiniaturesByUnitType(ctx context.Context, unitTypeID string) (int64, error) {
	var count int64
	for _, miniature := range r.miniatures {
		if miniature.UnitTypeID != nil && *miniature.UnitTypeID == unitTypeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCatalogRepo) ListMiniatures(ctx context.Context, filter MiniatureFilter) ([]Miniature, error) {
	var result []Miniature
	for _, miniature := range r.miniatures {
		if filter.FactionID != "" && (miniature.FactionID == nil || *miniature.FactionID != filter.FactionID) {
			continue
		}
		if filter.UnitTypeID != "" && (miniature.UnitTypeID == nil || *miniature.UnitTypeID != filter.UnitTypeID) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(miniature.Name), strings.ToLower(filter.Query)) {
			continue
		}
		result = append(result, *miniature)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCatalogRepo) GetMiniature(ctx context.Context, id string) (*Miniature, error) {
	miniature, ok := r.miniatures[id]
	if !ok {
		return nil, ErrMiniatureNotFound
	}
	copied := *miniature
	return &copied, nil
}

func (r *fakeCatalogRepo) CreateMiniature(ctx context.Context, miniature *Miniature) error {
	copied := *miniature
	r.miniatures[miniature.ID] = &copied
	return nil
}

func (r *fakeCatalogRepo) UpdateMiniature(ctx context.Context, miniature *Miniature) error {
	return r.CreateMiniature(ctx, miniature)
}

func (r *fakeCatalogRepo) DeleteMiniature(ctx context.Context, id string) error {
	delete(r.miniatures, id)
	return nil
}

func (r *fakeCatalogRepo) CountListItemsByMiniature(ctx context.Context, miniatureID string) (int64, error) {
	return r.listItems[miniatureID], nil
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func TestCreateFactionRejectsDuplicateName(t *testing.T) {
	service := NewService(newFakeCatalogRepo())

	faction, err := service.CreateFaction(context.Background(), ReferenceInput{Name: " Space Marines "})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}
	if faction.Name != "Space Marines" {
		t.Fatalf("expected trimmed name, got %q", faction.Name)
	}

	if _, err := service.CreateFaction(context.Background(), ReferenceInput{Name: "space marines"}); !errors.Is(err, ErrFactionNameTaken) {
		t.Fatalf("expected name taken, got %v", err)
	}
}

func TestUpdateFactionKeepsOwnName(t *testing.T) {
	service := NewService(newFakeCatalogRepo())
	faction, err := service.CreateFaction(context.Background(), ReferenceInput{Name: "Orks"})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}

	updated, err := service.UpdateFaction(context.Background(), UpdateReferenceInput{
		ID:          faction.ID,
		Name:        strPtr("Orks"),
		Description: strPtr("Waaagh"),
	})
	if err != nil {
		t.Fatalf("update faction: %v", err)
	}
	if updated.Description == nil || *updated.Description != "Waaagh" {
		t.Fatalf("unexpected faction %+v", updated)
	}

	if _, err := service.UpdateFaction(context.Background(), UpdateReferenceInput{ID: faction.ID}); err == nil {
		t.Fatalf("expected error for empty update")
	}
	if _, err := service.UpdateFaction(context.Background(), UpdateReferenceInput{ID: "missing", Name: strPtr("x")}); !errors.Is(err, ErrFactionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteFactionInUse(t *testing.T) {
	service := NewService(newFakeCatalogRepo())
	faction, err := service.CreateFaction(context.Background(), ReferenceInput{Name: "Necrons"})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}
	miniature, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Warrior", FactionID: &faction.ID})
	if err != nil {
		t.Fatalf("create miniature: %v", err)
	}

	if err := service.DeleteFaction(context.Background(), faction.ID); !errors.Is(err, ErrFactionInUse) {
		t.Fatalf("expected in use, got %v", err)
	}

	if err := service.DeleteMiniature(context.Background(), miniature.ID); err != nil {
		t.Fatalf("delete miniature: %v", err)
	}
	if err := service.DeleteFaction(context.Background(), faction.ID); err != nil {
		t.Fatalf("delete faction: %v", err)
	}
}

func TestDeleteUnitTypeInUse(t *testing.T) {
	service := NewService(newFakeCatalogRepo())
	unitType, err := service.CreateUnitType(context.Background(), ReferenceInput{Name: "Infantry"})
	if err != nil {
		t.Fatalf("create unit type: %v", err)
	}
	if _, err := service.CreateUnitType(context.Background(), ReferenceInput{Name: "INFANTRY"}); !errors.Is(err, ErrUnitTypeNameTaken) {
		t.Fatalf("expected name taken, got %v", err)
	}
	if _, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Guardsman", UnitTypeID: &unitType.ID}); err != nil {
		t.Fatalf("create miniature: %v", err)
	}

	if err := service.DeleteUnitType(context.Background(), unitType.ID); !errors.Is(err, ErrUnitTypeInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
}

func TestCreateMiniatureValidation(t *testing.T) {
	service := NewService(newFakeCatalogRepo())

	for _, points := range []int{-5, maxPointsValue + 1} {
		_, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Tank", PointsValue: intPtr(points)})
		if verr, ok := validation.As(err); !ok || verr.Field != "pointsValue" {
			t.Fatalf("expected pointsValue error for %d, got %v", points, err)
		}
	}

	_, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Tank", FactionID: strPtr("missing")})
	if verr, ok := validation.As(err); !ok || verr.Field != "factionId" {
		t.Fatalf("expected factionId error, got %v", err)
	}

	_, err = service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "  "})
	if verr, ok := validation.As(err); !ok || verr.Field != "name" {
		t.Fatalf("expected name error, got %v", err)
	}
}

func TestUpdateMiniaturePartial(t *testing.T) {
	service := NewService(newFakeCatalogRepo())
	faction, err := service.CreateFaction(context.Background(), ReferenceInput{Name: "Aeldari"})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}
	miniature, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{
		Name:        "Guardian",
		FactionID:   &faction.ID,
		PointsValue: intPtr(10),
		BaseSize:    strPtr("25mm"),
	})
	if err != nil {
		t.Fatalf("create miniature: %v", err)
	}

	updated, err := service.UpdateMiniature(context.Background(), UpdateMiniatureInput{
		ID:           miniature.ID,
		PointsValue:  intPtr(12),
		ClearFaction: true,
	})
	if err != nil {
		t.Fatalf("update miniature: %v", err)
	}
	if updated.FactionID != nil {
		t.Fatalf("expected faction cleared")
	}
	if updated.PointsValue == nil || *updated.PointsValue != 12 {
		t.Fatalf("expected points 12, got %v", updated.PointsValue)
	}
	if updated.BaseSize == nil || *updated.BaseSize != "25mm" || updated.Name != "Guardian" {
		t.Fatalf("expected untouched fields kept, got %+v", updated)
	}

	_, err = service.UpdateMiniature(context.Background(), UpdateMiniatureInput{ID: miniature.ID, PointsValue: intPtr(maxPointsValue + 1)})
	if verr, ok := validation.As(err); !ok || verr.Field != "pointsValue" {
		t.Fatalf("expected pointsValue error on update, got %v", err)
	}
}

func TestDeleteMiniatureInUse(t *testing.T) {
	repo := newFakeCatalogRepo()
	service := NewService(repo)
	miniature, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Dreadnought"})
	if err != nil {
		t.Fatalf("create miniature: %v", err)
	}
	repo.listItems[miniature.ID] = 2

	if err := service.DeleteMiniature(context.Background(), miniature.ID); !errors.Is(err, ErrMiniatureInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
	if err := service.DeleteMiniature(context.Background(), "missing"); !errors.Is(err, ErrMiniatureNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMiniaturesFilters(t *testing.T) {
	service := NewService(newFakeCatalogRepo())
	faction, err := service.CreateFaction(context.Background(), ReferenceInput{Name: "Tau"})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}
	for _, name := range []string{"Fire Warrior", "Crisis Suit"} {
		if _, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: name, FactionID: &faction.ID}); err != nil {
			t.Fatalf("create miniature: %v", err)
		}
	}
	if _, err := service.CreateMiniature(context.Background(), CreateMiniatureInput{Name: "Warrior Acolyte"}); err != nil {
		t.Fatalf("create miniature: %v", err)
	}

	byFaction, err := service.ListMiniatures(context.Background(), MiniatureFilter{FactionID: faction.ID})
	if err != nil {
		t.Fatalf("list miniatures: %v", err)
	}
	if len(byFaction) != 2 {
		t.Fatalf("expected 2 miniatures, got %d", len(byFaction))
	}

	byQuery, err := service.ListMiniatures(context.Background(), MiniatureFilter{Query: " warrior "})
	if err != nil {
		t.Fatalf("list miniatures: %v", err)
	}
	if len(byQuery) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(byQuery))
	}

	none, err := service.ListMiniatures(context.Background(), MiniatureFilter{UnitTypeID: "missing"})
	if err != nil {
		t.Fatalf("list miniatures: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result")
	}
}
