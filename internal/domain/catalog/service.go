package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"mini-tracker-go/internal/domain/validation"
)

const (
	maxReferenceNameLength = 100
	maxMiniatureNameLength = 200
	maxBaseSizeLength      = 50
	maxPointsValue         = 100000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListFactions(ctx context.Context) ([]Faction, error) {
	factions, err := s.repo.ListFactions(ctx)
	if err != nil {
		return nil, err
	}
	if factions == nil {
		factions = []Faction{}
	}
	return factions, nil
}

func (s *Service) GetFaction(ctx context.Context, id string) (*Faction, error) {
	return s.repo.GetFaction(ctx, id)
}

func (s *Service) CreateFaction(ctx context.Context, input ReferenceInput) (*Faction, error) {
	name, err := normalizeName(input.Name, maxReferenceNameLength)
	if err != nil {
		return nil, err
	}

	faction := Faction{
		ID:          uuid.NewString(),
		Name:        name,
		Description: trimOptional(input.Description),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.FactionNameExists(ctx, name, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrFactionNameTaken
		}
		return tx.CreateFaction(ctx, &faction)
	})
	if err != nil {
		return nil, err
	}
	return &faction, nil
}

func (s *Service) UpdateFaction(ctx context.Context, input UpdateReferenceInput) (*Faction, error) {
	if input.Name == nil && input.Description == nil && !input.ClearDescription {
		return nil, validation.New("", "no fields to update")
	}

	var faction *Faction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetFaction(ctx, input.ID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name, err := normalizeName(*input.Name, maxReferenceNameLength)
			if err != nil {
				return err
			}
			taken, err := tx.FactionNameExists(ctx, name, current.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrFactionNameTaken
			}
			current.Name = name
		}
		current.Description = applyDescription(current.Description, input.Description, input.ClearDescription)
		faction = current
		return tx.UpdateFaction(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return faction, nil
}

func (s *Service) DeleteFaction(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetFaction(ctx, id); err != nil {
			return err
		}
		count, err := tx.CountMiniaturesByFaction(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrFactionInUse
		}
		return tx.DeleteFaction(ctx, id)
	})
}

func (s *Service) ListUnitTypes(ctx context.Context) ([]UnitType, error) {
	unitTypes, err := s.repo.ListUnitTypes(ctx)
	if err != nil {
		return nil, err
	}
	if unitTypes == nil {
		unitTypes = []UnitType{}
	}
	return unitTypes, nil
}

func (s *Service) GetUnitType(ctx context.Context, id string) (*UnitType, error) {
	return s.repo.GetUnitType(ctx, id)
}

func (s *Service) CreateUnitType(ctx context.Context, input ReferenceInput) (*UnitType, error) {
	name, err := normalizeName(input.Name, maxReferenceNameLength)
	if err != nil {
		return nil, err
	}

	unitType := UnitType{
		ID:          uuid.NewString(),
		Name:        name,
		Description: trimOptional(input.Description),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.UnitTypeNameExists(ctx, name, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrUnitTypeNameTaken
		}
		return tx.CreateUnitType(ctx, &unitType)
	})
	if err != nil {
		return nil, err
	}
	return &unitType, nil
}

func (s *Service) UpdateUnitType(ctx context.Context, input UpdateReferenceInput) (*UnitType, error) {
	if input.Name == nil && input.Description == nil && !input.ClearDescription {
		return nil, validation.New("", "no fields to update")
	}

	var unitType *UnitType
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetUnitType(ctx, input.ID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name, err := normalizeName(*input.Name, maxReferenceNameLength)
			if err != nil {
				return err
			}
			taken, err := tx.UnitTypeNameExists(ctx, name, current.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrUnitTypeNameTaken
			}
			current.Name = name
		}
		current.Description = applyDescription(current.Description, input.Description, input.ClearDescription)
		unitType = current
		return tx.UpdateUnitType(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return unitType, nil
}

func (s *Service) DeleteUnitType(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetUnitType(ctx, id); err != nil {
			return err
		}
		count, err := tx.CountMiniaturesByUnitType(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrUnitTypeInUse
		}
		return tx.DeleteUnitType(ctx, id)
	})
}

func (s *Service) ListMiniatures(ctx context.Context, filter MiniatureFilter) ([]Miniature, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	miniatures, err := s.repo.ListMiniatures(ctx, filter)
	if err != nil {
		return nil, err
	}
	if miniatures == nil {
		miniatures = []Miniature{}
	}
	return miniatures, nil
}

func (s *Service) GetMiniature(ctx context.Context, id string) (*Miniature, error) {
	return s.repo.GetMiniature(ctx, id)
}

func (s *Service) CreateMiniature(ctx context.Context, input CreateMiniatureInput) (*Miniature, error) {
	name, err := normalizeName(input.Name, maxMiniatureNameLength)
	if err != nil {
		return nil, err
	}
	if err := validatePoints(input.PointsValue); err != nil {
		return nil, err
	}
	baseSize, err := normalizeBaseSize(input.BaseSize)
	if err != nil {
		return nil, err
	}

	miniature := Miniature{
		ID:          uuid.NewString(),
		Name:        name,
		FactionID:   trimOptional(input.FactionID),
		UnitTypeID:  trimOptional(input.UnitTypeID),
		PointsValue: input.PointsValue,
		BaseSize:    baseSize,
		Description: trimOptional(input.Description),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkReferences(ctx, tx, miniature.FactionID, miniature.UnitTypeID); err != nil {
			return err
		}
		return tx.CreateMiniature(ctx, &miniature)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetMiniature(ctx, miniature.ID)
}

func (s *Service) UpdateMiniature(ctx context.Context, input UpdateMiniatureInput) (*Miniature, error) {
	if input.Name == nil && input.FactionID == nil && !input.ClearFaction &&
		input.UnitTypeID == nil && !input.ClearUnitType &&
		input.PointsValue == nil && !input.ClearPoints &&
		input.BaseSize == nil && !input.ClearBaseSize &&
		input.Description == nil && !input.ClearDescription {
		return nil, validation.New("", "no fields to update")
	}
	if err := validatePoints(input.PointsValue); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetMiniature(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name, err := normalizeName(*input.Name, maxMiniatureNameLength)
			if err != nil {
				return err
			}
			current.Name = name
		}
		if input.ClearFaction {
			current.FactionID = nil
		} else if input.FactionID != nil {
			current.FactionID = trimOptional(input.FactionID)
		}
		if input.ClearUnitType {
			current.UnitTypeID = nil
		} else if input.UnitTypeID != nil {
			current.UnitTypeID = trimOptional(input.UnitTypeID)
		}
		if input.ClearPoints {
			current.PointsValue = nil
		} else if input.PointsValue != nil {
			current.PointsValue = input.PointsValue
		}
		if input.ClearBaseSize {
			current.BaseSize = nil
		} else if input.BaseSize != nil {
			baseSize, err := normalizeBaseSize(input.BaseSize)
			if err != nil {
				return err
			}
			current.BaseSize = baseSize
		}
		current.Description = applyDescription(current.Description, input.Description, input.ClearDescription)

		if err := checkReferences(ctx, tx, current.FactionID, current.UnitTypeID); err != nil {
			return err
		}
		return tx.UpdateMiniature(ctx, current)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetMiniature(ctx, input.ID)
}

func (s *Service) DeleteMiniature(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetMiniature(ctx, id); err != nil {
			return err
		}
		count, err := tx.CountListItemsByMiniature(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrMiniatureInUse
		}
		return tx.DeleteMiniature(ctx, id)
	})
}

func checkReferences(ctx context.Context, tx Repository, factionID, unitTypeID *string) error {
	if factionID != nil {
		if _, err := tx.GetFaction(ctx, *factionID); err != nil {
			if errors.Is(err, ErrFactionNotFound) {
				return validation.New("factionId", "faction does not exist")
			}
			return err
		}
	}
	if unitTypeID != nil {
		if _, err := tx.GetUnitType(ctx, *unitTypeID); err != nil {
			if errors.Is(err, ErrUnitTypeNotFound) {
				return validation.New("unitTypeId", "unit type does not exist")
			}
			return err
		}
	}
	return nil
}

func normalizeName(name string, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", validation.New("name", "name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return "", validation.Newf("name", "name must be at most %d characters", maxLength)
	}
	return trimmed, nil
}

func normalizeBaseSize(value *string) (*string, error) {
	baseSize := trimOptional(value)
	if baseSize != nil && utf8.RuneCountInString(*baseSize) > maxBaseSizeLength {
		return nil, validation.Newf("baseSize", "baseSize must be at most %d characters", maxBaseSizeLength)
	}
	return baseSize, nil
}

func validatePoints(points *int) error {
	if points == nil {
		return nil
	}
	if *points < 0 {
		return validation.New("pointsValue", "pointsValue must be a non-negative integer")
	}
	if *points > maxPointsValue {
		return validation.Newf("pointsValue", "pointsValue must be at most %d", maxPointsValue)
	}
	return nil
}

func applyDescription(current, update *string, remove bool) *string {
	if remove {
		return nil
	}
	if update != nil {
		return trimOptional(update)
	}
	return current
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
