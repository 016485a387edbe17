package catalog

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogdomain "mini-tracker-go/internal/domain/catalog"
	"mini-tracker-go/internal/domain/validation"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

type createMiniatureRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	FactionID   *string `json:"factionId" validate:"omitempty,uuid"`
	UnitTypeID  *string `json:"unitTypeId" validate:"omitempty,uuid"`
	PointsValue *int    `json:"pointsValue" validate:"omitempty,gte=0,max=100000"`
	BaseSize    *string `json:"baseSize" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type updateMiniatureRequest struct {
	Name        *string                              `json:"name" validate:"omitempty,max=200"`
	FactionID   commonhandler.OptionalNullableString `json:"factionId"`
	UnitTypeID  commonhandler.OptionalNullableString `json:"unitTypeId"`
	PointsValue commonhandler.OptionalNullableInt    `json:"pointsValue"`
	BaseSize    commonhandler.OptionalNullableString `json:"baseSize"`
	Description commonhandler.OptionalNullableString `json:"description"`
}

type namedRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type miniatureResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FactionID   *string           `json:"factionId"`
	Faction     *namedRefResponse `json:"faction"`
	UnitTypeID  *string           `json:"unitTypeId"`
	UnitType    *namedRefResponse `json:"unitType"`
	PointsValue *int              `json:"pointsValue"`
	BaseSize    *string           `json:"baseSize"`
	Description *string           `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (h *Handlers) ListMiniatures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := catalogdomain.MiniatureFilter{
		FactionID:  strings.TrimSpace(query.Get("factionId")),
		UnitTypeID: strings.TrimSpace(query.Get("unitTypeId")),
		Query:      query.Get("q"),
	}
	if err := validateOptionalID("factionId", filter.FactionID); err != nil {
		h.fail(w, "miniatures.list", err)
		return
	}
	if err := validateOptionalID("unitTypeId", filter.UnitTypeID); err != nil {
		h.fail(w, "miniatures.list", err)
		return
	}

	miniatures, err := h.Catalog.ListMiniatures(r.Context(), filter)
	if err != nil {
		h.fail(w, "miniatures.list", err)
		return
	}

	response := make([]miniatureResponse, 0, len(miniatures))
	for _, miniature := range miniatures {
		response = append(response, toMiniatureResponse(miniature))
	}
	writeData(w, http.StatusOK, response)
}

func (h *Handlers) GetMiniature(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "miniatures.get", err)
		return
	}

	miniature, err := h.Catalog.GetMiniature(r.Context(), id)
	if err != nil {
		h.fail(w, "miniatures.get", err, "miniature_id", id)
		return
	}
	writeData(w, http.StatusOK, toMiniatureResponse(*miniature))
}

func (h *Handlers) CreateMiniature(w http.ResponseWriter, r *http.Request) {
	var req createMiniatureRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "miniatures.create", err)
		return
	}

	miniature, err := h.Catalog.CreateMiniature(r.Context(), catalogdomain.CreateMiniatureInput{
		Name:        req.Name,
		FactionID:   req.FactionID,
		UnitTypeID:  req.UnitTypeID,
		PointsValue: req.PointsValue,
		BaseSize:    req.BaseSize,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, "miniatures.create", err, "name", req.Name)
		return
	}
	writeData(w, http.StatusCreated, toMiniatureResponse(*miniature))
}

func (h *Handlers) UpdateMiniature(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "miniatures.update", err)
		return
	}

	var req updateMiniatureRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "miniatures.update", err, "miniature_id", id)
		return
	}
	if req.FactionID.Value != nil {
		if err := validateOptionalID("factionId", *req.FactionID.Value); err != nil {
			h.fail(w, "miniatures.update", err, "miniature_id", id)
			return
		}
	}
	if req.UnitTypeID.Value != nil {
		if err := validateOptionalID("unitTypeId", *req.UnitTypeID.Value); err != nil {
			h.fail(w, "miniatures.update", err, "miniature_id", id)
			return
		}
	}

	miniature, err := h.Catalog.UpdateMiniature(r.Context(), catalogdomain.UpdateMiniatureInput{
		ID:               id,
		Name:             req.Name,
		FactionID:        req.FactionID.Value,
		ClearFaction:     req.FactionID.Cleared(),
		UnitTypeID:       req.UnitTypeID.Value,
		ClearUnitType:    req.UnitTypeID.Cleared(),
		PointsValue:      req.PointsValue.Value,
		ClearPoints:      req.PointsValue.Cleared(),
		BaseSize:         req.BaseSize.Value,
		ClearBaseSize:    req.BaseSize.Cleared(),
		Description:      req.Description.Value,
		ClearDescription: req.Description.Cleared(),
	})
	if err != nil {
		h.fail(w, "miniatures.update", err, "miniature_id", id)
		return
	}
	writeData(w, http.StatusOK, toMiniatureResponse(*miniature))
}

func (h *Handlers) DeleteMiniature(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "miniatures.delete", err)
		return
	}

	if err := h.Catalog.DeleteMiniature(r.Context(), id); err != nil {
		h.fail(w, "miniatures.delete", err, "miniature_id", id)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func validateOptionalID(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := uuid.Parse(value); err != nil {
		return validation.New(field, field+" must be a valid id")
	}
	return nil
}

func toMiniatureResponse(miniature catalogdomain.Miniature) miniatureResponse {
	response := miniatureResponse{
		ID:          miniature.ID,
		Name:        miniature.Name,
		FactionID:   miniature.FactionID,
		UnitTypeID:  miniature.UnitTypeID,
		PointsValue: miniature.PointsValue,
		BaseSize:    miniature.BaseSize,
		Description: miniature.Description,
		CreatedAt:   miniature.CreatedAt,
		UpdatedAt:   miniature.UpdatedAt,
	}
	if miniature.Faction != nil {
		response.Faction = &namedRefResponse{ID: miniature.Faction.ID, Name: miniature.Faction.Name}
	}
	if miniature.UnitType != nil {
		response.UnitType = &namedRefResponse{ID: miniature.UnitType.ID, Name: miniature.UnitType.Name}
	}
	return response
}
