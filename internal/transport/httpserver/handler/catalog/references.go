package catalog

import (
	"net/http"
	"time"

	catalogdomain "mini-tracker-go/internal/domain/catalog"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

// Factions and unit types share the same request and response shapes.

type createReferenceRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type updateReferenceRequest struct {
	Name        *string                              `json:"name" validate:"omitempty,max=100"`
	Description commonhandler.OptionalNullableString `json:"description"`
}

type referenceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (req updateReferenceRequest) toInput(id string) catalogdomain.UpdateReferenceInput {
	return catalogdomain.UpdateReferenceInput{
		ID:               id,
		Name:             req.Name,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Cleared(),
	}
}

func (h *Handlers) ListFactions(w http.ResponseWriter, r *http.Request) {
	factions, err := h.Catalog.ListFactions(r.Context())
	if err != nil {
		h.fail(w, "factions.list", err)
		return
	}

	response := make([]referenceResponse, 0, len(factions))
	for _, faction := range factions {
		response = append(response, toFactionResponse(faction))
	}
	writeData(w, http.StatusOK, response)
}

func (h *Handlers) GetFaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "factions.get", err)
		return
	}

	faction, err := h.Catalog.GetFaction(r.Context(), id)
	if err != nil {
		h.fail(w, "factions.get", err, "faction_id", id)
		return
	}
	writeData(w, http.StatusOK, toFactionResponse(*faction))
}

func (h *Handlers) CreateFaction(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "factions.create", err)
		return
	}

	faction, err := h.Catalog.CreateFaction(r.Context(), catalogdomain.ReferenceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, "factions.create", err, "name", req.Name)
		return
	}
	writeData(w, http.StatusCreated, toFactionResponse(*faction))
}

func (h *Handlers) UpdateFaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "factions.update", err)
		return
	}

	var req updateReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "factions.update", err, "faction_id", id)
		return
	}

	faction, err := h.Catalog.UpdateFaction(r.Context(), req.toInput(id))
	if err != nil {
		h.fail(w, "factions.update", err, "faction_id", id)
		return
	}
	writeData(w, http.StatusOK, toFactionResponse(*faction))
}

func (h *Handlers) DeleteFaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "factions.delete", err)
		return
	}

	if err := h.Catalog.DeleteFaction(r.Context(), id); err != nil {
		h.fail(w, "factions.delete", err, "faction_id", id)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handlers) ListUnitTypes(w http.ResponseWriter, r *http.Request) {
	unitTypes, err := h.Catalog.ListUnitTypes(r.Context())
	if err != nil {
		h.fail(w, "unit_types.list", err)
		return
	}

	response := make([]referenceResponse, 0, len(unitTypes))
	for _, unitType := range unitTypes {
		response = append(response, toUnitTypeResponse(unitType))
	}
	writeData(w, http.StatusOK, response)
}

func (h *Handlers) GetUnitType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "unit_types.get", err)
		return
	}

	unitType, err := h.Catalog.GetUnitType(r.Context(), id)
	if err != nil {
		h.fail(w, "unit_types.get", err, "unit_type_id", id)
		return
	}
	writeData(w, http.StatusOK, toUnitTypeResponse(*unitType))
}

func (h *Handlers) CreateUnitType(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "unit_types.create", err)
		return
	}

	unitType, err := h.Catalog.CreateUnitType(r.Context(), catalogdomain.ReferenceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, "unit_types.create", err, "name", req.Name)
		return
	}
	writeData(w, http.StatusCreated, toUnitTypeResponse(*unitType))
}

func (h *Handlers) UpdateUnitType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "unit_types.update", err)
		return
	}

	var req updateReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "unit_types.update", err, "unit_type_id", id)
		return
	}

	unitType, err := h.Catalog.UpdateUnitType(r.Context(), req.toInput(id))
	if err != nil {
		h.fail(w, "unit_types.update", err, "unit_type_id", id)
		return
	}
	writeData(w, http.StatusOK, toUnitTypeResponse(*unitType))
}

func (h *Handlers) DeleteUnitType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "unit_types.delete", err)
		return
	}

	if err := h.Catalog.DeleteUnitType(r.Context(), id); err != nil {
		h.fail(w, "unit_types.delete", err, "unit_type_id", id)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func toFactionResponse(faction catalogdomain.Faction) referenceResponse {
	return referenceResponse{
		ID:          faction.ID,
		Name:        faction.Name,
		Description: faction.Description,
		CreatedAt:   faction.CreatedAt,
		UpdatedAt:   faction.UpdatedAt,
	}
}

func toUnitTypeResponse(unitType catalogdomain.UnitType) referenceResponse {
	return referenceResponse{
		ID:          unitType.ID,
		Name:        unitType.Name,
		Description: unitType.Description,
		CreatedAt:   unitType.CreatedAt,
		UpdatedAt:   unitType.UpdatedAt,
	}
}
