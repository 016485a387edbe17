package lists

import (
	"net/http"
	"time"
	"unicode/utf8"

	listsdomain "mini-tracker-go/internal/domain/lists"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

type addItemRequest struct {
	MiniatureID    string  `json:"miniatureId" validate:"required,uuid"`
	Quantity       *int    `json:"quantity" validate:"omitempty,min=1,max=100000"`
	AssemblyStatus *string `json:"assemblyStatus"`
	PaintingStatus *string `json:"paintingStatus"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

type updateItemRequest struct {
	Quantity       *int                                 `json:"quantity"`
	AssemblyStatus *string                              `json:"assemblyStatus"`
	PaintingStatus *string                              `json:"paintingStatus"`
	Notes          commonhandler.OptionalNullableString `json:"notes"`
}

type itemResponse struct {
	ID             string    `json:"id"`
	ListID         string    `json:"listId"`
	MiniatureID    string    `json:"miniatureId"`
	MiniatureName  string    `json:"miniatureName"`
	FactionName    *string   `json:"factionName"`
	UnitTypeName   *string   `json:"unitTypeName"`
	PointsValue    *int      `json:"pointsValue"`
	Quantity       int       `json:"quantity"`
	AssemblyStatus string    `json:"assemblyStatus"`
	PaintingStatus string    `json:"paintingStatus"`
	Notes          *string   `json:"notes"`
	AddedAt        time.Time `json:"addedAt"`
}

func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r)
	if err != nil {
		h.fail(w, "list_items.add", err)
		return
	}
	who := identity(r)

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "list_items.add", err, "list_id", listID)
		return
	}
	assembly, err := parseAssemblyStatus(req.AssemblyStatus)
	if err != nil {
		h.fail(w, "list_items.add", err, "list_id", listID)
		return
	}
	painting, err := parsePaintingStatus(req.PaintingStatus)
	if err != nil {
		h.fail(w, "list_items.add", err, "list_id", listID)
		return
	}

	item, err := h.Lists.AddItem(r.Context(), who, listsdomain.AddItemInput{
		ListID:         listID,
		MiniatureID:    req.MiniatureID,
		Quantity:       req.Quantity,
		AssemblyStatus: assembly,
		PaintingStatus: painting,
		Notes:          req.Notes,
	})
	if err != nil {
		h.fail(w, "list_items.add", err, "list_id", listID, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusCreated, toItemResponse(*item))
}

func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "list_items.get", err)
		return
	}
	who := identity(r)

	item, err := h.Lists.GetItem(r.Context(), who, id)
	if err != nil {
		h.fail(w, "list_items.get", err, "item_id", id, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "list_items.update", err)
		return
	}
	who := identity(r)

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if req.Notes.Value != nil && utf8.RuneCountInString(*req.Notes.Value) > 2000 {
		h.fail(w, "list_items.update", validationTooLong("notes", 2000), "item_id", id)
		return
	}
	assembly, err := parseAssemblyStatus(req.AssemblyStatus)
	if err != nil {
		h.fail(w, "list_items.update", err, "item_id", id)
		return
	}
	painting, err := parsePaintingStatus(req.PaintingStatus)
	if err != nil {
		h.fail(w, "list_items.update", err, "item_id", id)
		return
	}

	item, err := h.Lists.UpdateItem(r.Context(), who, listsdomain.UpdateItemInput{
		ID:             id,
		Quantity:       req.Quantity,
		AssemblyStatus: assembly,
		PaintingStatus: painting,
		Notes:          req.Notes.Value,
		ClearNotes:     req.Notes.Cleared(),
	})
	if err != nil {
		h.fail(w, "list_items.update", err, "item_id", id, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "list_items.delete", err)
		return
	}
	who := identity(r)

	if err := h.Lists.DeleteItem(r.Context(), who, id); err != nil {
		h.fail(w, "list_items.delete", err, "item_id", id, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func toItemResponse(item listsdomain.ItemDetail) itemResponse {
	return itemResponse{
		ID:             item.ID,
		ListID:         item.ListID,
		MiniatureID:    item.MiniatureID,
		MiniatureName:  item.MiniatureName,
		FactionName:    item.FactionName,
		UnitTypeName:   item.UnitTypeName,
		PointsValue:    item.PointsValue,
		Quantity:       item.Quantity,
		AssemblyStatus: item.AssemblyStatus.String(),
		PaintingStatus: item.PaintingStatus.String(),
		Notes:          item.Notes,
		AddedAt:        item.AddedAt,
	}
}
