package lists

import (
	"net/http"
	"time"

	listsdomain "mini-tracker-go/internal/domain/lists"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

type metadataRequest struct {
	PaintColors     *string  `json:"paintColors" validate:"omitempty,max=2000"`
	Techniques      *string  `json:"techniques" validate:"omitempty,max=2000"`
	PurchaseDate    *string  `json:"purchaseDate"`
	Cost            *float64 `json:"cost"`
	StorageLocation *string  `json:"storageLocation" validate:"omitempty,max=255"`
	CustomNotes     *string  `json:"customNotes" validate:"omitempty,max=2000"`
}

type metadataResponse struct {
	ID              string    `json:"id"`
	ListItemID      string    `json:"listItemId"`
	PaintColors     *string   `json:"paintColors"`
	Techniques      *string   `json:"techniques"`
	PurchaseDate    *string   `json:"purchaseDate"`
	Cost            *float64  `json:"cost"`
	StorageLocation *string   `json:"storageLocation"`
	CustomNotes     *string   `json:"customNotes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (h *Handlers) GetMetadata(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		h.fail(w, "metadata.get", err)
		return
	}
	who := identity(r)

	metadata, err := h.Lists.GetMetadata(r.Context(), who, itemID)
	if err != nil {
		h.fail(w, "metadata.get", err, "item_id", itemID, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, toMetadataResponse(*metadata))
}

// UpsertMetadata answers 201 when the row was created and 200 when replaced.
func (h *Handlers) UpsertMetadata(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		h.fail(w, "metadata.upsert", err)
		return
	}
	who := identity(r)

	var req metadataRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "metadata.upsert", err, "item_id", itemID)
		return
	}

	metadata, created, err := h.Lists.UpsertMetadata(r.Context(), who, listsdomain.MetadataInput{
		ItemID:          itemID,
		PaintColors:     req.PaintColors,
		Techniques:      req.Techniques,
		PurchaseDate:    req.PurchaseDate,
		Cost:            req.Cost,
		StorageLocation: req.StorageLocation,
		CustomNotes:     req.CustomNotes,
	})
	if err != nil {
		h.fail(w, "metadata.upsert", err, "item_id", itemID, "user_id", who.UserID)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeData(w, status, toMetadataResponse(*metadata))
}

func (h *Handlers) DeleteMetadata(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		h.fail(w, "metadata.delete", err)
		return
	}
	who := identity(r)

	if err := h.Lists.DeleteMetadata(r.Context(), who, itemID); err != nil {
		h.fail(w, "metadata.delete", err, "item_id", itemID, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"listItemId": itemID})
}

func toMetadataResponse(metadata listsdomain.Metadata) metadataResponse {
	return metadataResponse{
		ID:              metadata.ID,
		ListItemID:      metadata.ListItemID,
		PaintColors:     metadata.PaintColors,
		Techniques:      metadata.Techniques,
		PurchaseDate:    metadata.PurchaseDate,
		Cost:            metadata.Cost,
		StorageLocation: metadata.StorageLocation,
		CustomNotes:     metadata.CustomNotes,
		CreatedAt:       metadata.CreatedAt,
		UpdatedAt:       metadata.UpdatedAt,
	}
}
