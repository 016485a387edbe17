package lists

import (
	"net/http"
	"time"

	listsdomain "mini-tracker-go/internal/domain/lists"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

type createListRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsPublic    bool    `json:"isPublic"`
}

type updateListRequest struct {
	Name        *string                              `json:"name" validate:"omitempty,max=100"`
	Description commonhandler.OptionalNullableString `json:"description"`
	IsPublic    *bool                                `json:"isPublic"`
}

type listResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listSummaryResponse struct {
	listResponse
	ItemCount int64 `json:"itemCount"`
}

type publicListResponse struct {
	listResponse
	OwnerUsername string `json:"ownerUsername"`
	ItemCount     int64  `json:"itemCount"`
}

type publicListsResponse struct {
	Lists []publicListResponse `json:"lists"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type listDetailResponse struct {
	listResponse
	IsOwner    bool                   `json:"isOwner"`
	Access     string                 `json:"access"`
	Items      []itemResponse         `json:"items"`
	Statistics listsdomain.Statistics `json:"statistics"`
}

func (h *Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	who := identity(r)
	lists, err := h.Lists.ListMine(r.Context(), who)
	if err != nil {
		h.fail(w, "lists.list_mine", err, "user_id", who.UserID)
		return
	}

	response := make([]listSummaryResponse, 0, len(lists))
	for _, summary := range lists {
		response = append(response, listSummaryResponse{
			listResponse: toListResponse(summary.List),
			ItemCount:    summary.ItemCount,
		})
	}
	writeData(w, http.StatusOK, response)
}

func (h *Handlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	pageNumber, limit, err := commonhandler.ParsePage(r)
	if err != nil {
		h.fail(w, "lists.list_public", err)
		return
	}
	page := listsdomain.NormalizePage(listsdomain.Page{Page: pageNumber, Limit: limit})

	result, err := h.Lists.ListPublic(r.Context(), page)
	if err != nil {
		h.fail(w, "lists.list_public", err, "page", page.Page)
		return
	}

	response := publicListsResponse{
		Lists: make([]publicListResponse, 0, len(result.Lists)),
		Total: result.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for _, summary := range result.Lists {
		response.Lists = append(response.Lists, publicListResponse{
			listResponse:  toListResponse(summary.List),
			OwnerUsername: summary.OwnerUsername,
			ItemCount:     summary.ItemCount,
		})
	}
	writeData(w, http.StatusOK, response)
}

func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	who := identity(r)

	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "lists.create", err, "user_id", who.UserID)
		return
	}

	list, err := h.Lists.CreateList(r.Context(), who, listsdomain.CreateListInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.fail(w, "lists.create", err, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusCreated, toListResponse(*list))
}

func (h *Handlers) GetList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "lists.get", err)
		return
	}
	who := identity(r)

	detail, err := h.Lists.GetListDetail(r.Context(), who, id)
	if err != nil {
		h.fail(w, "lists.get", err, "list_id", id, "user_id", who.UserID)
		return
	}

	items := make([]itemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, toItemResponse(item))
	}
	writeData(w, http.StatusOK, listDetailResponse{
		listResponse: toListResponse(detail.List),
		IsOwner:      detail.Access == listsdomain.AccessOwner,
		Access:       detail.Access.String(),
		Items:        items,
		Statistics:   detail.Statistics,
	})
}

func (h *Handlers) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "lists.update", err)
		return
	}
	who := identity(r)

	var req updateListRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "lists.update", err, "list_id", id)
		return
	}

	list, err := h.Lists.UpdateList(r.Context(), who, listsdomain.UpdateListInput{
		ID:               id,
		Name:             req.Name,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Cleared(),
		IsPublic:         req.IsPublic,
	})
	if err != nil {
		h.fail(w, "lists.update", err, "list_id", id, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, toListResponse(*list))
}

func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, "lists.delete", err)
		return
	}
	who := identity(r)

	if err := h.Lists.DeleteList(r.Context(), who, id); err != nil {
		h.fail(w, "lists.delete", err, "list_id", id, "user_id", who.UserID)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func toListResponse(list listsdomain.List) listResponse {
	return listResponse{
		ID:          list.ID,
		UserID:      list.UserID,
		Name:        list.Name,
		Description: list.Description,
		IsPublic:    list.IsPublic,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}
