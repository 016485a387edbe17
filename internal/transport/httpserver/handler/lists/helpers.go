package lists

import (
	"net/http"
	"strings"

	listsdomain "mini-tracker-go/internal/domain/lists"
	"mini-tracker-go/internal/domain/validation"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
	"mini-tracker-go/internal/transport/httpserver/middleware"
)

var errorMappings = []commonhandler.ErrorMapping{
	{Err: listsdomain.ErrListNotFound, Status: http.StatusNotFound, Code: "list_not_found"},
	{Err: listsdomain.ErrItemNotFound, Status: http.StatusNotFound, Code: "list_item_not_found"},
	{Err: listsdomain.ErrMetadataNotFound, Status: http.StatusNotFound, Code: "metadata_not_found"},
	{Err: listsdomain.ErrMiniatureNotFound, Status: http.StatusNotFound, Code: "miniature_not_found"},
	{Err: listsdomain.ErrForbidden, Status: http.StatusForbidden, Code: "forbidden"},
}

func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	commonhandler.Fail(w, h.log, op, err, errorMappings, args...)
}

func writeData(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteData(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func pathID(r *http.Request) (string, error) {
	return commonhandler.PathID(r, "id")
}

// identity maps the session user, if any, to the caller the core acts for.
func identity(r *http.Request) listsdomain.Identity {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return listsdomain.Identity{}
	}
	return listsdomain.Identity{UserID: user.ID, IsAdmin: user.IsAdmin}
}

func parseAssemblyStatus(value *string) (*listsdomain.AssemblyStatus, error) {
	if value == nil {
		return nil, nil
	}
	status, err := listsdomain.ParseAssemblyStatus(strings.TrimSpace(*value))
	if err != nil {
		names := make([]string, 0, 3)
		for _, s := range listsdomain.AssemblyStatuses() {
			names = append(names, s.String())
		}
		return nil, validation.Newf("assemblyStatus", "assemblyStatus must be one of: %s", strings.Join(names, ", "))
	}
	return &status, nil
}

func parsePaintingStatus(value *string) (*listsdomain.PaintingStatus, error) {
	if value == nil {
		return nil, nil
	}
	status, err := listsdomain.ParsePaintingStatus(strings.TrimSpace(*value))
	if err != nil {
		names := make([]string, 0, 5)
		for _, s := range listsdomain.PaintingStatuses() {
			names = append(names, s.String())
		}
		return nil, validation.Newf("paintingStatus", "paintingStatus must be one of: %s", strings.Join(names, ", "))
	}
	return &status, nil
}

func validationTooLong(field string, limit int) error {
	return validation.Newf(field, "%s must be at most %d characters", field, limit)
}
