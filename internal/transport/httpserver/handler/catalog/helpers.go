package catalog

import (
	"net/http"

	catalogdomain "mini-tracker-go/internal/domain/catalog"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

var errorMappings = []commonhandler.ErrorMapping{
	{Err: catalogdomain.ErrFactionNotFound, Status: http.StatusNotFound, Code: "faction_not_found"},
	{Err: catalogdomain.ErrUnitTypeNotFound, Status: http.StatusNotFound, Code: "unit_type_not_found"},
	{Err: catalogdomain.ErrMiniatureNotFound, Status: http.StatusNotFound, Code: "miniature_not_found"},
	{Err: catalogdomain.ErrFactionNameTaken, Status: http.StatusConflict, Code: "faction_name_taken"},
	{Err: catalogdomain.ErrUnitTypeNameTaken, Status: http.StatusConflict, Code: "unit_type_name_taken"},
	{Err: catalogdomain.ErrFactionInUse, Status: http.StatusConflict, Code: "faction_in_use"},
	{Err: catalogdomain.ErrUnitTypeInUse, Status: http.StatusConflict, Code: "unit_type_in_use"},
	{Err: catalogdomain.ErrMiniatureInUse, Status: http.StatusConflict, Code: "miniature_in_use"},
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
