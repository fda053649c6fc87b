package refdata

import (
	"log/slog"
	"net/http"

	"github.com/jmallard/manifest/pkg/handlers"
	"github.com/jmallard/manifest/pkg/pagination"
	"github.com/jmallard/manifest/pkg/routes"
)

// Handler provides HTTP endpoints for browsing reference data.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "refdata"),
		pagination: pagination,
	}
}

// Routes returns the route group definitions for reference data endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/warehouses",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.ListWarehouses},
			},
		},
		{
			Prefix: "/customers",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.ListCustomers},
			},
		},
	}
}

// ListWarehouses returns a paginated list of warehouses, optionally scoped
// to a tenant via the tenant query parameter.
func (h *Handler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	tenant := r.URL.Query().Get("tenant")

	result, err := h.sys.ListWarehouses(r.Context(), tenant, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListCustomers returns a paginated list of customers, optionally scoped
// to a tenant via the tenant query parameter.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	tenant := r.URL.Query().Get("tenant")

	result, err := h.sys.ListCustomers(r.Context(), tenant, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
