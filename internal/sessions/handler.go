package sessions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/spreadsheet"
	"github.com/jmallard/manifest/pkg/handlers"
	"github.com/jmallard/manifest/pkg/routes"
	"github.com/jmallard/manifest/pkg/storage"
)

// Request validation errors surfaced by the handler.
var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidFile = errors.New("invalid or missing workbook file")
	errFileTooBig  = errors.New("workbook exceeds upload size limit")
)

// Handler provides HTTP endpoints for session operations.
type Handler struct {
	sys           System
	archive       storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// CreateRequest carries the data needed to open a new session.
type CreateRequest struct {
	Tenant string                `json:"tenant"`
	Type   pipeline.DocumentType `json:"type"`
}

// ItemsRequest carries a batch of free-text items for intake.
type ItemsRequest struct {
	Items []string `json:"items"`
}

// NewHandler creates a Handler with the given system, optional workbook
// archive, logger, and upload size limit.
func NewHandler(sys System, archive storage.System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		archive:       archive,
		logger:        logger.With("handler", "sessions"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{id}/items", Handler: h.AddItems},
			{Method: "POST", Pattern: "/{id}/upload", Handler: h.Upload},
			{Method: "POST", Pattern: "/{id}/submit", Handler: h.Submit},
		},
	}
}

// Create opens a new session for a tenant and document type.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}
	if req.Type == "" {
		req.Type = pipeline.DocOrder
	}

	session := h.sys.Create(req.Tenant, req.Type)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// Find returns a session by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	session, err := h.sys.Find(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Delete discards a session and its pending batch.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItems runs the intake pipeline over a batch of free-text items.
func (h *Handler) AddItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var req ItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	session, err := h.sys.AddItems(r.Context(), id, req.Items)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Upload processes a multipart workbook upload, flattening each row into
// a text item and running the same intake pipeline as free text.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, errFileTooBig)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidFile)
		return
	}
	defer file.Close()

	var workbook bytes.Buffer
	if _, err := io.Copy(&workbook, file); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidFile)
		return
	}

	items, err := spreadsheet.Read(bytes.NewReader(workbook.Bytes()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.sys.AddItems(r.Context(), id, items)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.archiveWorkbook(r, id, header.Filename, workbook.Bytes())

	handlers.RespondJSON(w, http.StatusOK, session)
}

// archiveWorkbook retains the uploaded workbook when an archive backend
// is configured. Archival is best effort and never fails the request.
func (h *Handler) archiveWorkbook(r *http.Request, id uuid.UUID, filename string, data []byte) {
	if h.archive == nil {
		return
	}

	key := fmt.Sprintf("%s/%s", id, filename)
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	if err := h.archive.Upload(r.Context(), key, bytes.NewReader(data), contentType); err != nil {
		h.logger.WarnContext(r.Context(), "workbook archival failed", "key", key, "error", err)
	}
}

// Submit drains the session's accepted items to the remote API.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	session, err := h.sys.Submit(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
