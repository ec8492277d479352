package journal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mood-journal/mood-journal/internal/platform/httpx"
	"github.com/mood-journal/mood-journal/internal/shared"
)

// Handler wires HTTP endpoints for journal entries.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func principal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
	}
	return userID, ok
}

func entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparseable id cannot exist, so it reads as not found.
		httpx.RespondError(w, httpx.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// HandleCreate persists a new entry.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title and content are required")
		return
	}

	entry, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		h.logger.Error("create entry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// HandleList returns the caller's entries, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), ownerID, OrderDesc)
	if err != nil {
		h.logger.Error("list entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// HandleMoods returns the caller's raw mood observations, oldest first.
func (h *Handler) HandleMoods(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	points, err := h.service.MoodPoints(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("list mood points", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

// HandleMoodSeries returns the dense, chart-ready series.
func (h *Handler) HandleMoodSeries(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	series, err := h.service.Series(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("build mood series", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

// HandleGet returns one entry.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// HandleUpdate edits one entry.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title and content are required")
		return
	}

	entry, err := h.service.Update(r.Context(), ownerID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// HandleDelete removes one entry. Always 200 for an authenticated caller.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	// Delete is idempotent: an id that cannot exist deletes nothing and
	// still succeeds.
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		h.logger.Error("delete entry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
