package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/rpsmood/internal/store"
)

// MaxListLimit caps the limit query parameter.
const MaxListLimit = 500

// RoundsHandler serves the round history of one session.
type RoundsHandler struct {
	store     *store.Store
	sessionID string
}

// NewRoundsHandler creates a RoundsHandler for sessionID.
func NewRoundsHandler(s *store.Store, sessionID string) *RoundsHandler {
	return &RoundsHandler{store: s, sessionID: sessionID}
}

// RegisterRoutes mounts the handler's routes on r.
func (h *RoundsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/rounds", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/stats", h.stats)
		r.Get("/{id}", h.get)
	})
}

type listRoundsResponse struct {
	SessionID string        `json:"session_id"`
	Rounds    []store.Round `json:"rounds"`
}

// list handles GET /api/rounds?limit=N, newest first.
func (h *RoundsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = min(n, MaxListLimit)
	}

	rounds, err := h.store.Rounds().ListBySession(r.Context(), h.sessionID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rounds")
		return
	}

	writeJSON(w, http.StatusOK, listRoundsResponse{SessionID: h.sessionID, Rounds: rounds})
}

// stats handles GET /api/rounds/stats.
func (h *RoundsHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Rounds().Stats(r.Context(), h.sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// get handles GET /api/rounds/{id}.
func (h *RoundsHandler) get(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.Rounds().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	writeJSON(w, http.StatusOK, round)
}
