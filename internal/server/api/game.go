package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/rpsmood/internal/app"
)

// maxCommandBody bounds a command request body.
const maxCommandBody = 1 << 10

// Game is the part of the running game the handlers need.
type Game interface {
	Snapshot() app.FrameResult
	Send(cmd app.Command) error
}

// GameHandler serves live state and accepts commands.
type GameHandler struct {
	game Game
}

// NewGameHandler creates a GameHandler for g.
func NewGameHandler(g Game) *GameHandler {
	return &GameHandler{game: g}
}

// RegisterRoutes mounts the handler's routes on r.
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.state)
	r.Post("/commands", h.command)
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Accepted app.Command `json:"accepted"`
}

// state handles GET /api/state and returns the latest frame result.
func (h *GameHandler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.game.Snapshot())
}

// command handles POST /api/commands and queues a control command.
func (h *GameHandler) command(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxCommandBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cmd, err := app.ParseCommand(req.Command)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown command")
		return
	}

	if err := h.game.Send(cmd); err != nil {
		if errors.Is(err, app.ErrCommandQueueFull) {
			writeError(w, http.StatusServiceUnavailable, "Command queue full")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to queue command")
		return
	}

	writeJSON(w, http.StatusAccepted, commandResponse{Accepted: cmd})
}
