package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/dugout/internal/api/respond"
	"github.com/albapepper/dugout/internal/describe"
	"github.com/albapepper/dugout/internal/player"
)

// GetPlayers lists all players.
// @Summary List players
// @Description Returns every player, sorted descending by the chosen key.
// @Tags players
// @Produce json
// @Param sort_by query string false "Sort key" Enums(hits, home_runs, hits_per_game) default(hits)
// @Success 200 {array} player.Player
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	key := player.ParseSortKey(r.URL.Query().Get("sort_by"))

	players, err := h.store.GetAll(r.Context(), key)
	if err != nil {
		h.logger.Error("list players failed", "sort_by", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load players")
		return
	}
	if players == nil {
		players = []player.Player{}
	}
	respond.WriteJSONObject(w, http.StatusOK, players)
}

// GetPlayer fetches one player by id.
// @Summary Get player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} player.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/players/{id} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	p, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writePlayerError(w, err, "get player", id)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}

// UpdatePlayer applies a partial edit.
// @Summary Update player
// @Description Applies the provided fields, recomputes stored rate stats, and marks the row edited.
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param body body player.Update true "Fields to change"
// @Success 200 {object} player.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/players/{id} [put]
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	var upd player.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}

	p, err := h.store.Update(r.Context(), id, upd)
	if err != nil {
		h.writePlayerError(w, err, "update player", id)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}

// GetDescription serves the cached or freshly generated description.
// @Summary Get player description
// @Description Returns the cached description, generating and caching one on first request.
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/players/{id}/description [get]
func (h *Handler) GetDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	text, err := h.describe.GetOrCreate(r.Context(), id)
	if err != nil {
		h.writePlayerError(w, err, "describe player", id)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]string{"description": text})
}

// SyncPlayers imports the full player collection from the external feed.
// @Summary Sync players from the stats feed
// @Tags players
// @Produce json
// @Success 200 {object} seed.SyncResult
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/players/sync [post]
func (h *Handler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	result, err := h.sync(r.Context())
	if err != nil {
		h.logger.Error("player sync failed", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Stats feed sync failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, result)
}

// playerID parses the {id} route param, writing a 400 on failure.
func (h *Handler) playerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Player id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writePlayerError maps domain errors onto HTTP statuses. Upstream and
// internal details are logged, not leaked to clients.
func (h *Handler) writePlayerError(w http.ResponseWriter, err error, op string, id int64) {
	switch {
	case errors.Is(err, player.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
	case player.IsValidation(err):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid player update", err.Error())
	case errors.Is(err, describe.ErrGeneration):
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Description generation failed")
	default:
		h.logger.Error(op+" failed", "player_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
