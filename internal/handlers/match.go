package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MatchHandler handles discovery, swipe and match-list HTTP requests
type MatchHandler struct {
	discoveryService *services.DiscoveryService
	matchService     *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(discoveryService *services.DiscoveryService, matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		discoveryService: discoveryService,
		matchService:     matchService,
	}
}

// Discover handles GET /api/discover
func (h *MatchHandler) Discover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	filters := services.DiscoverFilters{
		MinAge:      intParam(r, "min_age"),
		MaxAge:      intParam(r, "max_age"),
		MinDistance: intParam(r, "min_distance"),
		MaxDistance: intParam(r, "max_distance"),
	}
	if v := r.URL.Query().Get("experience_level"); v != "" {
		filters.ExperienceLevel = &v
	}
	if v := r.URL.Query().Get("zone"); v != "" {
		filters.Zone = &v
	}
	if v := intParam(r, "limit"); v != nil {
		filters.Limit = *v
	}

	candidates, err := h.discoveryService.Discover(ctx, userID, filters)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to discover candidates")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	if candidates == nil {
		candidates = []models.User{}
	}

	respondJSON(w, http.StatusOK, candidates)
}

// SwipeRequest represents the request body for a swipe
type SwipeRequest struct {
	TargetUserID string `json:"target_user_id"`
	Action       string `json:"action"`
}

// SwipeResponse represents the outcome of a swipe
type SwipeResponse struct {
	Success bool    `json:"success"`
	Match   bool    `json:"match"`
	MatchID *string `json:"match_id"`
}

// Swipe handles POST /api/swipe
func (h *MatchHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		respondError(w, "target_user_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.matchService.RecordSwipe(ctx, userID, req.TargetUserID, req.Action)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("user_id", userID).
				Str("target_user_id", req.TargetUserID).
				Msg("Failed to record swipe")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	resp := SwipeResponse{Success: true, Match: result.Matched}
	if result.Matched {
		log.Info().
			Str("user_id", userID).
			Str("target_user_id", req.TargetUserID).
			Str("match_id", result.MatchID).
			Msg("Match created")
		resp.MatchID = &result.MatchID
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListMatches handles GET /api/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	matches, err := h.matchService.ListMatches(ctx, userID)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list matches")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, matches)
}

// intParam parses an optional integer query parameter. Unparseable values
// are treated as absent.
func intParam(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
