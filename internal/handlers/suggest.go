package handlers

import (
	"net/http"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SuggestionHandler handles AI suggestion HTTP requests
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
	}
}

// RouteSuggestions handles GET /api/ai/route-suggestions
func (h *SuggestionHandler) RouteSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	text, err := h.suggestionService.RouteSuggestions(ctx, userID)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get route suggestions")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"suggestions": text})
}

// MatchTips handles GET /api/ai/match-tips
func (h *SuggestionHandler) MatchTips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	targetUserID := r.URL.Query().Get("target_user_id")

	if targetUserID == "" {
		respondError(w, "target_user_id is required", http.StatusBadRequest)
		return
	}

	text, err := h.suggestionService.MatchTips(ctx, userID, targetUserID)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("user_id", userID).
				Str("target_user_id", targetUserID).
				Msg("Failed to get match tips")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"tips": text})
}
