package handlers

import (
	"encoding/json"
	"net/http"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ChatHandler handles conversation HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListMessages handles GET /api/chat/{match_id}
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	matchID := chi.URLParam(r, "match_id")

	if matchID == "" {
		respondError(w, "match_id is required", http.StatusBadRequest)
		return
	}

	messages, err := h.chatService.ListMessages(ctx, matchID, userID)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("user_id", userID).
				Str("match_id", matchID).
				Msg("Failed to list messages")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	MatchID string `json:"match_id"`
	Content string `json:"content"`
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MatchID == "" {
		respondError(w, "match_id is required", http.StatusBadRequest)
		return
	}

	message, err := h.chatService.SendMessage(ctx, req.MatchID, userID, req.Content)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("user_id", userID).
				Str("match_id", req.MatchID).
				Msg("Failed to send message")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, message)
}
