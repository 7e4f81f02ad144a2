package handlers

import (
	"net/http"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	limit := 0
	if v := intParam(r, "limit"); v != nil {
		limit = *v
	}

	notifications, err := h.notificationService.List(ctx, userID, unreadOnly, limit)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list notifications")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	respondJSON(w, http.StatusOK, notifications)
}

// UnreadCountResponse carries the unread counter
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	count, err := h.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to count unread notifications")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead handles PUT /api/notifications/{notification_id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	notificationID := chi.URLParam(r, "notification_id")

	if notificationID == "" {
		respondError(w, "notification_id is required", http.StatusBadRequest)
		return
	}

	if err := h.notificationService.MarkRead(ctx, notificationID, userID); err != nil {
		statusCode := statusForError(err)
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("notification_id", notificationID).
			Msg("Failed to mark notification read")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := h.notificationService.MarkAllRead(ctx, userID); err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to mark all notifications read")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
