package handlers

import (
	"encoding/json"
	"net/http"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles auth and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User registered")

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("email", req.Email).Msg("Failed to login user")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /api/auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get current user")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, upd)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Bool("profile_completed", user.ProfileCompleted).
		Msg("Profile updated")

	respondJSON(w, http.StatusOK, user)
}
