package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gravelmatch-backend/internal/middleware"
	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// RouteHandler handles gravel route HTTP requests
type RouteHandler struct {
	routeService *services.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
	}
}

// Create handles POST /api/routes
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	route, err := h.routeService.CreateRoute(ctx, userID, req)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to create route")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("route_id", route.ID).
		Msg("Route created")

	respondJSON(w, http.StatusOK, route)
}

// List handles GET /api/routes
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filters := services.RouteFilters{
		MinDistance: floatParam(r, "min_distance"),
		MaxDistance: floatParam(r, "max_distance"),
	}
	if v := r.URL.Query().Get("difficulty"); v != "" {
		filters.Difficulty = &v
	}
	if v := intParam(r, "limit"); v != nil {
		filters.Limit = *v
	}

	routes, err := h.routeService.ListRoutes(ctx, filters)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Msg("Failed to list routes")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	if routes == nil {
		routes = []models.Route{}
	}

	respondJSON(w, http.StatusOK, routes)
}

// Get handles GET /api/routes/{route_id}
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	routeID := chi.URLParam(r, "route_id")

	route, err := h.routeService.GetRoute(ctx, routeID)
	if err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("route_id", routeID).Msg("Failed to get route")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, route)
}

// ListMine handles GET /api/routes/user/me
func (h *RouteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	routes, err := h.routeService.ListUserRoutes(ctx, userID)
	if err != nil {
		statusCode := statusForError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list own routes")
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	if routes == nil {
		routes = []models.Route{}
	}

	respondJSON(w, http.StatusOK, routes)
}

// Like handles POST /api/routes/{route_id}/like
func (h *RouteHandler) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	routeID := chi.URLParam(r, "route_id")

	if err := h.routeService.LikeRoute(ctx, routeID); err != nil {
		statusCode := statusForError(err)
		if statusCode == http.StatusInternalServerError {
			log.Error().Err(err).Str("route_id", routeID).Msg("Failed to like route")
		}
		respondError(w, clientMessage(err, statusCode), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// floatParam parses an optional float query parameter. Unparseable values
// are treated as absent.
func floatParam(r *http.Request, name string) *float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
