package services

import (
	"context"
	"fmt"
	"time"

	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultRouteLimit = 20
	maxRouteLimit     = 100
)

// RouteStore is the route store surface the route service needs.
type RouteStore interface {
	Create(ctx context.Context, route *models.Route) error
	GetByID(ctx context.Context, id string) (*models.Route, error)
	List(ctx context.Context, q repository.RouteQuery) ([]models.Route, error)
	ListByUser(ctx context.Context, userID string) ([]models.Route, error)
	IncrementLikes(ctx context.Context, id string) error
}

// RouteService handles the gravel route catalog
type RouteService struct {
	routes RouteStore
	users  UserGetter
}

// NewRouteService creates a new route service
func NewRouteService(routes RouteStore, users UserGetter) *RouteService {
	return &RouteService{
		routes: routes,
		users:  users,
	}
}

// CreateRouteRequest carries the fields of a new route.
type CreateRouteRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Distance    float64        `json:"distance"`
	Elevation   *int           `json:"elevation"`
	Difficulty  string         `json:"difficulty"`
	StartPoint  *models.Point  `json:"start_point"`
	EndPoint    *models.Point  `json:"end_point"`
	Waypoints   []models.Point `json:"waypoints"`
	ImageURL    *string        `json:"image_url"`
	Tags        []string       `json:"tags"`
}

// CreateRoute creates a route owned by userID, snapshotting the owner's
// display name.
func (s *RouteService) CreateRoute(ctx context.Context, userID string, req CreateRouteRequest) (*models.Route, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title: %w", models.ErrInvalidInput)
	}
	if req.Distance <= 0 {
		return nil, fmt.Errorf("distance: %w", models.ErrInvalidInput)
	}
	switch req.Difficulty {
	case "easy", "moderate", "hard", "extreme":
	default:
		return nil, fmt.Errorf("difficulty %q: %w", req.Difficulty, models.ErrInvalidInput)
	}
	if req.StartPoint == nil {
		return nil, fmt.Errorf("start_point: %w", models.ErrInvalidInput)
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	waypoints := req.Waypoints
	if waypoints == nil {
		waypoints = []models.Point{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	route := &models.Route{
		ID:          uuid.New().String(),
		UserID:      owner.ID,
		UserName:    owner.Name,
		Title:       req.Title,
		Description: req.Description,
		Distance:    req.Distance,
		Elevation:   req.Elevation,
		Difficulty:  req.Difficulty,
		StartPoint:  *req.StartPoint,
		EndPoint:    req.EndPoint,
		Waypoints:   waypoints,
		ImageURL:    req.ImageURL,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

// RouteFilters are the optional route listing filters.
type RouteFilters struct {
	Difficulty  *string
	MinDistance *float64
	MaxDistance *float64
	Limit       int
}

// ListRoutes returns routes matching the filters, newest first.
func (s *RouteService) ListRoutes(ctx context.Context, filters RouteFilters) ([]models.Route, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultRouteLimit
	}
	if limit > maxRouteLimit {
		limit = maxRouteLimit
	}
	return s.routes.List(ctx, repository.RouteQuery{
		Difficulty:  filters.Difficulty,
		MinDistance: filters.MinDistance,
		MaxDistance: filters.MaxDistance,
		Limit:       limit,
	})
}

// GetRoute retrieves a route by ID
func (s *RouteService) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// ListUserRoutes returns all routes posted by a user
func (s *RouteService) ListUserRoutes(ctx context.Context, userID string) ([]models.Route, error) {
	return s.routes.ListByUser(ctx, userID)
}

// LikeRoute bumps the like counter of a route
func (s *RouteService) LikeRoute(ctx context.Context, id string) error {
	return s.routes.IncrementLikes(ctx, id)
}
