package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gravelmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteRepository handles database operations for gravel routes
type RouteRepository struct {
	db *pgxpool.Pool
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `id, user_id, user_name, title, description, distance,
	elevation, difficulty, start_point, end_point, waypoints, image_url,
	tags, likes, created_at`

func scanRoute(row pgx.Row) (*models.Route, error) {
	var route models.Route
	var startPoint, endPoint, waypoints []byte
	err := row.Scan(
		&route.ID, &route.UserID, &route.UserName, &route.Title,
		&route.Description, &route.Distance, &route.Elevation,
		&route.Difficulty, &startPoint, &endPoint, &waypoints,
		&route.ImageURL, &route.Tags, &route.Likes, &route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("route: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan route: %w", err)
	}
	if err := json.Unmarshal(startPoint, &route.StartPoint); err != nil {
		return nil, fmt.Errorf("failed to decode start point: %w", err)
	}
	if endPoint != nil {
		if err := json.Unmarshal(endPoint, &route.EndPoint); err != nil {
			return nil, fmt.Errorf("failed to decode end point: %w", err)
		}
	}
	if err := json.Unmarshal(waypoints, &route.Waypoints); err != nil {
		return nil, fmt.Errorf("failed to decode waypoints: %w", err)
	}
	return &route, nil
}

// Create creates a new route
func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	startPoint, err := json.Marshal(route.StartPoint)
	if err != nil {
		return fmt.Errorf("failed to encode start point: %w", err)
	}
	var endPoint []byte
	if route.EndPoint != nil {
		endPoint, err = json.Marshal(route.EndPoint)
		if err != nil {
			return fmt.Errorf("failed to encode end point: %w", err)
		}
	}
	waypoints, err := json.Marshal(route.Waypoints)
	if err != nil {
		return fmt.Errorf("failed to encode waypoints: %w", err)
	}

	query := `
		INSERT INTO routes (id, user_id, user_name, title, description, distance,
			elevation, difficulty, start_point, end_point, waypoints, image_url,
			tags, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.Exec(ctx, query,
		route.ID, route.UserID, route.UserName, route.Title, route.Description,
		route.Distance, route.Elevation, route.Difficulty, startPoint, endPoint,
		waypoints, route.ImageURL, route.Tags, route.Likes, route.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// GetByID retrieves a route by ID
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`
	return scanRoute(r.db.QueryRow(ctx, query, id))
}

// RouteQuery gathers the route listing filters. Nil fields are ignored.
type RouteQuery struct {
	Difficulty  *string
	MinDistance *float64
	MaxDistance *float64
	Limit       int
}

// List retrieves routes matching the query, newest first.
func (r *RouteRepository) List(ctx context.Context, q RouteQuery) ([]models.Route, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Difficulty != nil {
		where = append(where, fmt.Sprintf("difficulty = %s", arg(*q.Difficulty)))
	}
	if q.MinDistance != nil {
		where = append(where, fmt.Sprintf("distance >= %s", arg(*q.MinDistance)))
	}
	if q.MaxDistance != nil {
		where = append(where, fmt.Sprintf("distance <= %s", arg(*q.MaxDistance)))
	}

	query := fmt.Sprintf("SELECT %s FROM routes WHERE %s ORDER BY created_at DESC LIMIT %s",
		routeColumns, strings.Join(where, " AND "), arg(q.Limit))

	return r.queryRoutes(ctx, query, args...)
}

// ListByUser retrieves all routes posted by a user, newest first.
func (r *RouteRepository) ListByUser(ctx context.Context, userID string) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRoutes(ctx, query, userID)
}

// IncrementLikes bumps the like counter of a route
func (r *RouteRepository) IncrementLikes(ctx context.Context, id string) error {
	query := `UPDATE routes SET likes = likes + 1 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment route likes: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("route: %w", models.ErrNotFound)
	}
	return nil
}

func (r *RouteRepository) queryRoutes(ctx context.Context, query string, args ...any) ([]models.Route, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}
	return routes, nil
}
