package repository

import (
	"context"
	"fmt"

	"gravelmatch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SwipeRepository handles database operations for the swipe ledger
type SwipeRepository struct {
	db *pgxpool.Pool
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// Append records a swipe. The ledger is insert-only; duplicates are
// allowed and rows are never deleted.
func (r *SwipeRepository) Append(ctx context.Context, swipe *models.Swipe) error {
	query := `
		INSERT INTO swipes (id, actor_id, target_id, action, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		swipe.ID, swipe.ActorID, swipe.TargetID, swipe.Action, swipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append swipe: %w", err)
	}
	return nil
}

// TargetIDs returns every target the actor has ever swiped on, likes and
// dislikes alike. May contain duplicates.
func (r *SwipeRepository) TargetIDs(ctx context.Context, actorID string) ([]string, error) {
	query := `SELECT target_id FROM swipes WHERE actor_id = $1`
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan swiped target: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate swiped targets: %w", err)
	}
	return ids, nil
}

// HasLike checks whether actor has a recorded like on target.
func (r *SwipeRepository) HasLike(ctx context.Context, actorID, targetID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE actor_id = $1 AND target_id = $2 AND action = $3
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, actorID, targetID, models.SwipeLike).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	return exists, nil
}
