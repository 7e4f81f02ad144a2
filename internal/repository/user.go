package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gravelmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, bio, profile_picture,
	experience_level, avg_distance, preferred_zone, location, age,
	profile_completed, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Bio,
		&user.ProfilePicture, &user.ExperienceLevel, &user.AvgDistance,
		&user.PreferredZone, &user.Location, &user.Age,
		&user.ProfileCompleted, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, profile_completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		user.ProfileCompleted, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile applies the supplied profile fields and the recomputed
// profile_completed flag in a single UPDATE. Nil fields are not touched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate, completed bool) error {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.ProfilePicture != nil {
		add("profile_picture", *upd.ProfilePicture)
	}
	if upd.ExperienceLevel != nil {
		add("experience_level", *upd.ExperienceLevel)
	}
	if upd.AvgDistance != nil {
		add("avg_distance", *upd.AvgDistance)
	}
	if upd.PreferredZone != nil {
		add("preferred_zone", *upd.PreferredZone)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Age != nil {
		add("age", *upd.Age)
	}
	add("profile_completed", completed)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user: %w", models.ErrNotFound)
	}
	return nil
}

// SearchQuery gathers the discovery filters applied on top of the
// exclusion set. Nil fields are ignored; numeric bounds are inclusive.
type SearchQuery struct {
	ExcludeIDs       []string
	MinAge           *int
	MaxAge           *int
	MinDistance      *int
	MaxDistance      *int
	ExperienceLevels []string
	Zone             *string
	Limit            int
}

// Search returns completed profiles matching the query, excluding the
// given ids.
func (r *UserRepository) Search(ctx context.Context, q SearchQuery) ([]models.User, error) {
	where := []string{"profile_completed = TRUE"}
	args := []any{}
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(q.ExcludeIDs) > 0 {
		where = append(where, fmt.Sprintf("NOT (id = ANY(%s))", arg(q.ExcludeIDs)))
	}
	if q.MinAge != nil {
		where = append(where, fmt.Sprintf("age >= %s", arg(*q.MinAge)))
	}
	if q.MaxAge != nil {
		where = append(where, fmt.Sprintf("age <= %s", arg(*q.MaxAge)))
	}
	if q.MinDistance != nil {
		where = append(where, fmt.Sprintf("avg_distance >= %s", arg(*q.MinDistance)))
	}
	if q.MaxDistance != nil {
		where = append(where, fmt.Sprintf("avg_distance <= %s", arg(*q.MaxDistance)))
	}
	if len(q.ExperienceLevels) > 0 {
		where = append(where, fmt.Sprintf("experience_level = ANY(%s)", arg(q.ExperienceLevels)))
	}
	if q.Zone != nil {
		where = append(where, fmt.Sprintf("preferred_zone = %s", arg(*q.Zone)))
	}

	query := fmt.Sprintf("SELECT %s FROM users WHERE %s LIMIT %s",
		userColumns, strings.Join(where, " AND "), arg(q.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
