package services

import (
	"context"
	"fmt"

	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/repository"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	defaultDiscoverLimit = 20
	maxDiscoverLimit     = 100
)

// levelCompatibility is the default one-directional experience table
// applied when the caller supplies no explicit level filter. It is not
// symmetric: a beginner is not shown experts, but an intermediate is.
var levelCompatibility = map[string][]string{
	models.LevelBeginner:     {models.LevelBeginner, models.LevelIntermediate},
	models.LevelIntermediate: {models.LevelBeginner, models.LevelIntermediate, models.LevelExpert},
	models.LevelExpert:       {models.LevelIntermediate, models.LevelExpert},
}

// CandidateSearcher is the user-store surface discovery needs.
type CandidateSearcher interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Search(ctx context.Context, q repository.SearchQuery) ([]models.User, error)
}

// SwipedTargets lists the targets an actor has already swiped on.
type SwipedTargets interface {
	TargetIDs(ctx context.Context, actorID string) ([]string, error)
}

// DiscoveryService computes the candidate set shown to a user for swiping
type DiscoveryService struct {
	users  CandidateSearcher
	swipes SwipedTargets
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(users CandidateSearcher, swipes SwipedTargets) *DiscoveryService {
	return &DiscoveryService{
		users:  users,
		swipes: swipes,
	}
}

// DiscoverFilters are the optional attribute filters. Nil fields are
// ignored; numeric bounds are inclusive on both ends.
type DiscoverFilters struct {
	MinAge          *int
	MaxAge          *int
	MinDistance     *int
	MaxDistance     *int
	ExperienceLevel *string
	Zone            *string
	Limit           int
}

// Discover returns up to Limit candidates for the actor. Candidates must
// have a completed profile and must not include the actor or anyone the
// actor has ever swiped on, dislikes included. Read-only; an empty result
// is not an error.
func (s *DiscoveryService) Discover(ctx context.Context, actorID string, filters DiscoverFilters) ([]models.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	swiped, err := s.swipes.TargetIDs(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiped targets: %w", err)
	}

	// The ledger keeps duplicate rows; collapse them before querying.
	exclude := mapset.NewThreadUnsafeSet(swiped...)
	exclude.Add(actorID)

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}
	if limit > maxDiscoverLimit {
		limit = maxDiscoverLimit
	}

	var levels []string
	if filters.ExperienceLevel != nil {
		levels = []string{*filters.ExperienceLevel}
	} else if actor.ExperienceLevel != nil {
		levels = levelCompatibility[*actor.ExperienceLevel]
	}

	candidates, err := s.users.Search(ctx, repository.SearchQuery{
		ExcludeIDs:       exclude.ToSlice(),
		MinAge:           filters.MinAge,
		MaxAge:           filters.MaxAge,
		MinDistance:      filters.MinDistance,
		MaxDistance:      filters.MaxDistance,
		ExperienceLevels: levels,
		Zone:             filters.Zone,
		Limit:            limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	return candidates, nil
}
