package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gravelmatch-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SwipeLedger is the append-only swipe store surface the match engine needs.
type SwipeLedger interface {
	Append(ctx context.Context, swipe *models.Swipe) error
	HasLike(ctx context.Context, actorID, targetID string) (bool, error)
}

// MatchStore is the match store surface the match engine needs. Create
// must return models.ErrAlreadyMatched on a duplicate normalized pair.
type MatchStore interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	GetByPair(ctx context.Context, userAID, userBID string) (*models.Match, error)
	ListByUser(ctx context.Context, userID string) ([]models.Match, error)
}

// UserGetter resolves user records by id.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// NotificationAppender appends to a recipient's notification queue.
type NotificationAppender interface {
	Create(ctx context.Context, n *models.Notification) error
}

// LastMessageGetter returns the newest message of a match, or
// models.ErrNotFound when the conversation is empty.
type LastMessageGetter interface {
	LastByMatch(ctx context.Context, matchID string) (*models.Message, error)
}

// MatchService is the matching engine: it records swipes, detects mutual
// likes, creates matches and emits the resulting notifications.
type MatchService struct {
	swipes        SwipeLedger
	matches       MatchStore
	users         UserGetter
	messages      LastMessageGetter
	notifications NotificationAppender
}

// NewMatchService creates a new match service
func NewMatchService(swipes SwipeLedger, matches MatchStore, users UserGetter, messages LastMessageGetter, notifications NotificationAppender) *MatchService {
	return &MatchService{
		swipes:        swipes,
		matches:       matches,
		users:         users,
		messages:      messages,
		notifications: notifications,
	}
}

// SwipeResult is the outcome of recording a swipe.
type SwipeResult struct {
	Matched bool
	MatchID string
}

// NormalizePair orders two user ids so the smaller one comes first. Every
// match row stores the pair in this form, which is what lets the unique
// index catch concurrent opposite-order likes.
func NormalizePair(userAID, userBID string) (string, string) {
	if userAID > userBID {
		return userBID, userAID
	}
	return userAID, userBID
}

// RecordSwipe appends the swipe to the ledger and, on a like, checks for
// a reciprocal like. A mutual like creates exactly one match for the
// unordered pair and emits one match notification per member. Swipes are
// never deduplicated: re-liking or re-disliking appends another row.
func (s *MatchService) RecordSwipe(ctx context.Context, actorID, targetID, action string) (*SwipeResult, error) {
	if action != models.SwipeLike && action != models.SwipeDislike {
		return nil, fmt.Errorf("action %q: %w", action, models.ErrInvalidInput)
	}
	if targetID == actorID {
		return nil, fmt.Errorf("cannot swipe on yourself: %w", models.ErrInvalidInput)
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}

	swipe := &models.Swipe{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.swipes.Append(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if action == models.SwipeDislike {
		return &SwipeResult{}, nil
	}

	reciprocal, err := s.swipes.HasLike(ctx, targetID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	if !reciprocal {
		return &SwipeResult{}, nil
	}

	userAID, userBID := NormalizePair(actorID, targetID)
	match := &models.Match{
		ID:        uuid.New().String(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.matches.Create(ctx, match); err != nil {
		if errors.Is(err, models.ErrAlreadyMatched) {
			// A concurrent like from the other side won the insert. The
			// pair is matched either way; report the existing match and
			// leave notifications to whoever created it.
			existing, err := s.matches.GetByPair(ctx, userAID, userBID)
			if err != nil {
				return nil, fmt.Errorf("failed to load existing match: %w", err)
			}
			return &SwipeResult{Matched: true, MatchID: existing.ID}, nil
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.notifyMatched(ctx, match, actor, target)

	return &SwipeResult{Matched: true, MatchID: match.ID}, nil
}

// notifyMatched emits one match notification per member, each naming the
// other member. The match is already durable at this point, so failures
// are logged rather than surfaced.
func (s *MatchService) notifyMatched(ctx context.Context, match *models.Match, actor, target *models.User) {
	pairs := []struct {
		recipient *models.User
		other     *models.User
	}{
		{recipient: actor, other: target},
		{recipient: target, other: actor},
	}
	for _, p := range pairs {
		n := &models.Notification{
			ID:          uuid.New().String(),
			RecipientID: p.recipient.ID,
			Type:        models.NotificationMatch,
			Title:       "Nuovo match!",
			Body:        fmt.Sprintf("Hai fatto match con %s!", p.other.Name),
			Data: map[string]string{
				"match_id": match.ID,
				"user_id":  p.other.ID,
			},
			CreatedAt: time.Now().UTC(),
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			log.Error().
				Err(err).
				Str("match_id", match.ID).
				Str("recipient_id", p.recipient.ID).
				Msg("Failed to create match notification")
		}
	}
}

// MessagePreview is the last-message summary shown in the match list.
type MessagePreview struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchSummary is one entry of a user's match list.
type MatchSummary struct {
	ID          string          `json:"id"`
	User        *models.User    `json:"user"`
	LastMessage *MessagePreview `json:"last_message"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListMatches returns the user's matches with the other party and a
// preview of the most recent message.
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]MatchSummary, error) {
	matches, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, match := range matches {
		summary := MatchSummary{
			ID:        match.ID,
			CreatedAt: match.CreatedAt,
		}

		other, err := s.users.GetByID(ctx, match.OtherMember(userID))
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to get match member: %w", err)
		}
		summary.User = other

		last, err := s.messages.LastByMatch(ctx, match.ID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to get last message: %w", err)
		}
		if last != nil {
			summary.LastMessage = &MessagePreview{
				Content:   last.Content,
				SenderID:  last.SenderID,
				CreatedAt: last.CreatedAt,
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}
