package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"gravelmatch-backend/internal/models"
	"gravelmatch-backend/internal/repository"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	return &user, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user: %w", models.ErrNotFound)
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user: %w", models.ErrNotFound)
	}
	user = upd.ApplyTo(user)
	user.ProfileCompleted = completed
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) Search(_ context.Context, q repository.SearchQuery) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.User
	for _, user := range s.users {
		if !user.ProfileCompleted {
			continue
		}
		if slices.Contains(q.ExcludeIDs, user.ID) {
			continue
		}
		if q.MinAge != nil && (user.Age == nil || *user.Age < *q.MinAge) {
			continue
		}
		if q.MaxAge != nil && (user.Age == nil || *user.Age > *q.MaxAge) {
			continue
		}
		if q.MinDistance != nil && (user.AvgDistance == nil || *user.AvgDistance < *q.MinDistance) {
			continue
		}
		if q.MaxDistance != nil && (user.AvgDistance == nil || *user.AvgDistance > *q.MaxDistance) {
			continue
		}
		if len(q.ExperienceLevels) > 0 {
			if user.ExperienceLevel == nil || !slices.Contains(q.ExperienceLevels, *user.ExperienceLevel) {
				continue
			}
		}
		if q.Zone != nil && (user.PreferredZone == nil || *user.PreferredZone != *q.Zone) {
			continue
		}
		if len(result) == q.Limit {
			break
		}
		result = append(result, user)
	}
	return result, nil
}

type fakeSwipeLedger struct {
	mu     sync.Mutex
	swipes []models.Swipe
}

func (s *fakeSwipeLedger) Append(_ context.Context, swipe *models.Swipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swipes = append(s.swipes, *swipe)
	return nil
}

func (s *fakeSwipeLedger) TargetIDs(_ context.Context, actorID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, swipe := range s.swipes {
		if swipe.ActorID == actorID {
			ids = append(ids, swipe.TargetID)
		}
	}
	return ids, nil
}

func (s *fakeSwipeLedger) HasLike(_ context.Context, actorID, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, swipe := range s.swipes {
		if swipe.ActorID == actorID && swipe.TargetID == targetID && swipe.Action == models.SwipeLike {
			return true, nil
		}
	}
	return false, nil
}

type fakeMatchStore struct {
	mu      sync.Mutex
	matches []models.Match
}

func (s *fakeMatchStore) Create(_ context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.matches {
		if existing.UserAID == match.UserAID && existing.UserBID == match.UserBID {
			return fmt.Errorf("match for pair (%s, %s): %w",
				match.UserAID, match.UserBID, models.ErrAlreadyMatched)
		}
	}
	s.matches = append(s.matches, *match)
	return nil
}

func (s *fakeMatchStore) GetByID(_ context.Context, id string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.ID == id {
			m := match
			return &m, nil
		}
	}
	return nil, fmt.Errorf("match: %w", models.ErrNotFound)
}

func (s *fakeMatchStore) GetByPair(_ context.Context, userAID, userBID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.UserAID == userAID && match.UserBID == userBID {
			m := match
			return &m, nil
		}
	}
	return nil, fmt.Errorf("match: %w", models.ErrNotFound)
}

func (s *fakeMatchStore) ListByUser(_ context.Context, userID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Match
	for _, match := range s.matches {
		if match.HasMember(userID) {
			result = append(result, match)
		}
	}
	return result, nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func (s *fakeMessageStore) Create(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *fakeMessageStore) ListByMatch(_ context.Context, matchID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Message
	for _, msg := range s.messages {
		if msg.MatchID == matchID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (s *fakeMessageStore) LastByMatch(_ context.Context, matchID string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].MatchID == matchID {
			m := s.messages[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message: %w", models.ErrNotFound)
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		if len(result) == limit {
			break
		}
		result = append(result, n)
	}
	return result, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, recipientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id && n.RecipientID == recipientID {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.RecipientID == recipientID {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) byRecipient(recipientID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result
}

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }

// completedUser builds a user with a completed profile.
func completedUser(id, name, level string, distance int, zone string, age int) models.User {
	return models.User{
		ID:               id,
		Email:            id + "@example.com",
		Name:             name,
		ExperienceLevel:  strptr(level),
		AvgDistance:      intptr(distance),
		PreferredZone:    strptr(zone),
		Age:              intptr(age),
		ProfileCompleted: true,
	}
}
