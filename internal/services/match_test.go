package services

import (
	"context"
	"errors"
	"testing"

	"gravelmatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchFixture(t *testing.T, users ...models.User) (*MatchService, *fakeSwipeLedger, *fakeMatchStore, *fakeNotificationStore) {
	t.Helper()
	userStore := newFakeUserStore()
	for _, u := range users {
		require.NoError(t, userStore.Create(context.Background(), &u))
	}
	swipes := &fakeSwipeLedger{}
	matches := &fakeMatchStore{}
	messages := &fakeMessageStore{}
	notifications := &fakeNotificationStore{}
	svc := NewMatchService(swipes, matches, userStore, messages, notifications)
	return svc, swipes, matches, notifications
}

func TestRecordSwipe_OneSidedLike(t *testing.T) {
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	svc, _, matches, notifications := newMatchFixture(t, anna, bruno)

	result, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeLike)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.MatchID)
	assert.Empty(t, matches.matches)
	assert.Empty(t, notifications.notifications)
}

func TestRecordSwipe_MutualLikeCreatesMatch(t *testing.T) {
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	svc, _, matches, notifications := newMatchFixture(t, anna, bruno)

	first, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeLike)
	require.NoError(t, err)
	assert.False(t, first.Matched)

	second, err := svc.RecordSwipe(context.Background(), "b", "a", models.SwipeLike)
	require.NoError(t, err)
	assert.True(t, second.Matched)
	assert.NotEmpty(t, second.MatchID)

	require.Len(t, matches.matches, 1)
	match := matches.matches[0]
	assert.Equal(t, second.MatchID, match.ID)
	assert.Equal(t, "a", match.UserAID)
	assert.Equal(t, "b", match.UserBID)

	annaN := notifications.byRecipient("a")
	require.Len(t, annaN, 1)
	assert.Equal(t, models.NotificationMatch, annaN[0].Type)
	assert.Contains(t, annaN[0].Body, "Bruno")
	assert.Equal(t, match.ID, annaN[0].Data["match_id"])

	brunoN := notifications.byRecipient("b")
	require.Len(t, brunoN, 1)
	assert.Equal(t, models.NotificationMatch, brunoN[0].Type)
	assert.Contains(t, brunoN[0].Body, "Anna")
}

func TestRecordSwipe_MutualLikeEitherOrder(t *testing.T) {
	for _, order := range []struct {
		name          string
		first, second [2]string
	}{
		{name: "a then b", first: [2]string{"a", "b"}, second: [2]string{"b", "a"}},
		{name: "b then a", first: [2]string{"b", "a"}, second: [2]string{"a", "b"}},
	} {
		t.Run(order.name, func(t *testing.T) {
			anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
			bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
			svc, _, matches, _ := newMatchFixture(t, anna, bruno)

			_, err := svc.RecordSwipe(context.Background(), order.first[0], order.first[1], models.SwipeLike)
			require.NoError(t, err)
			result, err := svc.RecordSwipe(context.Background(), order.second[0], order.second[1], models.SwipeLike)
			require.NoError(t, err)

			assert.True(t, result.Matched)
			require.Len(t, matches.matches, 1)
			assert.Equal(t, "a", matches.matches[0].UserAID)
			assert.Equal(t, "b", matches.matches[0].UserBID)
		})
	}
}

func TestRecordSwipe_DuplicateInsertRecovered(t *testing.T) {
	// Simulates the loser of two concurrent opposite-order likes: the
	// reciprocal like and the match row already exist when the swipe is
	// processed.
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	svc, swipes, matches, notifications := newMatchFixture(t, anna, bruno)

	require.NoError(t, swipes.Append(context.Background(), &models.Swipe{
		ID: "s1", ActorID: "b", TargetID: "a", Action: models.SwipeLike,
	}))
	require.NoError(t, matches.Create(context.Background(), &models.Match{
		ID: "m1", UserAID: "a", UserBID: "b",
	}))

	result, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeLike)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "m1", result.MatchID)
	// Still exactly one match and no duplicate notifications.
	assert.Len(t, matches.matches, 1)
	assert.Empty(t, notifications.notifications)
}

func TestRecordSwipe_DislikeIsTerminal(t *testing.T) {
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	svc, swipes, matches, _ := newMatchFixture(t, anna, bruno)

	_, err := svc.RecordSwipe(context.Background(), "b", "a", models.SwipeLike)
	require.NoError(t, err)

	result, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeDislike)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, matches.matches)
	assert.Len(t, swipes.swipes, 2)
}

func TestRecordSwipe_LikeAfterDislikeStillMatches(t *testing.T) {
	// The ledger is permissive: an earlier dislike is not retracted, but
	// it does not block a later like from matching either.
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	svc, swipes, matches, _ := newMatchFixture(t, anna, bruno)

	_, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeDislike)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(context.Background(), "b", "a", models.SwipeLike)
	require.NoError(t, err)

	result, err := svc.RecordSwipe(context.Background(), "a", "b", models.SwipeLike)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Len(t, matches.matches, 1)
	// All three swipes remain in the ledger.
	assert.Len(t, swipes.swipes, 3)
}

func TestRecordSwipe_Validation(t *testing.T) {
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)

	tests := []struct {
		name    string
		actor   string
		target  string
		action  string
		wantErr error
	}{
		{name: "unknown action", actor: "a", target: "b", action: "superlike", wantErr: models.ErrInvalidInput},
		{name: "self swipe", actor: "a", target: "a", action: models.SwipeLike, wantErr: models.ErrInvalidInput},
		{name: "missing target", actor: "a", target: "ghost", action: models.SwipeLike, wantErr: models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, swipes, _, _ := newMatchFixture(t, anna, bruno)
			_, err := svc.RecordSwipe(context.Background(), tt.actor, tt.target, tt.action)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Empty(t, swipes.swipes)
		})
	}
}

func TestListMatches(t *testing.T) {
	anna := completedUser("a", "Anna", models.LevelIntermediate, 60, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelIntermediate, 55, "Toscana", 34)
	userStore := newFakeUserStore()
	require.NoError(t, userStore.Create(context.Background(), &anna))
	require.NoError(t, userStore.Create(context.Background(), &bruno))

	matches := &fakeMatchStore{}
	messages := &fakeMessageStore{}
	require.NoError(t, matches.Create(context.Background(), &models.Match{ID: "m1", UserAID: "a", UserBID: "b"}))
	svc := NewMatchService(&fakeSwipeLedger{}, matches, userStore, messages, &fakeNotificationStore{})

	// Without messages the preview is absent.
	summaries, err := svc.ListMatches(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "m1", summaries[0].ID)
	require.NotNil(t, summaries[0].User)
	assert.Equal(t, "Bruno", summaries[0].User.Name)
	assert.Nil(t, summaries[0].LastMessage)

	require.NoError(t, messages.Create(context.Background(), &models.Message{
		ID: "msg1", MatchID: "m1", SenderID: "b", Content: "Ciao!",
	}))
	require.NoError(t, messages.Create(context.Background(), &models.Message{
		ID: "msg2", MatchID: "m1", SenderID: "a", Content: "Pronti per sabato?",
	}))

	summaries, err = svc.ListMatches(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Anna", summaries[0].User.Name)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "Pronti per sabato?", summaries[0].LastMessage.Content)
	assert.Equal(t, "a", summaries[0].LastMessage.SenderID)
}

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair("zeta", "alfa")
	assert.Equal(t, "alfa", a)
	assert.Equal(t, "zeta", b)

	a, b = NormalizePair("alfa", "zeta")
	assert.Equal(t, "alfa", a)
	assert.Equal(t, "zeta", b)
}
