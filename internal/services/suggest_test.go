package services

import (
	"context"
	"errors"
	"testing"

	"gravelmatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	lastSystem string
	lastUser   string
	text       string
	err        error
}

func (g *stubGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	g.lastSystem = systemPrompt
	g.lastUser = userPrompt
	return g.text, g.err
}

func TestRouteSuggestions(t *testing.T) {
	userStore := newFakeUserStore()
	anna := completedUser("a", "Anna", models.LevelExpert, 80, "Toscana", 31)
	require.NoError(t, userStore.Create(context.Background(), &anna))

	gen := &stubGenerator{text: "1. Strade bianche..."}
	svc := NewSuggestionService(userStore, gen)

	text, err := svc.RouteSuggestions(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "1. Strade bianche...", text)
	assert.Contains(t, gen.lastUser, "expert")
	assert.Contains(t, gen.lastUser, "80km")
	assert.Contains(t, gen.lastUser, "Toscana")
}

func TestRouteSuggestions_FallbackOnFailure(t *testing.T) {
	userStore := newFakeUserStore()
	anna := completedUser("a", "Anna", models.LevelExpert, 80, "Toscana", 31)
	require.NoError(t, userStore.Create(context.Background(), &anna))

	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := NewSuggestionService(userStore, gen)

	text, err := svc.RouteSuggestions(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, FallbackSuggestion, text)
}

func TestRouteSuggestions_ProfileDefaults(t *testing.T) {
	userStore := newFakeUserStore()
	bare := models.User{ID: "a", Name: "Anna"}
	require.NoError(t, userStore.Create(context.Background(), &bare))

	gen := &stubGenerator{text: "ok"}
	svc := NewSuggestionService(userStore, gen)

	_, err := svc.RouteSuggestions(context.Background(), "a")
	require.NoError(t, err)
	assert.Contains(t, gen.lastUser, "intermediate")
	assert.Contains(t, gen.lastUser, "50km")
}

func TestMatchTips(t *testing.T) {
	userStore := newFakeUserStore()
	anna := completedUser("a", "Anna", models.LevelExpert, 80, "Toscana", 31)
	bruno := completedUser("b", "Bruno", models.LevelBeginner, 30, "Lombardia", 26)
	require.NoError(t, userStore.Create(context.Background(), &anna))
	require.NoError(t, userStore.Create(context.Background(), &bruno))

	gen := &stubGenerator{text: "Parlate di strade bianche."}
	svc := NewSuggestionService(userStore, gen)

	text, err := svc.MatchTips(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Parlate di strade bianche.", text)
	assert.Contains(t, gen.lastUser, "expert")
	assert.Contains(t, gen.lastUser, "beginner")
	assert.Contains(t, gen.lastUser, "Lombardia")
}

func TestMatchTips_UnknownTarget(t *testing.T) {
	userStore := newFakeUserStore()
	anna := completedUser("a", "Anna", models.LevelExpert, 80, "Toscana", 31)
	require.NoError(t, userStore.Create(context.Background(), &anna))

	svc := NewSuggestionService(userStore, &stubGenerator{text: "ok"})

	_, err := svc.MatchTips(context.Background(), "a", "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
