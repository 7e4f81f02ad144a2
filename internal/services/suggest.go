package services

import (
	"context"
	"fmt"
	"strconv"

	"gravelmatch-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// FallbackSuggestion is returned whenever the text-generation collaborator
// fails; the endpoints degrade instead of erroring.
const FallbackSuggestion = "Suggerimenti non disponibili al momento."

const (
	routeSystemPrompt = "Sei un esperto di gravel cycling. Fornisci suggerimenti personalizzati per percorsi in base al profilo dell'utente. Rispondi in italiano con 3 suggerimenti brevi e pratici."
	tipsSystemPrompt  = "Sei un esperto di ciclismo e connessioni sociali. Suggerisci spunti di conversazione basati sui profili dei ciclisti. Rispondi in italiano, brevemente."
)

// SuggestionService produces AI-generated route suggestions and
// conversation tips from user profiles.
type SuggestionService struct {
	users     UserGetter
	generator Generator
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(users UserGetter, generator Generator) *SuggestionService {
	return &SuggestionService{
		users:     users,
		generator: generator,
	}
}

// RouteSuggestions generates route ideas tailored to the user's profile.
// Generator failures degrade to the fallback text.
func (s *SuggestionService) RouteSuggestions(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	level := models.LevelIntermediate
	if user.ExperienceLevel != nil {
		level = *user.ExperienceLevel
	}
	distance := 50
	if user.AvgDistance != nil {
		distance = *user.AvgDistance
	}
	zone := ""
	if user.PreferredZone != nil {
		zone = *user.PreferredZone
	}

	prompt := fmt.Sprintf(
		"Suggerisci 3 tipi di percorsi gravel per un ciclista con livello %s, che preferisce percorsi di circa %dkm nella zona %s. Includi difficoltà, terreno consigliato e consigli.",
		level, distance, zone,
	)

	text, err := s.generator.Generate(ctx, routeSystemPrompt, prompt)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Route suggestion generation failed")
		return FallbackSuggestion, nil
	}
	return text, nil
}

// MatchTips generates icebreaker tips for a pair of profiles. A missing
// target is an error; generator failures degrade to the fallback text.
func (s *SuggestionService) MatchTips(ctx context.Context, userID, targetUserID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		return "", fmt.Errorf("failed to get target user: %w", err)
	}

	prompt := fmt.Sprintf(
		"Utente 1: livello %s, distanza media %skm, zona %s. Utente 2: livello %s, distanza media %skm, zona %s. Suggerisci 2 spunti di conversazione per rompere il ghiaccio.",
		profileString(user.ExperienceLevel), distanceString(user.AvgDistance), profileString(user.PreferredZone),
		profileString(target.ExperienceLevel), distanceString(target.AvgDistance), profileString(target.PreferredZone),
	)

	text, err := s.generator.Generate(ctx, tipsSystemPrompt, prompt)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("target_user_id", targetUserID).Msg("Match tip generation failed")
		return FallbackSuggestion, nil
	}
	return text, nil
}

func profileString(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func distanceString(d *int) string {
	if d == nil {
		return "N/A"
	}
	return strconv.Itoa(*d)
}
