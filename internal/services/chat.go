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

const previewLimit = 50

// MatchGetter resolves match records by id.
type MatchGetter interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
}

// MessageStore is the message store surface the chat service needs.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByMatch(ctx context.Context, matchID string) ([]models.Message, error)
	LastByMatch(ctx context.Context, matchID string) (*models.Message, error)
}

// ChatService handles the conversation scoped to a match
type ChatService struct {
	matches       MatchGetter
	messages      MessageStore
	users         UserGetter
	notifications NotificationAppender
}

// NewChatService creates a new chat service
func NewChatService(matches MatchGetter, messages MessageStore, users UserGetter, notifications NotificationAppender) *ChatService {
	return &ChatService{
		matches:       matches,
		messages:      messages,
		users:         users,
		notifications: notifications,
	}
}

// ChatMessage is a message annotated relative to the requester.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	IsMine    bool      `json:"is_mine"`
	CreatedAt time.Time `json:"created_at"`
}

// memberOf loads the match and checks the requester's membership. A
// missing match and a foreign match both come back as ErrNotAuthorized so
// nothing is leaked about whether the match exists.
func (s *ChatService) memberOf(ctx context.Context, matchID, userID string) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotAuthorized
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !match.HasMember(userID) {
		return nil, models.ErrNotAuthorized
	}
	return match, nil
}

// ListMessages returns the conversation oldest first, each message
// annotated with is_mine relative to the requester.
func (s *ChatService) ListMessages(ctx context.Context, matchID, requesterID string) ([]ChatMessage, error) {
	if _, err := s.memberOf(ctx, matchID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	result := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, ChatMessage{
			ID:        msg.ID,
			Content:   msg.Content,
			SenderID:  msg.SenderID,
			IsMine:    msg.SenderID == requesterID,
			CreatedAt: msg.CreatedAt,
		})
	}
	return result, nil
}

// SendMessage appends a message to the match conversation and emits one
// message notification to the other member.
func (s *ChatService) SendMessage(ctx context.Context, matchID, senderID, content string) (*ChatMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("content: %w", models.ErrInvalidInput)
	}

	match, err := s.memberOf(ctx, matchID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:        uuid.New().String(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.notifyMessage(ctx, match, msg)

	return &ChatMessage{
		ID:        msg.ID,
		Content:   msg.Content,
		SenderID:  msg.SenderID,
		IsMine:    true,
		CreatedAt: msg.CreatedAt,
	}, nil
}

// notifyMessage notifies the non-sender member. The message is already
// durable, so failures are logged rather than surfaced.
func (s *ChatService) notifyMessage(ctx context.Context, match *models.Match, msg *models.Message) {
	title := "Nuovo messaggio"
	if sender, err := s.users.GetByID(ctx, msg.SenderID); err == nil {
		title = fmt.Sprintf("Messaggio da %s", sender.Name)
	}

	n := &models.Notification{
		ID:          uuid.New().String(),
		RecipientID: match.OtherMember(msg.SenderID),
		Type:        models.NotificationMessage,
		Title:       title,
		Body:        previewBody(msg.Content),
		Data: map[string]string{
			"match_id": match.ID,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Error().
			Err(err).
			Str("match_id", match.ID).
			Str("recipient_id", n.RecipientID).
			Msg("Failed to create message notification")
	}
}

// previewBody truncates content to 50 characters plus an ellipsis for the
// notification body. Counted in runes, not bytes.
func previewBody(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
