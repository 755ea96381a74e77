package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contextWindow is how many recent session messages are loaded as candidate
// context; the prompt itself takes at most promptTurns of them.
const contextWindow = 20

type ChatService struct {
	db     *gorm.DB
	gemini *GeminiClient
	filter *ContentFilter
}

func NewChatService(db *gorm.DB, gemini *GeminiClient, filter *ContentFilter) *ChatService {
	return &ChatService{db: db, gemini: gemini, filter: filter}
}

// SendMessage stores the student's message in their most recent session
// (creating one if none exists), asks the assistant for a reply with the
// session's recent messages as context, and stores the reply. A model failure
// produces the fixed fallback reply, never an error.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if ok, reason := s.filter.Check(req.Text); !ok {
		return nil, &ContentRejectedError{Reason: reason, Message: s.filter.RejectionMessage(reason)}
	}

	session, history, err := s.activeSession(userID)
	if err != nil {
		return nil, err
	}

	userMsg := models.ChatMessage{
		SessionID:  session.ID,
		SenderType: models.SenderTypeUser,
		Text:       req.Text,
	}
	if err := s.db.Create(&userMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	turns := make([]ConversationTurn, 0, len(history)+1)
	for i := range history {
		turns = append(turns, ConversationTurn{Role: history[i].SenderType, Text: history[i].Text})
	}
	turns = append(turns, ConversationTurn{Role: models.SenderTypeUser, Text: req.Text})

	reply, err := s.gemini.GenerateReply(ctx, req.Text, turns)
	if err != nil {
		slog.Error("assistant reply failed, using fallback", "session_id", session.ID, "error", err)
		reply = FallbackReply
	}

	botMsg := models.ChatMessage{
		SessionID:  session.ID,
		SenderType: models.SenderTypeBot,
		Text:       reply,
	}
	if err := s.db.Create(&botMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	return &dto.ChatResponse{
		SessionID:   session.ID,
		UserMessage: chatMessageView(&userMsg),
		BotMessage:  chatMessageView(&botMsg),
	}, nil
}

// activeSession returns the user's newest session and its last messages in
// chronological order, creating the session on first contact.
func (s *ChatService) activeSession(userID uuid.UUID) (*models.ChatSession, []models.ChatMessage, error) {
	var session models.ChatSession
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.ChatSession{UserID: userID}
		if err := s.db.Create(&session).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create chat session: %w", err)
		}
		return &session, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load chat session: %w", err)
	}

	var recent []models.ChatMessage
	if err := s.db.Where("session_id = ?", session.ID).
		Order("timestamp DESC").
		Limit(contextWindow).
		Find(&recent).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	// Reverse into chronological order for the prompt.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return &session, recent, nil
}

// ListSessions returns one session by ID or the caller's last ten, each with
// its full message history oldest-first. Sessions are scoped to the caller;
// another user's session ID simply yields an empty list.
func (s *ChatService) ListSessions(userID uuid.UUID, sessionID *uuid.UUID) (*dto.ChatSessionsResponse, error) {
	query := s.db.Where("user_id = ?", userID)
	take := 10
	if sessionID != nil {
		query = query.Where("id = ?", *sessionID)
		take = 1
	}

	var sessions []models.ChatSession
	if err := query.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Order("created_at DESC").
		Limit(take).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	views := make([]dto.ChatSessionView, 0, len(sessions))
	for i := range sessions {
		messages := make([]dto.ChatMessageView, 0, len(sessions[i].Messages))
		for j := range sessions[i].Messages {
			messages = append(messages, chatMessageView(&sessions[i].Messages[j]))
		}
		views = append(views, dto.ChatSessionView{
			ID:        sessions[i].ID,
			CreatedAt: sessions[i].CreatedAt,
			Messages:  messages,
		})
	}

	return &dto.ChatSessionsResponse{Sessions: views}, nil
}

// ClearSessions deletes one session or the caller's whole chat history.
// Messages go with their session via the cascade constraint.
func (s *ChatService) ClearSessions(userID uuid.UUID, sessionID *uuid.UUID) error {
	query := s.db.Where("user_id = ?", userID)
	if sessionID != nil {
		query = query.Where("id = ?", *sessionID)
	}
	if err := query.Delete(&models.ChatSession{}).Error; err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

func chatMessageView(msg *models.ChatMessage) dto.ChatMessageView {
	return dto.ChatMessageView{
		ID:         msg.ID,
		Text:       msg.Text,
		Timestamp:  msg.Timestamp,
		SenderType: msg.SenderType,
	}
}
