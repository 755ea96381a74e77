package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMoodEntryRequest struct {
	MoodScore int     `json:"mood_score" validate:"required,min=1,max=5"`
	Notes     string  `json:"notes" validate:"omitempty,max=1000"`
	Location  *string `json:"location"`
}

type MoodEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	MoodScore int       `json:"mood_score"`
	Notes     string    `json:"notes,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type MoodListResponse struct {
	MoodEntries []MoodEntryResponse `json:"mood_entries"`
	Pagination  Pagination          `json:"pagination"`
}

type MoodHistoryStatistics struct {
	TotalEntries int     `json:"total_entries"`
	AverageMood  float64 `json:"average_mood"`
	Streak       int     `json:"streak"`
	Period       int     `json:"period"`
}

type DailyMoodAverage struct {
	Date        string  `json:"date"`
	AverageMood float64 `json:"average_mood"`
	EntryCount  int     `json:"entry_count"`
}

type MoodHistoryResponse struct {
	History       []MoodEntryResponse   `json:"history"`
	Statistics    MoodHistoryStatistics `json:"statistics"`
	DailyAverages []DailyMoodAverage    `json:"daily_averages"`
}

type ChatRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

type ChatMessageView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	SenderType string    `json:"sender_type"`
}

type ChatResponse struct {
	SessionID   uuid.UUID       `json:"session_id"`
	UserMessage ChatMessageView `json:"user_message"`
	BotMessage  ChatMessageView `json:"bot_message"`
}

type ChatSessionView struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Messages  []ChatMessageView `json:"messages"`
}

type ChatSessionsResponse struct {
	Sessions []ChatSessionView `json:"sessions"`
}
