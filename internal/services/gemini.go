package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/config"
)

// FallbackReply is returned whenever the model call fails; the chatbot
// degrades gracefully instead of surfacing an error to a student in distress.
const FallbackReply = "I apologize, but I'm having trouble responding right now. Please try again in a moment, or consider reaching out to a counselor or trusted friend if you need immediate support."

const assistantSystemPrompt = `You are a compassionate and supportive AI mental health assistant designed to help students manage their wellbeing. Your role is to:

1. Provide emotional support and encouragement
2. Suggest healthy coping strategies and stress management techniques
3. Offer mindfulness exercises and breathing techniques
4. Help users identify triggers and patterns in their mood
5. Provide information about mental health resources
6. Encourage seeking professional help when appropriate

Guidelines:
- Always be empathetic, non-judgmental, and supportive
- Keep responses conversational and accessible to students
- Don't diagnose medical conditions or replace professional therapy
- If someone mentions self-harm or suicidal thoughts, encourage them to seek immediate professional help
- Focus on practical, evidence-based wellness strategies
- Keep responses concise but helpful (aim for 2-3 paragraphs max)

Remember: You're here to support, not replace professional mental health services.`

// ConversationTurn is one prior message passed as model context.
type ConversationTurn struct {
	Role string
	Text string
}

// promptTurns caps how much history goes into the prompt; older turns are
// dropped even when the caller supplies more.
const promptTurns = 10

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	cfg    *config.Config
	client *http.Client
}

func NewGeminiClient(cfg *config.Config) *GeminiClient {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateReply builds a single prompt from the system instructions, the
// last turns of the conversation, and the new message, then asks the model
// for the assistant's reply.
func (g *GeminiClient) GenerateReply(ctx context.Context, message string, history []ConversationTurn) (string, error) {
	if g.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(message, history)}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.cfg.GeminiAPIURL, g.cfg.GeminiModel, g.cfg.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini API")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// buildPrompt joins the system instructions, the last promptTurns turns, and
// the new message into the single text block the model receives.
func buildPrompt(message string, history []ConversationTurn) string {
	if len(history) > promptTurns {
		history = history[len(history)-promptTurns:]
	}

	var prompt strings.Builder
	prompt.WriteString(assistantSystemPrompt)
	prompt.WriteString("\n\nConversation:\n")
	for _, turn := range history {
		role := "Assistant"
		if turn.Role == "user" {
			role = "Student"
		}
		prompt.WriteString(role)
		prompt.WriteString(": ")
		prompt.WriteString(turn.Text)
		prompt.WriteString("\n")
	}
	prompt.WriteString("Student: ")
	prompt.WriteString(message)
	prompt.WriteString("\nAssistant:")
	return prompt.String()
}
