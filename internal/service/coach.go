package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stridehq/stride/internal/model"
)

// CheckinSystemPrompt frames the completion model as an accountability
// coach and pins the response shape.
const CheckinSystemPrompt = `You are a high-accountability goals coach.
Rules:
- Daily check-ins.
- No goal limits.
- Do NOT auto-adjust goals.
Return JSON:
{
  summary: "",
  perGoal: [{goalTitle:"", checkinQuestion:"", microStep:""}],
  closing:""
}`

var (
	ErrCoachNotConfigured = errors.New("coach not configured (missing OPENAI_API_KEY)")
	ErrCoachEmptyResponse = errors.New("no response content from completion service")
)

// CoachSummary is the structured check-in summary returned by the
// completion service. When the model replies with something that is not
// the requested JSON, the content is preserved verbatim in Raw.
type CoachSummary struct {
	Summary string            `json:"summary,omitempty"`
	PerGoal []CoachGoalAdvice `json:"perGoal,omitempty"`
	Closing string            `json:"closing,omitempty"`
	Raw     string            `json:"raw,omitempty"`
}

type CoachGoalAdvice struct {
	GoalTitle       string `json:"goalTitle"`
	CheckinQuestion string `json:"checkinQuestion"`
	MicroStep       string `json:"microStep"`
}

// CoachService is a pass-through client for an OpenAI-compatible chat
// completions endpoint. One call per check-in; no retry, no caching.
type CoachService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewCoachService(baseURL, apiKey, model string) *CoachService {
	return &CoachService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateCheckin sends the prompts to the completion service and parses
// the structured summary out of the first choice.
func (s *CoachService) GenerateCheckin(ctx context.Context, systemPrompt, userPrompt string) (*CoachSummary, error) {
	if s.apiKey == "" {
		return nil, ErrCoachNotConfigured
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model:       s.model,
		Temperature: 0.5,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("completion request failed: %s: %s", resp.Status, string(errBody))
	}

	var completion chatCompletionResponse
	err = json.NewDecoder(resp.Body).Decode(&completion)
	if err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrCoachEmptyResponse
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrCoachEmptyResponse
	}

	summary := &CoachSummary{}
	err = json.Unmarshal([]byte(content), summary)
	if err != nil {
		// Model ignored the JSON contract; keep what it said.
		return &CoachSummary{Raw: content}, nil
	}

	return summary, nil
}

// BuildUserPrompt renders today's date, the user's notes and the active
// goal list into the coach's user prompt.
func BuildUserPrompt(today, notes string, activeGoals []*model.Goal) string {
	var goalLines []string
	for i, goal := range activeGoals {
		goalLines = append(goalLines, fmt.Sprintf("%d. %s (%s)", i+1, goal.Title, goal.Frequency))
	}

	goalsText := strings.Join(goalLines, "\n")
	if goalsText == "" {
		goalsText = "No active goals."
	}
	if notes == "" {
		notes = "No notes provided."
	}

	return strings.Join([]string{
		"Today's date: " + today,
		"User notes: " + notes,
		"Active goals:",
		goalsText,
	}, "\n")
}
