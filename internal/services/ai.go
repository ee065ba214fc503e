package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

// GeneratedTask is a task draft proposed by the model.
type GeneratedTask struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      models.Priority `json:"priority"`
	EstimatedTime *int            `json:"estimated_time"`
	DueDate       *time.Time      `json:"due_date"`
	Tags          []string        `json:"tags"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText extracts task drafts from free text such as a bug
// report or meeting notes.
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are an assistant that turns engineering notes into tracked tasks and bugs.

Current time: %s

Text:
%s

Return a JSON array of tasks in this exact shape:
[
  {
    "title": "short title",
    "description": "what needs to be done",
    "priority": "one of low, medium, high, critical",
    "estimated_time": estimated minutes as an integer, or null,
    "due_date": "ISO8601 deadline, e.g. 2025-10-28T23:59:59Z, or null when none is stated",
    "tags": ["bug", "ui"]
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") to concrete dates
- Return JSON only, without any explanation`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseGeneratedTasks(resp.Choices[0].Message.Content)
}

// parseGeneratedTasks decodes the model output, tolerating a markdown code fence.
func parseGeneratedTasks(content string) ([]GeneratedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
