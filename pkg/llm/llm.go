package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one chat completion call.
type Request struct {
	Model       string
	Messages    []Message
	JSONObject  bool // ask the provider for a single JSON object reply
	Temperature float32
	MaxTokens   int
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

type Response struct {
	Model   string
	Content string
	Usage   Usage
}

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// UsageRecord — учёт токенов и стоимости одного вызова модели.
type UsageRecord struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Endpoint     string
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CostUSD      float64
	CreatedAt    time.Time
}

// UsageRecorder persists usage records. Failures must never break a chat turn.
type UsageRecorder interface {
	Record(ctx context.Context, rec UsageRecord) error
}
