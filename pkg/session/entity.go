package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrInvalidMessage = errors.New("role and content are required")
	// ErrConflict is returned when a version-checked step update lost a race.
	ErrConflict = errors.New("session was modified concurrently")
)

// DefaultTitle is used when a session is created without a title.
const DefaultTitle = "履歴書作成"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant || r == RoleSystem
}

// Session — одна беседа интервью, принадлежащая пользователю.
type Session struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Title        string    `json:"title"`
	CurrentStep  Step      `json:"currentStep"`
	IsCompleted  bool      `json:"isCompleted"`
	Version      int       `json:"version"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Message is an append-only transcript entry.
type Message struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     uuid.UUID       `json:"sessionId"`
	Role          Role            `json:"role"`
	Content       string          `json:"content"`
	ExtractedData json.RawMessage `json:"extractedData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StepUpdate describes a step mutation. IfVersion, when set, turns the update
// into a compare-and-set against Session.Version.
type StepUpdate struct {
	SessionID   uuid.UUID
	Step        Step
	IsCompleted bool
	IfVersion   *int
}

// Repository — порт хранения сессий и сообщений.
type Repository interface {
	Create(ctx context.Context, s Session) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Session, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Session, error)
	// Messages returns messages oldest first; limit > 0 keeps only the trailing ones.
	Messages(ctx context.Context, sessionID uuid.UUID, limit int) ([]Message, error)
	AppendMessage(ctx context.Context, m Message) error
	// UpdateStep reports false when IfVersion did not match.
	UpdateStep(ctx context.Context, upd StepUpdate) (bool, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
