package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store describes session/message use cases scoped to the authenticated user.
type Store interface {
	CreateSession(ctx context.Context, userID uuid.UUID, title string) (Session, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (Session, error)
	GetSessionWithMessages(ctx context.Context, userID, sessionID uuid.UUID) (Session, []Message, error)
	AppendMessage(ctx context.Context, userID, sessionID uuid.UUID, role Role, content string, extracted json.RawMessage) (Message, error)
	UpdateStep(ctx context.Context, userID, sessionID uuid.UUID, step Step, isCompleted bool) error
	AdvanceStep(ctx context.Context, s Session, to Step) (Session, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	ListSessionsForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Session, error)
	// Active returns the most recently updated session; ok is false when the user has none.
	Active(ctx context.Context, userID uuid.UUID) (s Session, ok bool, err error)
	// History returns the trailing window of non-empty messages used as extractor context.
	History(ctx context.Context, sessionID uuid.UUID, window int) ([]Message, error)
}

type store struct {
	repo Repository
	now  func() time.Time
}

// NewStore returns the default Store implementation.
func NewStore(repo Repository) Store {
	return &store{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *store) CreateSession(ctx context.Context, userID uuid.UUID, title string) (Session, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	now := s.now()
	sess := Session{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		CurrentStep: StepEducation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *store) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (Session, error) {
	return s.repo.GetForOwner(ctx, userID, sessionID)
}

func (s *store) GetSessionWithMessages(ctx context.Context, userID, sessionID uuid.UUID) (Session, []Message, error) {
	sess, err := s.repo.GetForOwner(ctx, userID, sessionID)
	if err != nil {
		return Session{}, nil, err
	}
	msgs, err := s.repo.Messages(ctx, sess.ID, 0)
	if err != nil {
		return Session{}, nil, fmt.Errorf("load messages: %w", err)
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return sess, msgs, nil
}

func (s *store) AppendMessage(ctx context.Context, userID, sessionID uuid.UUID, role Role, content string, extracted json.RawMessage) (Message, error) {
	if !role.Valid() || strings.TrimSpace(content) == "" {
		return Message{}, ErrInvalidMessage
	}
	if _, err := s.repo.GetForOwner(ctx, userID, sessionID); err != nil {
		return Message{}, err
	}
	if string(extracted) == "null" {
		extracted = nil
	}
	m := Message{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Role:          role,
		Content:       content,
		ExtractedData: extracted,
		CreatedAt:     s.now(),
	}
	if err := s.repo.AppendMessage(ctx, m); err != nil {
		return Message{}, fmt.Errorf("append message: %w", err)
	}
	return m, nil
}

func (s *store) UpdateStep(ctx context.Context, userID, sessionID uuid.UUID, step Step, isCompleted bool) error {
	if _, err := s.repo.GetForOwner(ctx, userID, sessionID); err != nil {
		return err
	}
	step = ParseStep(string(step))
	_, err := s.repo.UpdateStep(ctx, StepUpdate{
		SessionID:   sessionID,
		Step:        step,
		IsCompleted: isCompleted || step == StepComplete,
	})
	if err != nil {
		return fmt.Errorf("update step: %w", err)
	}
	return nil
}

func (s *store) AdvanceStep(ctx context.Context, sess Session, to Step) (Session, error) {
	version := sess.Version
	ok, err := s.repo.UpdateStep(ctx, StepUpdate{
		SessionID:   sess.ID,
		Step:        to,
		IsCompleted: to == StepComplete,
		IfVersion:   &version,
	})
	if err != nil {
		return sess, fmt.Errorf("advance step: %w", err)
	}
	if !ok {
		return sess, ErrConflict
	}
	sess.CurrentStep = to
	sess.IsCompleted = sess.IsCompleted || to == StepComplete
	sess.Version++
	sess.UpdatedAt = s.now()
	return sess, nil
}

func (s *store) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, userID, sessionID)
}

func (s *store) ListSessionsForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Session, error) {
	items, err := s.repo.ListByOwner(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if items == nil {
		items = []Session{}
	}
	return items, nil
}

func (s *store) Active(ctx context.Context, userID uuid.UUID) (Session, bool, error) {
	items, err := s.repo.ListByOwner(ctx, userID, 1, 0)
	if err != nil {
		return Session{}, false, fmt.Errorf("list sessions: %w", err)
	}
	if len(items) == 0 {
		return Session{}, false, nil
	}
	return items[0], true, nil
}

func (s *store) History(ctx context.Context, sessionID uuid.UUID, window int) ([]Message, error) {
	msgs, err := s.repo.Messages(ctx, sessionID, window)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := msgs[:0:0]
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
