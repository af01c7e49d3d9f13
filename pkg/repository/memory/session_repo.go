package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/pkg/session"
)

// SessionRepository is an in-process session.Repository used when no
// database is configured and in tests.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]session.Session
	messages map[uuid.UUID][]session.Message
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]session.Session),
		messages: make(map[uuid.UUID][]session.Message),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *SessionRepository) Create(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != ownerID {
		return session.Session{}, session.ErrNotFound
	}
	s.MessageCount = len(r.messages[id])
	return s, nil
}

func (r *SessionRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []session.Session
	for _, s := range r.sessions {
		if s.UserID != ownerID {
			continue
		}
		s.MessageCount = len(r.messages[s.ID])
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *SessionRepository) Messages(_ context.Context, sessionID uuid.UUID, limit int) ([]session.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]session.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *SessionRepository) AppendMessage(_ context.Context, m session.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[m.SessionID]
	if !ok {
		return session.ErrNotFound
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}
	r.messages[m.SessionID] = append(r.messages[m.SessionID], m)
	s.UpdatedAt = r.now()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) UpdateStep(_ context.Context, upd session.StepUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[upd.SessionID]
	if !ok {
		return false, session.ErrNotFound
	}
	if upd.IfVersion != nil && *upd.IfVersion != s.Version {
		return false, nil
	}
	s.CurrentStep = upd.Step
	s.IsCompleted = s.IsCompleted || upd.IsCompleted
	s.Version++
	s.UpdatedAt = r.now()
	r.sessions[s.ID] = s
	return true, nil
}

func (r *SessionRepository) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != ownerID {
		return session.ErrNotFound
	}
	delete(r.sessions, id)
	delete(r.messages, id)
	return nil
}
