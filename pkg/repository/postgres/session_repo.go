package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/rirekisho/pkg/session"
)

// SessionRepository implements session.Repository backed by PostgreSQL (pgx).
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `
	s.id, s.user_id, s.title, s.current_step, s.is_completed, s.version, s.created_at, s.updated_at,
	(SELECT count(*) FROM chat_messages m WHERE m.session_id = s.id)`

func scanSession(row pgx.Row) (session.Session, error) {
	var (
		s    session.Session
		step string
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &step, &s.IsCompleted, &s.Version, &s.CreatedAt, &s.UpdatedAt, &s.MessageCount); err != nil {
		return session.Session{}, err
	}
	s.CurrentStep = session.ParseStep(step)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO chat_sessions (id, user_id, title, current_step, is_completed, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, s.ID, s.UserID, s.Title, string(s.CurrentStep), s.IsCompleted, s.Version, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *SessionRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (session.Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+`
FROM chat_sessions s
WHERE s.id = $1 AND s.user_id = $2
`, id, ownerID)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]session.Session, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+`
FROM chat_sessions s
WHERE s.user_id = $1
ORDER BY s.updated_at DESC, s.created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, lim, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]session.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// Messages returns the log oldest first. limit > 0 keeps only the trailing messages.
func (r *SessionRepository) Messages(ctx context.Context, sessionID uuid.UUID, limit int) ([]session.Message, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, session_id, role, content, extracted_data, created_at FROM (
	SELECT id, session_id, role, content, extracted_data, created_at
	FROM chat_messages
	WHERE session_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
) t
ORDER BY created_at ASC, id ASC
`, sessionID, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]session.Message, 0)
	for rows.Next() {
		var (
			m    session.Message
			role string
			data []byte
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &data, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = session.Role(role)
		if len(data) > 0 {
			m.ExtractedData = data
		}
		m.CreatedAt = m.CreatedAt.UTC()
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *SessionRepository) AppendMessage(ctx context.Context, m session.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var data any
	if len(m.ExtractedData) > 0 {
		data = []byte(m.ExtractedData)
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO chat_messages (id, session_id, role, content, extracted_data, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, m.ID, m.SessionID, string(m.Role), m.Content, data, m.CreatedAt); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE chat_sessions SET updated_at = $2 WHERE id = $1`, m.SessionID, m.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *SessionRepository) UpdateStep(ctx context.Context, upd session.StepUpdate) (bool, error) {
	var expected any
	if upd.IfVersion != nil {
		expected = *upd.IfVersion
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE chat_sessions
SET current_step = $2,
	is_completed = is_completed OR $3,
	version = version + 1,
	updated_at = now()
WHERE id = $1 AND ($4::int IS NULL OR version = $4::int)
`, upd.SessionID, string(upd.Step), upd.IsCompleted, expected)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if upd.IfVersion == nil {
		return false, session.ErrNotFound
	}
	return false, nil
}

// DeleteForOwner removes the session; messages go with it (ON DELETE CASCADE).
func (r *SessionRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}
