package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

// User identifies the caller of an interview operation.
type User struct {
	ID    uuid.UUID
	Email string
}

// TurnResult is returned to the client for one processed message.
// Draft is the loaded draft with the extracted data applied in memory.
type TurnResult struct {
	SessionID     uuid.UUID     `json:"sessionId"`
	Reply         string        `json:"message"`
	ExtractedData *resume.Patch `json:"extractedData"`
	Step          session.Step  `json:"currentStep"`
	NextStep      *session.Step `json:"nextStep"`
	IsCompleted   bool          `json:"isCompleted"`
	Draft         resume.Draft  `json:"resume"`
	Report        resume.Report `json:"-"`
}

// Conversation is a session with its full message log and the current draft.
type Conversation struct {
	Session  session.Session   `json:"session"`
	Messages []session.Message `json:"messages"`
	Draft    resume.Draft      `json:"resume"`
}

// DocumentExtractor reads a whole uploaded document as one edit turn.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, in Input) (Result, error)
}

// Service runs the guided interview.
type Service interface {
	Start(ctx context.Context, u User) (Conversation, error)
	Turn(ctx context.Context, u User, sessionID uuid.UUID, message string) (TurnResult, error)
	Restart(ctx context.Context, u User) (Conversation, error)
	Draft(ctx context.Context, u User) (resume.Draft, error)
	Import(ctx context.Context, u User, filename string, data []byte) (TurnResult, error)
}

type service struct {
	sessions      session.Store
	drafts        *resume.Aggregator
	extractor     Extractor
	machine       Machine
	historyWindow int
	maxImportText int
	log           *logger.Logger
}

// ErrUnsupportedImport is returned by Import when no model is configured.
var ErrUnsupportedImport = errors.New("document import requires an llm")

func NewService(sessions session.Store, drafts *resume.Aggregator, extractor Extractor, historyWindow int, log *logger.Logger) Service {
	if log == nil {
		log = logger.Nop()
	}
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &service{
		sessions:      sessions,
		drafts:        drafts,
		extractor:     extractor,
		historyWindow: historyWindow,
		maxImportText: 12000,
		log:           log,
	}
}

func (s *service) Start(ctx context.Context, u User) (Conversation, error) {
	active, ok, err := s.sessions.Active(ctx, u.ID)
	if err != nil {
		return Conversation{}, err
	}
	if !ok {
		return s.fresh(ctx, u)
	}

	sess, msgs, err := s.sessions.GetSessionWithMessages(ctx, u.ID, active.ID)
	if err != nil {
		return Conversation{}, err
	}
	draft, err := s.drafts.Load(ctx, u.ID, u.Email)
	if err != nil {
		return Conversation{}, err
	}
	if len(msgs) == 0 {
		text := WelcomeBack(sess.CurrentStep, len(draft.Education) > 0, len(draft.WorkHistories) > 0)
		m, err := s.sessions.AppendMessage(ctx, u.ID, sess.ID, session.RoleAssistant, text, nil)
		if err != nil {
			return Conversation{}, err
		}
		msgs = append(msgs, m)
		sess.MessageCount = len(msgs)
	}
	return Conversation{Session: sess, Messages: msgs, Draft: draft}, nil
}

func (s *service) Restart(ctx context.Context, u User) (Conversation, error) {
	// Draft first: a failed reset must leave the current session in place.
	if err := s.drafts.Reset(ctx, u.ID); err != nil {
		s.log.Error("interview restart aborted", "user_id", u.ID, "error", err)
		return Conversation{}, err
	}
	existing, err := s.sessions.ListSessionsForUser(ctx, u.ID, 0, 0)
	if err != nil {
		return Conversation{}, err
	}
	for _, sess := range existing {
		if err := s.sessions.DeleteSession(ctx, u.ID, sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			return Conversation{}, fmt.Errorf("delete session: %w", err)
		}
	}
	s.log.Info("interview restarted", "user_id", u.ID, "deleted_sessions", len(existing))
	return s.fresh(ctx, u)
}

func (s *service) fresh(ctx context.Context, u User) (Conversation, error) {
	sess, err := s.sessions.CreateSession(ctx, u.ID, "")
	if err != nil {
		return Conversation{}, err
	}
	m, err := s.sessions.AppendMessage(ctx, u.ID, sess.ID, session.RoleAssistant, Greeting, nil)
	if err != nil {
		return Conversation{}, err
	}
	sess.MessageCount = 1
	draft, err := s.drafts.Load(ctx, u.ID, u.Email)
	if err != nil {
		return Conversation{}, err
	}
	return Conversation{Session: sess, Messages: []session.Message{m}, Draft: draft}, nil
}

func (s *service) Turn(ctx context.Context, u User, sessionID uuid.UUID, message string) (TurnResult, error) {
	sess, err := s.sessions.GetSession(ctx, u.ID, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	fail := TurnResult{SessionID: sess.ID, Reply: Apology, Step: sess.CurrentStep, IsCompleted: sess.IsCompleted}

	// History is read before the new message lands so it is not sent twice.
	history, err := s.sessions.History(ctx, sess.ID, s.historyWindow)
	if err != nil {
		return fail, err
	}
	if strings.TrimSpace(message) != "" {
		if _, err := s.sessions.AppendMessage(ctx, u.ID, sess.ID, session.RoleUser, message, nil); err != nil {
			return fail, err
		}
	}
	draft, err := s.drafts.Load(ctx, u.ID, u.Email)
	if err != nil {
		return fail, err
	}

	res, err := s.extractor.Extract(ctx, Input{
		UserID:  u.ID.String(),
		Step:    sess.CurrentStep,
		Message: message,
		Draft:   draft,
		History: toTurns(history),
	})
	if err != nil {
		s.log.Error("chat turn extraction failed", "user_id", u.ID, "session_id", sess.ID, "step", sess.CurrentStep, "error", err)
		if !errors.Is(err, ErrExtraction) {
			err = fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		return fail, err
	}

	tr := s.machine.Apply(sess.CurrentStep, res)
	report := s.drafts.Apply(ctx, u.ID, u.Email, res.Data)

	out := TurnResult{
		SessionID:     sess.ID,
		Reply:         res.Message,
		ExtractedData: res.Data,
		Step:          tr.From,
		IsCompleted:   sess.IsCompleted,
		Draft:         res.Data.Merge(draft),
		Report:        report,
	}
	if tr.Advance {
		next := tr.To
		out.NextStep = &next
		updated, err := s.sessions.AdvanceStep(ctx, sess, tr.To)
		switch {
		case err == nil:
			out.Step = updated.CurrentStep
			out.IsCompleted = updated.IsCompleted
		case errors.Is(err, session.ErrConflict):
			s.log.Warn("concurrent turn changed the session, step left as is", "session_id", sess.ID, "from", tr.From, "to", tr.To)
			if cur, gerr := s.sessions.GetSession(ctx, u.ID, sess.ID); gerr == nil {
				out.Step = cur.CurrentStep
				out.IsCompleted = cur.IsCompleted
			}
		default:
			s.log.Error("failed to advance step", "session_id", sess.ID, "to", tr.To, "error", err)
		}
	}

	var extracted json.RawMessage
	if !res.Data.IsEmpty() {
		if b, err := json.Marshal(res.Data); err == nil {
			extracted = b
		}
	}
	if _, err := s.sessions.AppendMessage(ctx, u.ID, sess.ID, session.RoleAssistant, res.Message, extracted); err != nil {
		s.log.Error("failed to store assistant reply", "session_id", sess.ID, "error", err)
	}

	s.log.Debug("chat turn processed", "user_id", u.ID, "session_id", sess.ID, "from", tr.From, "to", out.Step, "updates", len(report.Updates))
	return out, nil
}

func (s *service) Draft(ctx context.Context, u User) (resume.Draft, error) {
	return s.drafts.Load(ctx, u.ID, u.Email)
}

// Import extracts text from an uploaded PDF/DOCX résumé and applies what the
// model finds to the draft. Session state is left untouched.
func (s *service) Import(ctx context.Context, u User, filename string, data []byte) (TurnResult, error) {
	doc, ok := s.extractor.(DocumentExtractor)
	if !ok {
		return TurnResult{}, ErrUnsupportedImport
	}
	text, err := resume.ParseDocumentText(filename, data)
	if err != nil {
		return TurnResult{}, err
	}
	if r := []rune(text); len(r) > s.maxImportText {
		text = string(r[:s.maxImportText])
	}
	draft, err := s.drafts.Load(ctx, u.ID, u.Email)
	if err != nil {
		return TurnResult{}, err
	}
	res, err := doc.ExtractDocument(ctx, Input{
		UserID:  u.ID.String(),
		Step:    session.StepComplete,
		Message: text,
		Draft:   draft,
	})
	if err != nil {
		s.log.Error("document import failed", "user_id", u.ID, "file", filename, "error", err)
		return TurnResult{Reply: Apology}, err
	}
	// A document without a section must not wipe what the interview collected.
	patch := dropEmptyCollections(res.Data)
	report := s.drafts.Apply(ctx, u.ID, u.Email, patch)
	return TurnResult{
		Reply:         res.Message,
		ExtractedData: patch,
		Step:          session.StepComplete,
		Draft:         patch.Merge(draft),
		Report:        report,
	}, nil
}

func dropEmptyCollections(p *resume.Patch) *resume.Patch {
	if p == nil {
		return nil
	}
	out := *p
	if len(out.Education) == 0 {
		out.Education = nil
	}
	if len(out.WorkHistories) == 0 {
		out.WorkHistories = nil
	}
	if len(out.Skills) == 0 {
		out.Skills = nil
	}
	if len(out.Certifications) == 0 {
		out.Certifications = nil
	}
	return &out
}

func toTurns(msgs []session.Message) []Turn {
	out := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Turn{Role: m.Role, Content: m.Content})
	}
	return out
}
