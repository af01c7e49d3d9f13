package interview

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/pkg/repository/memory"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

type fixture struct {
	svc      Service
	sessions session.Store
	drafts   *resume.Aggregator
	user     User
}

func newFixture(t *testing.T, ex Extractor) fixture {
	t.Helper()
	store := session.NewStore(memory.NewSessionRepository())
	agg := resume.NewAggregator(memory.NewResumeRepository(), nil)
	if ex == nil {
		ex = NewFallbackExtractor(nil)
	}
	return fixture{
		svc:      NewService(store, agg, ex, 0, nil),
		sessions: store,
		drafts:   agg,
		user:     User{ID: uuid.New(), Email: "taro@example.com"},
	}
}

func (f fixture) turn(t *testing.T, sessionID uuid.UUID, msg string) TurnResult {
	t.Helper()
	res, err := f.svc.Turn(context.Background(), f.user, sessionID, msg)
	require.NoError(t, err)
	return res
}

func TestServiceHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, session.StepEducation, conv.Session.CurrentStep)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, Greeting, conv.Messages[0].Content)
	assert.Equal(t, "taro@example.com", conv.Draft.Email)
	id := conv.Session.ID

	assert.Equal(t, session.StepWork, f.turn(t, id, "東京大学 工学部").Step)
	assert.Equal(t, session.StepSkills, f.turn(t, id, "株式会社ABC 営業").Step)
	assert.Equal(t, session.StepPR, f.turn(t, id, "Excel, 普通自動車免許").Step)

	draft, err := f.svc.Draft(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, []string{"Excel", "普通自動車免許"}, draft.Skills)

	last := f.turn(t, id, "粘り強く最後までやり遂げる力とチームでの協調性が私の強みです")
	assert.Equal(t, session.StepComplete, last.Step)
	assert.True(t, last.IsCompleted)

	draft, err = f.svc.Draft(ctx, f.user)
	require.NoError(t, err)
	assert.NotEmpty(t, draft.SelfPR)
	require.Len(t, draft.Education, 1)
	assert.Equal(t, "東京大学", draft.Education[0].SchoolName)
	require.Len(t, draft.WorkHistories, 1)
	assert.Equal(t, "株式会社ABC", draft.WorkHistories[0].CompanyName)

	sess, msgs, err := f.sessions.GetSessionWithMessages(ctx, f.user.ID, id)
	require.NoError(t, err)
	assert.True(t, sess.IsCompleted)
	assert.Len(t, msgs, 9)
	assert.Equal(t, session.RoleUser, msgs[1].Role)
	assert.Equal(t, session.RoleAssistant, msgs[2].Role)
	assert.NotEmpty(t, msgs[2].ExtractedData)

	// complete is terminal
	again := f.turn(t, id, "ありがとう")
	assert.Equal(t, session.StepComplete, again.Step)
	assert.Nil(t, again.NextStep)
}

func TestServiceSkipPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	id := conv.Session.ID

	f.turn(t, id, "東京大学 工学部")
	res := f.turn(t, id, "なし")

	assert.Equal(t, session.StepSkills, res.Step)
	assert.Nil(t, res.ExtractedData)
	draft, err := f.svc.Draft(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, draft.WorkHistories)
}

func TestServiceRestartMidFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	old := conv.Session.ID

	name := "山田太郎"
	f.drafts.Apply(ctx, f.user.ID, f.user.Email, &resume.Patch{FullName: &name})
	f.turn(t, old, "東京大学 工学部")
	f.turn(t, old, "株式会社ABC 営業")

	fresh, err := f.svc.Restart(ctx, f.user)
	require.NoError(t, err)

	assert.NotEqual(t, old, fresh.Session.ID)
	assert.Equal(t, session.StepEducation, fresh.Session.CurrentStep)
	assert.False(t, fresh.Session.IsCompleted)
	require.Len(t, fresh.Messages, 1)

	_, _, err = f.sessions.GetSessionWithMessages(ctx, f.user.ID, old)
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.Equal(t, "山田太郎", fresh.Draft.FullName)
	assert.Empty(t, fresh.Draft.Education)
	assert.Empty(t, fresh.Draft.WorkHistories)
	assert.Empty(t, fresh.Draft.Skills)
	assert.Empty(t, fresh.Draft.SelfPR)
}

func TestServiceRestartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	first, err := f.svc.Restart(ctx, f.user)
	require.NoError(t, err)
	second, err := f.svc.Restart(ctx, f.user)
	require.NoError(t, err)

	list, err := f.sessions.ListSessionsForUser(ctx, f.user.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.Session.ID, list[0].ID)
	assert.Equal(t, first.Session.CurrentStep, second.Session.CurrentStep)
	assert.Equal(t, first.Draft.Education, second.Draft.Education)
	assert.Equal(t, len(first.Messages), len(second.Messages))
}

type brokenExtractor struct{}

func (brokenExtractor) Extract(context.Context, Input) (Result, error) {
	return Result{}, errors.New("model unavailable")
}

func TestServiceExtractionFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, brokenExtractor{})
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)

	res, err := f.svc.Turn(ctx, f.user, conv.Session.ID, "東京大学 工学部")
	require.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, Apology, res.Reply)
	assert.Equal(t, session.StepEducation, res.Step)

	sess, msgs, err := f.sessions.GetSessionWithMessages(ctx, f.user.ID, conv.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StepEducation, sess.CurrentStep)
	require.Len(t, msgs, 2)
	assert.Equal(t, "東京大学 工学部", msgs[1].Content)
}

func TestServiceTurnUnknownSession(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Turn(context.Background(), f.user, uuid.New(), "hello")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestServiceTurnForeignSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)

	_, err = f.svc.Turn(ctx, User{ID: uuid.New()}, conv.Session.ID, "hello")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestServiceStartWelcomesBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	sess, err := f.sessions.CreateSession(ctx, f.user.ID, "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.UpdateStep(ctx, f.user.ID, sess.ID, session.StepSkills, false))

	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, conv.Session.ID)
	require.Len(t, conv.Messages, 1)
	assert.Contains(t, conv.Messages[0].Content, "おかえりなさい")
	assert.Contains(t, conv.Messages[0].Content, "スキル・資格")

	// the log is not empty any more, so nothing else is appended
	conv, err = f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 1)
}

func TestServiceImportNeedsModel(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Import(context.Background(), f.user, "cv.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedImport)
}

func TestServiceSkillsKeepDistinctEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)
	id := conv.Session.ID

	f.turn(t, id, "東京大学 工学部")
	f.turn(t, id, "株式会社ABC 営業")
	res := f.turn(t, id, "C++, C#, C, Go")

	want := []string{"C++", "C#", "C", "Go"}
	require.NotNil(t, res.ExtractedData)
	assert.Equal(t, want, res.ExtractedData.Skills)
	assert.Equal(t, want, res.Draft.Skills)

	draft, err := f.svc.Draft(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, want, draft.Skills)
}

func TestServiceTurnReturnsMergedDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	conv, err := f.svc.Start(ctx, f.user)
	require.NoError(t, err)

	res := f.turn(t, conv.Session.ID, "東京大学 工学部")
	require.Len(t, res.Draft.Education, 1)
	assert.Equal(t, "東京大学", res.Draft.Education[0].SchoolName)
	assert.Equal(t, "taro@example.com", res.Draft.Email)
}

// racingStore simulates another turn moving the session between load and advance.
type racingStore struct {
	session.Store
	to session.Step
}

func (r racingStore) AdvanceStep(ctx context.Context, s session.Session, _ session.Step) (session.Session, error) {
	if err := r.Store.UpdateStep(ctx, s.UserID, s.ID, r.to, false); err != nil {
		return s, err
	}
	return s, session.ErrConflict
}

func TestServiceTurnSurvivesLostRace(t *testing.T) {
	ctx := context.Background()
	store := racingStore{Store: session.NewStore(memory.NewSessionRepository()), to: session.StepSkills}
	agg := resume.NewAggregator(memory.NewResumeRepository(), nil)
	svc := NewService(store, agg, NewFallbackExtractor(nil), 0, nil)
	user := User{ID: uuid.New(), Email: "jiro@example.com"}

	conv, err := svc.Start(ctx, user)
	require.NoError(t, err)

	res, err := svc.Turn(ctx, user, conv.Session.ID, "東京大学 工学部")
	require.NoError(t, err)
	assert.Equal(t, session.StepSkills, res.Step)
	require.NotNil(t, res.NextStep)
	assert.Equal(t, session.StepWork, *res.NextStep)

	_, msgs, err := store.GetSessionWithMessages(ctx, user.ID, conv.Session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, session.RoleAssistant, msgs[2].Role)
	assert.Equal(t, res.Reply, msgs[2].Content)

	draft, err := svc.Draft(ctx, user)
	require.NoError(t, err)
	require.Len(t, draft.Education, 1)
	assert.Equal(t, "東京大学", draft.Education[0].SchoolName)
}

const importReply = `{"message":"履歴書を読み込みました。","extractedData":{"fullName":"山田花子","workHistories":[{"companyName":"株式会社ABC","position":"営業","startDate":"2018-04","endDate":""}],"skills":[],"certifications":["TOEIC 800点"]},"isStepComplete":true,"nextStep":null}`

func docxFile(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>` + body.String() + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestServiceImportDocx(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: importReply}
	f := newFixture(t, NewAIExtractor(Config{APIKey: "k"}, model, nil, nil))
	f.drafts.Apply(ctx, f.user.ID, f.user.Email, &resume.Patch{Skills: []string{"Excel"}})

	res, err := f.svc.Import(ctx, f.user, "cv.docx", docxFile(t, "山田花子", "株式会社ABC 営業 2018年4月〜"))
	require.NoError(t, err)
	assert.Equal(t, "履歴書を読み込みました。", res.Reply)
	assert.Equal(t, session.StepComplete, res.Step)
	require.NotNil(t, res.ExtractedData)
	assert.Nil(t, res.ExtractedData.Skills)

	require.Len(t, model.reqs, 1)
	msgs := model.reqs[0].Messages
	assert.Contains(t, msgs[len(msgs)-1].Content, "山田花子")

	draft, err := f.svc.Draft(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, "山田花子", draft.FullName)
	require.Len(t, draft.WorkHistories, 1)
	assert.Equal(t, "株式会社ABC", draft.WorkHistories[0].CompanyName)
	assert.Equal(t, "2018-04-01", draft.WorkHistories[0].StartDate)
	assert.Equal(t, []string{"TOEIC 800点"}, draft.Certifications)
	// an empty list in the document does not wipe interview data
	assert.Equal(t, []string{"Excel"}, draft.Skills)
	assert.Equal(t, draft.FullName, res.Draft.FullName)

	// session state is untouched
	list, err := f.sessions.ListSessionsForUser(ctx, f.user.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

type resetFailRepo struct {
	*memory.ResumeRepository
}

func (resetFailRepo) ResetCollections(context.Context, uuid.UUID) error {
	return errors.New("db down")
}

func TestServiceRestartKeepsSessionWhenResetFails(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(memory.NewSessionRepository())
	agg := resume.NewAggregator(resetFailRepo{memory.NewResumeRepository()}, nil)
	svc := NewService(store, agg, NewFallbackExtractor(nil), 0, nil)
	user := User{ID: uuid.New(), Email: "saburo@example.com"}

	conv, err := svc.Start(ctx, user)
	require.NoError(t, err)

	_, err = svc.Restart(ctx, user)
	require.Error(t, err)

	sess, _, err := store.GetSessionWithMessages(ctx, user.ID, conv.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.Session.ID, sess.ID)
}
