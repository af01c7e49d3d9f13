package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/pkg/llm"
	"github.com/artem13815/rirekisho/pkg/repository/memory"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

type fakeModel struct {
	reply string
	err   error
	usage llm.Usage
	reqs  []llm.Request
}

func (f *fakeModel) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Model: "gpt-4o-mini", Content: f.reply, Usage: f.usage}, nil
}

const educationReply = `{"message":"ありがとうございます！\n\nそれでは次に職歴についてお聞きします。","extractedData":{"education":[{"schoolName":"京都大学","faculty":"法学部","degree":"","startDate":"2015-04","endDate":""}]},"isStepComplete":true,"nextStep":"work"}`

func TestAIExtractorBuildsRequest(t *testing.T) {
	model := &fakeModel{reply: educationReply}
	ex := NewAIExtractor(Config{APIKey: "k", HistoryWindow: 2}, model, nil, nil)

	history := []Turn{
		{Role: session.RoleAssistant, Content: "one"},
		{Role: session.RoleUser, Content: "   "},
		{Role: session.RoleUser, Content: "two"},
		{Role: session.RoleAssistant, Content: "three"},
	}
	res, err := ex.Extract(context.Background(), Input{
		Step:    session.StepEducation,
		Message: "京都大学 法学部",
		Draft:   resume.Draft{FullName: "山田太郎"},
		History: history,
	})
	require.NoError(t, err)
	require.Len(t, model.reqs, 1)

	req := model.reqs[0]
	assert.True(t, req.JSONObject)
	assert.Equal(t, llm.DefaultModel, req.Model)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
	assert.Equal(t, 1500, req.MaxTokens)

	require.Len(t, req.Messages, 5)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "学歴")
	assert.True(t, strings.HasPrefix(req.Messages[1].Content, "現在の履歴書データ: "))
	assert.Contains(t, req.Messages[1].Content, "山田太郎")
	assert.Equal(t, "two", req.Messages[2].Content)
	assert.Equal(t, "three", req.Messages[3].Content)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "京都大学 法学部"}, req.Messages[4])

	require.NotNil(t, res.Data)
	assert.Equal(t, "京都大学", res.Data.Education[0].SchoolName)
	assert.Equal(t, session.StepWork, *res.NextStep)
}

func TestAIExtractorEmptyMessagePlaceholder(t *testing.T) {
	model := &fakeModel{reply: educationReply}
	ex := NewAIExtractor(Config{APIKey: "k"}, model, nil, nil)

	_, err := ex.Extract(context.Background(), Input{Step: session.StepEducation, Message: "  "})
	require.NoError(t, err)

	msgs := model.reqs[0].Messages
	assert.Equal(t, "続けてください", msgs[len(msgs)-1].Content)
}

func TestAIExtractorUnknownStepUsesEducationPrompt(t *testing.T) {
	model := &fakeModel{reply: educationReply}
	ex := NewAIExtractor(Config{APIKey: "k"}, model, nil, nil)

	_, err := ex.Extract(context.Background(), Input{Step: session.Step("?"), Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, stepPrompts[session.StepEducation], model.reqs[0].Messages[0].Content)
}

func TestAIExtractorRecordsUsage(t *testing.T) {
	usage := memory.NewUsageRepository()
	model := &fakeModel{reply: educationReply, usage: llm.Usage{PromptTokens: 1000, CompletionTokens: 500}}
	ex := NewAIExtractor(Config{APIKey: "k"}, model, usage, nil)

	userID := uuid.New()
	_, err := ex.Extract(context.Background(), Input{UserID: userID.String(), Step: session.StepEducation, Message: "x"})
	require.NoError(t, err)

	recs := usage.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 1500, recs[0].TotalTokens)
	assert.InDelta(t, (1000*0.15+500*0.60)/1_000_000, recs[0].CostUSD, 1e-12)
	require.NotNil(t, recs[0].UserID)
	assert.Equal(t, userID, *recs[0].UserID)
	assert.Equal(t, UsageEndpoint, recs[0].Endpoint)
}

type failingUsage struct{}

func (failingUsage) Record(context.Context, llm.UsageRecord) error { return errors.New("db down") }

func TestAIExtractorIgnoresUsageFailure(t *testing.T) {
	ex := NewAIExtractor(Config{APIKey: "k"}, &fakeModel{reply: educationReply}, failingUsage{}, nil)

	_, err := ex.Extract(context.Background(), Input{Step: session.StepEducation, Message: "x"})
	assert.NoError(t, err)
}

func TestAIExtractorFailsClosed(t *testing.T) {
	ctx := context.Background()

	_, err := NewAIExtractor(Config{APIKey: "k"}, &fakeModel{err: errors.New("timeout")}, nil, nil).
		Extract(ctx, Input{Step: session.StepWork, Message: "x"})
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = NewAIExtractor(Config{APIKey: "k"}, &fakeModel{reply: `{"message":"ok","isStepComplete":"yes"}`}, nil, nil).
		Extract(ctx, Input{Step: session.StepWork, Message: "x"})
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestNewExtractorSelectsPath(t *testing.T) {
	_, isFallback := NewExtractor(Config{}, &fakeModel{}, nil, nil, nil).(*FallbackExtractor)
	assert.True(t, isFallback)

	_, isAI := NewExtractor(Config{APIKey: "k"}, &fakeModel{}, nil, nil, nil).(*AIExtractor)
	assert.True(t, isAI)
}
