package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/pkg/llm"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/session"
)

// UsageEndpoint labels usage records written by the interview.
const UsageEndpoint = "/api/v1/chat/turns"

// AIExtractor asks a chat model for the structured reply.
type AIExtractor struct {
	cfg   Config
	model llm.ChatModel
	usage llm.UsageRecorder
	log   *logger.Logger
	now   func() time.Time
}

func NewAIExtractor(cfg Config, model llm.ChatModel, usage llm.UsageRecorder, log *logger.Logger) *AIExtractor {
	if log == nil {
		log = logger.Nop()
	}
	return &AIExtractor{
		cfg:   cfg.withDefaults(),
		model: model,
		usage: usage,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (a *AIExtractor) Extract(ctx context.Context, in Input) (Result, error) {
	return a.extract(ctx, in, promptFor(session.ParseStep(string(in.Step))))
}

// ExtractDocument runs a whole document through the model as an edit turn.
func (a *AIExtractor) ExtractDocument(ctx context.Context, in Input) (Result, error) {
	return a.extract(ctx, in, importPrompt)
}

func (a *AIExtractor) extract(ctx context.Context, in Input, system string) (Result, error) {
	snapshot, err := json.Marshal(in.Draft)
	if err != nil {
		return Result{}, fmt.Errorf("%w: encode draft: %v", ErrExtraction, err)
	}

	msgs := make([]llm.Message, 0, len(in.History)+3)
	msgs = append(msgs,
		llm.Message{Role: llm.RoleSystem, Content: system},
		llm.Message{Role: llm.RoleSystem, Content: draftContext(string(snapshot))},
	)
	for _, t := range a.window(in.History) {
		msgs = append(msgs, llm.Message{Role: llm.Role(t.Role), Content: t.Content})
	}
	userMsg := in.Message
	if strings.TrimSpace(userMsg) == "" {
		userMsg = emptyMessagePlaceholder
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: userMsg})

	resp, err := a.model.Complete(ctx, llm.Request{
		Model:       a.cfg.Model,
		Messages:    msgs,
		JSONObject:  true,
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	a.record(ctx, in.UserID, resp)

	res, err := decodeResult(resp.Content)
	if err != nil {
		a.log.Warn("llm reply rejected", "step", in.Step, "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return res, nil
}

// window keeps the trailing non-empty user/assistant turns.
func (a *AIExtractor) window(history []Turn) []Turn {
	out := make([]Turn, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		if t.Role != session.RoleUser && t.Role != session.RoleAssistant {
			continue
		}
		out = append(out, t)
	}
	if n := a.cfg.HistoryWindow; len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func (a *AIExtractor) record(ctx context.Context, userID string, resp llm.Response) {
	if a.usage == nil {
		return
	}
	model := resp.Model
	if model == "" {
		model = a.cfg.Model
	}
	in, out := resp.Usage.PromptTokens, resp.Usage.CompletionTokens
	rec := llm.UsageRecord{
		ID:           uuid.New(),
		Endpoint:     UsageEndpoint,
		Model:        model,
		InputTokens:  in,
		OutputTokens: out,
		TotalTokens:  in + out,
		CostUSD:      a.cfg.Pricing.Cost(model, in, out),
		CreatedAt:    a.now(),
	}
	if id, err := uuid.Parse(userID); err == nil {
		rec.UserID = &id
	}
	if err := a.usage.Record(ctx, rec); err != nil {
		a.log.Warn("failed to record api usage", "model", model, "error", err)
	}
}
