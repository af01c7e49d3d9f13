package interview

import (
	"context"
	"errors"

	"github.com/artem13815/rirekisho/pkg/llm"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

// ErrExtraction is returned when a turn could not be turned into a Result:
// the model call failed or its reply did not match the expected shape.
var ErrExtraction = errors.New("extraction failed")

// Turn is one prior message given to the extractor as context.
type Turn struct {
	Role    session.Role
	Content string
}

// Input is everything the extractor sees for one user message.
type Input struct {
	UserID  string
	Step    session.Step
	Message string
	Draft   resume.Draft
	History []Turn
}

// Result is the structured outcome of one extraction.
type Result struct {
	Message        string        `json:"message"`
	Data           *resume.Patch `json:"extractedData"`
	IsStepComplete bool          `json:"isStepComplete"`
	NextStep       *session.Step `json:"nextStep"`
}

// Extractor turns a user message into a Result.
type Extractor interface {
	Extract(ctx context.Context, in Input) (Result, error)
}

// Config is injected into the AI extractor at construction.
type Config struct {
	APIKey        string
	Model         string
	Pricing       llm.Pricing
	HistoryWindow int
	Temperature   float32
	MaxTokens     int
}

const (
	DefaultHistoryWindow = 10
	defaultTemperature   = 0.7
	defaultMaxTokens     = 1500
)

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = llm.DefaultModel
	}
	if c.Pricing == nil {
		c.Pricing = llm.DefaultPricing()
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	return c
}

// NewExtractor picks the AI path when an API key and a model client are
// configured and the deterministic fallback otherwise.
func NewExtractor(cfg Config, model llm.ChatModel, usage llm.UsageRecorder, classifier IntentClassifier, log *logger.Logger) Extractor {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.APIKey == "" || model == nil {
		log.Info("llm api key not set, using fallback extractor")
		return NewFallbackExtractor(classifier)
	}
	return NewAIExtractor(cfg, model, usage, log)
}

func stepPtr(s session.Step) *session.Step { return &s }
