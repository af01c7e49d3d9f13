package memory

import (
	"context"
	"sync"

	"github.com/artem13815/rirekisho/pkg/llm"
)

// UsageRepository collects llm usage records in memory.
type UsageRepository struct {
	mu      sync.Mutex
	records []llm.UsageRecord
}

func NewUsageRepository() *UsageRepository { return &UsageRepository{} }

func (r *UsageRepository) Record(_ context.Context, rec llm.UsageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (r *UsageRepository) Records() []llm.UsageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]llm.UsageRecord, len(r.records))
	copy(out, r.records)
	return out
}
