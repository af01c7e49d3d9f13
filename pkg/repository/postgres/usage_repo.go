package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/rirekisho/pkg/llm"
)

// UsageRepository stores llm token accounting in api_usage.
type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

func (r *UsageRepository) Record(ctx context.Context, rec llm.UsageRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO api_usage (id, user_id, endpoint, model, input_tokens, output_tokens, total_tokens, cost_usd, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, rec.ID, rec.UserID, rec.Endpoint, rec.Model, rec.InputTokens, rec.OutputTokens, rec.TotalTokens, rec.CostUSD, rec.CreatedAt)
	return err
}
