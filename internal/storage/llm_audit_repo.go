package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// LLMCallRecord describes one completion call. Prompts and completions are not
// recorded.
type LLMCallRecord struct {
	CallID       string
	RequestID    string
	Operation    string
	ProviderName string
	Model        string
	Status       string
	ErrorType    string
	DurationMs   int64
}

type LLMAuditRepo struct {
	db *sql.DB
}

func NewLLMAuditRepo(db *sql.DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS llm_calls (
  call_id       UUID PRIMARY KEY,
  request_id    UUID NOT NULL,
  operation     TEXT NOT NULL,
  provider_name TEXT NOT NULL,
  model         TEXT NOT NULL,
  status        TEXT NOT NULL,
  error_type    TEXT,
  duration_ms   BIGINT NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("ensure llm_calls schema: %w", err)
	}
	return nil
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec LLMCallRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO llm_calls(call_id, request_id, operation, provider_name, model, status, error_type, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''), $8)`,
		rec.CallID, rec.RequestID, rec.Operation, rec.ProviderName, rec.Model, rec.Status, rec.ErrorType, rec.DurationMs)
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}
