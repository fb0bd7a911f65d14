package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*LLMAuditRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLLMAuditRepo(db), mock
}

func TestInsertLLMCall(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	rec := LLMCallRecord{
		CallID:       "0b9f4a8e-4c55-4a47-9d7e-2f0c2a8f1a10",
		RequestID:    "6d0b1c3e-9a51-4f0e-8a43-55b6a0e7c2d1",
		Operation:    "summarize_chunk",
		ProviderName: "groq",
		Model:        "llama-3.1-8b-instant",
		Status:       "ok",
		DurationMs:   420,
	}
	mock.ExpectExec("INSERT INTO llm_calls").
		WithArgs(rec.CallID, rec.RequestID, rec.Operation, rec.ProviderName, rec.Model, rec.Status, "", rec.DurationMs).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertLLMCallWrapsError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec("INSERT INTO llm_calls").WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), LLMCallRecord{Status: "error", ErrorType: "auth"})
	require.ErrorContains(t, err, "insert llm call")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS llm_calls").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
