package lib

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(context.Background(), HistoryConfig{Driver: "sqlite3", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	errs := []*Error{
		newError(ErrInvalidSymbol, Location{Line: 1, Col: 25}),
		{Code: ErrMissingToken, Location: Location{Line: 2, Col: 3}, Expected: SymbolSemicolon},
	}

	firstID, err := h.Record(ctx, Run{
		Command:    "parse",
		Source:     "first.kpl",
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
	}, errs)
	require.NoError(t, err)
	require.NotEmpty(t, firstID)

	secondID, err := h.Record(ctx, Run{
		ID:         "fixed-id",
		Command:    "scan",
		Source:     "second.kpl",
		StartedAt:  start.Add(time.Minute),
		FinishedAt: start.Add(time.Minute),
		Success:    true,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "fixed-id", secondID)

	runs, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "fixed-id", runs[0].ID)
	require.Equal(t, "scan", runs[0].Command)
	require.True(t, runs[0].Success)
	require.Equal(t, firstID, runs[1].ID)
	require.Equal(t, "first.kpl", runs[1].Source)
	require.False(t, runs[1].Success)
	require.Equal(t, 2, runs[1].ErrorCount)
	require.True(t, runs[1].StartedAt.Equal(start))

	runs, err = h.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	stored, err := h.Diagnostics(ctx, firstID)
	require.NoError(t, err)
	require.Equal(t, []StoredDiagnostic{
		{Code: "InvalidSymbol", Location: Location{Line: 1, Col: 25}, Message: "Invalid symbol!"},
		{Code: "MissingToken", Location: Location{Line: 2, Col: 3}, Message: "Missing ';'"},
	}, stored)

	stored, err = h.Diagnostics(ctx, secondID)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestHistoryMigrateTwice(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)
	require.NoError(t, h.migrate(ctx))

	var count int
	require.NoError(t, h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	require.Equal(t, len(historyMigrations), count)
}

func TestOpenHistoryDrivers(t *testing.T) {
	_, err := OpenHistory(context.Background(), HistoryConfig{})
	require.ErrorContains(t, err, "disabled")

	_, err = OpenHistory(context.Background(), HistoryConfig{Driver: "mysql"})
	require.ErrorContains(t, err, "unsupported history driver")
}

func TestHistoryRebind(t *testing.T) {
	pg := &History{driver: "postgres"}
	require.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", pg.rebind("SELECT a FROM t WHERE b = ? AND c = ?"))

	lite := &History{driver: "sqlite3"}
	require.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}
