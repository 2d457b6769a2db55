package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/store"
)

func decodeBatch(t *testing.T, out string) BatchOutput {
	t.Helper()
	var response struct {
		Status string      `json:"status"`
		Data   BatchOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Equal(t, "ok", response.Status)
	return response.Data
}

func TestBatchStoresRangeAndIsResumable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fortunes.db")

	out, err := runCLI(t, "json", "batch", "1979-11-20", "1979-11-24", "--db", dbPath, "--workers", "2")
	require.NoError(t, err)
	first := decodeBatch(t, out)
	assert.Equal(t, "1979-11-20", first.From)
	assert.Equal(t, "1979-11-24", first.To)
	assert.Equal(t, 2, first.Workers)
	assert.Equal(t, 5, first.Computed)
	assert.Equal(t, 5, first.Inserted)
	assert.Equal(t, 0, first.Skipped)
	assert.NotEmpty(t, first.BatchID)

	out, err = runCLI(t, "json", "batch", "1979-11-22", "1979-11-26", "--db", dbPath)
	require.NoError(t, err)
	second := decodeBatch(t, out)
	assert.Equal(t, 5, second.Computed)
	assert.Equal(t, 2, second.Inserted)
	assert.Equal(t, 3, second.Skipped)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	n, err := st.CountResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	recs, err := st.ReadRange(ctx, ir.MustDate(1979, 11, 20), ir.MustDate(1979, 11, 26))
	require.NoError(t, err)
	require.Len(t, recs, 7)
	for i, rec := range recs {
		assert.Equal(t, ir.MustDate(1979, 11, 20).AddDays(i).String(), rec.BirthDate)
	}

	b, ok, err := st.ReadBatch(ctx, second.BatchID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, b.Count)
}

func TestBatchWritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fortunes.db")
	metricsPath := filepath.Join(dir, "unsei.prom")

	_, err := runCLI(t, "text", "batch", "2024-02-08", "2024-02-11", "--db", dbPath, "--metrics-out", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `unsei_computations_total{result="ok"} 4`)
	assert.Contains(t, string(data), "unsei_compute_duration_seconds")
}

func TestBatchRejectsReversedRange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fortunes.db")

	_, err := runCLI(t, "text", "batch", "2000-01-10", "2000-01-01", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "before start")
}

func TestBatchRejectsInvalidDate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fortunes.db")

	out, err := runCLI(t, "json", "batch", "2001-02-29", "2001-03-05", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.NotNil(t, response.Error)
	assert.Equal(t, "INVALID_DATE", response.Error.Code)
}

func TestShowAfterBatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fortunes.db")
	_, err := runCLI(t, "text", "batch", "1979-11-21", "1979-11-23", "--db", dbPath)
	require.NoError(t, err)

	out, err := runCLI(t, "json", "show", "1979-11-22", "--db", dbPath)
	require.NoError(t, err)
	var response struct {
		Status string     `json:"status"`
		Data   ShowOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Len(t, response.Data.Records, 1)
	assert.Equal(t, 93, response.Data.Records[0].Kin)

	out, err = runCLI(t, "text", "show", "--kin", "93", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1979-11-22  KIN93")
}

func TestShowNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fortunes.db")
	_, err := runCLI(t, "text", "batch", "1979-11-22", "1979-11-22", "--db", dbPath)
	require.NoError(t, err)

	_, err = runCLI(t, "text", "show", "1980-01-01", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = runCLI(t, "text", "show", "--kin", "1", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestShowArgumentErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	tests := []struct {
		name string
		args []string
	}{
		{"neither", []string{"show", "--db", dbPath}},
		{"both", []string{"show", "1979-11-22", "--kin", "93", "--db", dbPath}},
		{"kin_out_of_range", []string{"show", "--kin", "261", "--db", dbPath}},
		{"missing_db", []string{"show", "1979-11-22", "--db", dbPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "text", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
	assert.NoFileExists(t, dbPath)
}
