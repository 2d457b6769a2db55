package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/config"
	"github.com/roach88/unsei/internal/ir"
)

func runCLI(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(config.Config{})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--format", format}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestComputeText(t *testing.T) {
	out, err := runCLI(t, "text", "compute", "1979-11-22")
	require.NoError(t, err)

	assert.Contains(t, out, "KIN93")
	assert.Contains(t, out, "箕宿")
	assert.Contains(t, out, "日柱[癸巳]")
	assert.Contains(t, out, "1979年10月3日")
	assert.NotContains(t, out, "近似値")
}

func TestComputeJSON(t *testing.T) {
	out, err := runCLI(t, "json", "compute", "1979-11-22")
	require.NoError(t, err)

	var response struct {
		Status string        `json:"status"`
		Data   ComputeOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 93, response.Data.Record.Kin)
	assert.Equal(t, "1979-11-22", response.Data.Record.BirthDate)
	assert.Equal(t, ir.EngineVersion, response.Data.Record.EngineVersion)

	want, err := ir.ResultID(response.Data.Record)
	require.NoError(t, err)
	assert.Equal(t, want, response.Data.ID)
}

func TestComputeFallbackNote(t *testing.T) {
	out, err := runCLI(t, "text", "compute", "2024-02-10")
	require.NoError(t, err)
	assert.Contains(t, out, "近似値")
}

func TestComputeInvalidDate(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"feb_30", "2023-02-30"},
		{"month_13", "2023-13-01"},
		{"garbage", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "json", "compute", tt.arg)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var response CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &response))
			assert.Equal(t, "error", response.Status)
			require.NotNil(t, response.Error)
			assert.Equal(t, "INVALID_DATE", response.Error.Code)
		})
	}
}
