package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_KnownValues(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/known_values.yaml")
	require.NoError(t, err)

	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_KnownValues -update
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("testdata", "golden", "known_values.golden"),
		GoldenPath(filepath.Join("testdata", "scenarios", "known_values.yaml")))
	assert.Equal(t,
		filepath.Join("/x", "golden", "a.golden"),
		GoldenPath("/x/scenarios/a.yml"))
}

func TestGoldenFile_MatchesCheckedInSnapshot(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/known_values.yaml")
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)

	match, err := CompareGolden(GoldenPath("testdata/scenarios/known_values.yaml"), scenario.Name, result)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestWriteGolden_RoundTrip(t *testing.T) {
	scenario := &Scenario{
		Name:        "round_trip",
		Description: "x",
		Cases:       []Case{{Date: "1988-02-20"}},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "golden", "round_trip.golden")
	require.NoError(t, WriteGolden(path, scenario.Name, result))

	match, err := CompareGolden(path, scenario.Name, result)
	require.NoError(t, err)
	assert.True(t, match)

	// A different scenario name changes the snapshot.
	match, err = CompareGolden(path, "other", result)
	require.NoError(t, err)
	assert.False(t, match)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sukuyo":"奎宿"`)
	assert.Contains(t, string(data), `"scenario_name":"round_trip"`)
}

func TestCompareGolden_MissingFile(t *testing.T) {
	_, err := CompareGolden(filepath.Join(t.TempDir(), "none.golden"), "x", NewResult())
	assert.Error(t, err)
}
