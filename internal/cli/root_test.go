package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/config"
	"github.com/roach88/unsei/internal/engine"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(config.Config{})
	require.NotNil(t, cmd)
	assert.Equal(t, "unsei", cmd.Use)
	assert.Contains(t, cmd.Long, "Tzolkin")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(config.Config{})
	commands := []string{"compute", "lunar", "batch", "show", "test", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(config.Config{})

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestBatchCommandFlags(t *testing.T) {
	cmd := NewRootCommand(config.Config{})
	batchCmd, _, err := cmd.Find([]string{"batch"})
	require.NoError(t, err)

	for _, name := range []string{"db", "workers", "metrics-out"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), "batch should have --%s", name)
	}
}

func TestShowCommandFlags(t *testing.T) {
	cmd := NewRootCommand(config.Config{})
	showCmd, _, err := cmd.Find([]string{"show"})
	require.NoError(t, err)

	assert.NotNil(t, showCmd.Flags().Lookup("db"))
	assert.NotNil(t, showCmd.Flags().Lookup("kin"))
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand(config.Config{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "yaml", "compute", "2000-01-01"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootOptionsDefaults(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		dbFlag      string
		workersFlag int
		wantDB      string
		wantWorkers int
	}{
		{"flags_win", config.Config{DBPath: "cfg.db", Workers: 8}, "flag.db", 2, "flag.db", 2},
		{"config_fallback", config.Config{DBPath: "cfg.db", Workers: 8}, "", 0, "cfg.db", 8},
		{"built_in_defaults", config.Config{}, "", 0, "unsei.db", engine.DefaultWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RootOptions{Config: tt.cfg}
			assert.Equal(t, tt.wantDB, opts.dbPath(tt.dbFlag))
			assert.Equal(t, tt.wantWorkers, opts.workers(tt.workersFlag))
		})
	}
}
