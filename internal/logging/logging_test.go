package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	"github.com/jask/shenzhen/internal/config"
)

func TestNewWithoutFileDiscards(t *testing.T) {
	log, closer, err := New(config.LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("dropped")
	require.NoError(t, closer.Close())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shenzhen.log")
	log, closer, err := New(config.LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Debug("dealt board", "seed", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "dealt board")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]pterm.LogLevel{
		"trace":   pterm.LogLevelTrace,
		"DEBUG":   pterm.LogLevelDebug,
		"":        pterm.LogLevelInfo,
		"warning": pterm.LogLevelWarn,
		"error":   pterm.LogLevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}
