package logging

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.verbosity))
		})
	}
}

func TestSetupLoggerWritesLogFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	var console bytes.Buffer
	closeLog := SetupLogger(0, WithConsole(&console), WithAnchor("/work/photos"))
	log.Debug().Msg("quiet detail")
	log.Warn().Msg("loud problem")
	closeLog()

	data, err := os.ReadFile(filepath.Join(tempDir, "das", "das.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "quiet detail", "the file keeps debug lines")
	assert.Contains(t, string(data), "loud problem")
	assert.Contains(t, string(data), `"anchor":"/work/photos"`)

	assert.NotContains(t, console.String(), "quiet detail")
	assert.Contains(t, console.String(), "loud problem")
}

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{"debug reaches the file at default verbosity", 0, zerolog.DebugLevel},
		{"debug at -vv", 2, zerolog.DebugLevel},
		{"trace at -vvv", 3, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closeLog := SetupLogger(tt.verbosity, WithConsole(&bytes.Buffer{}), WithLogFile(""))
			defer closeLog()
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestDefaultLogFile(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "das", "das.log"), defaultLogFile())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		assert.Contains(t, filepath.ToSlash(defaultLogFile()), ".local/state/das/das.log")
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("scanner")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"scanner"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand("push", []string{"notes/todo.md"})

	output := buf.String()
	assert.Contains(t, output, "push")
	assert.Contains(t, output, "notes/todo.md")
	assert.Contains(t, output, "Executing command")
}

func TestOperation(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Run("tags lines and logs completion", func(t *testing.T) {
		var buf bytes.Buffer
		logger, done := Operation(zerolog.New(&buf), "copy")
		require.Contains(t, buf.String(), "Operation started")

		logger.Info().Msg("planned")
		assert.Contains(t, buf.String(), `"operation":"copy"`)
		assert.Contains(t, buf.String(), "planned")

		var err error
		done(&err)
		assert.Contains(t, buf.String(), "Operation completed")
		assert.Contains(t, buf.String(), "duration")
		assert.NotContains(t, buf.String(), `"error"`)
	})

	t.Run("records the failure", func(t *testing.T) {
		var buf bytes.Buffer
		_, done := Operation(zerolog.New(&buf), "move")

		err := stderrors.New("disk full")
		done(&err)
		assert.Contains(t, buf.String(), `"error":"disk full"`)
	})
}
