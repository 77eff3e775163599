package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv(LogFileEnv, "/tmp/custom/moopad.log")
		assert.Equal(t, "/tmp/custom/moopad.log", getLogFilePath())
	})

	t.Run("xdg state home", func(t *testing.T) {
		t.Setenv(LogFileEnv, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		xdg.Reload()
		t.Cleanup(xdg.Reload)

		assert.Equal(t, filepath.Join("/custom/state", "moopad", "moopad.log"), getLogFilePath())
	})
}

func TestSetupLoggerWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "moopad.log")
	t.Setenv(LogFileEnv, logPath)

	SetupLogger(1)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })

	log.Info().Msg("hello from test")
	assert.FileExists(t, logPath)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })

	logger := GetLogger("executor")
	logger.Info().Msg("launching")
	assert.Contains(t, buf.String(), `"component":"executor"`)

	buf.Reset()
	logger = WithFields(map[string]interface{}{"stage": "lint"})
	logger.Info().Msg("stage")
	assert.Contains(t, buf.String(), `"stage":"lint"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })

	done := LogOperationStart(logger, "run-stage")
	require.Contains(t, buf.String(), "Operation started")
	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
