package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	return &buf
}

func TestSetupLoggerLevels(t *testing.T) {
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previousLevel) })

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity, "")
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	previousLevel := zerolog.GlobalLevel()
	previous := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(previousLevel)
		log.Logger = previous
	})

	logFile := filepath.Join(t.TempDir(), "nested", "jackman.log")
	SetupLogger(1, logFile)
	log.Info().Msg("written to file")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
}

func TestDefaultLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()

	path, err := DefaultLogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stateHome, "jackman", "jackman.log"), path)
	assert.DirExists(t, filepath.Join(stateHome, "jackman"))
}

func TestGetLogger(t *testing.T) {
	buf := captureLogs(t)

	logger := GetLogger("alias")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"alias"`)
}

func TestLogRewrite(t *testing.T) {
	captureLogs(t)
	var out bytes.Buffer

	LogRewrite(&out, []string{"gcc", "-c", "_jackman/ad884951a73c822f/baz.c", "-DNAME=a b"})

	assert.Equal(t, ">>> [jackman] REWRITE: gcc -c _jackman/ad884951a73c822f/baz.c '-DNAME=a b'\n", out.String())
}

func TestLogPerf(t *testing.T) {
	captureLogs(t)
	var out bytes.Buffer

	LogPerf(&out, time.Now().Add(-5*time.Millisecond))

	line := out.String()
	assert.True(t, strings.HasPrefix(line, ">>> [jackman] PERF: "), line)
	assert.True(t, strings.HasSuffix(line, " ms\n"), line)
	assert.Regexp(t, `^>>> \[jackman\] PERF: \d+\.\d{2} ms\n$`, line)
}

func TestLogDuration(t *testing.T) {
	buf := captureLogs(t)

	LogDuration(time.Now().Add(-5*time.Second), "test-operation")

	output := buf.String()
	assert.Contains(t, output, "test-operation")
	assert.Contains(t, output, "duration")
}
