package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Config{ConfigDir: dir}))

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())
}

func TestInitDebugLevel(t *testing.T) {
	require.NoError(t, Init(Config{ConfigDir: t.TempDir(), Debug: true}))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestInitLevelOverride(t *testing.T) {
	require.NoError(t, Init(Config{ConfigDir: t.TempDir(), Debug: true, Level: "error"}))
	t.Cleanup(func() { _ = Close() })
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(Config{ConfigDir: t.TempDir(), Level: "loud"})
	t.Cleanup(func() { _ = Close() })
	assert.Error(t, err)
	require.NotNil(t, Logger)
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())
}

func TestCloseWithoutInit(t *testing.T) {
	file = nil
	assert.NoError(t, Close())
}

func TestUseWriterCapturesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	UseWriter(&buf, log.DebugLevel)
	t.Cleanup(func() { Logger = nil })

	Error("breakdown failed", "project", "p1")

	assert.Contains(t, buf.String(), "breakdown failed")
	assert.Contains(t, buf.String(), "project=p1")
}

func TestNilLoggerIsSafe(t *testing.T) {
	Logger = nil
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}
