package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/harmony/internal/constants"
	apperrors "github.com/julianstephens/harmony/internal/errors"
	"github.com/julianstephens/harmony/internal/keyring"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultRoutineModel, cfg.Models.Routine)
	assert.Equal(t, constants.DefaultChatModel, cfg.Models.Chat)
	assert.Equal(t, constants.DefaultSyncSchedule, cfg.Sync.Schedule)
	assert.Empty(t, cfg.File)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "models:\n  chat: gemini-2.5-flash\nauth:\n  client_id: from-file\ntimezone: UTC\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))
	t.Setenv("HARMONY_AUTH_CLIENT_ID", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Models.Chat)
	assert.Equal(t, constants.DefaultBreakdownModel, cfg.Models.Breakdown)
	assert.Equal(t, "from-env", cfg.Auth.ClientID)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("timezone: Mars/Olympus\n"), 0600))
	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid timezone")
}

func TestResolveAPIKey(t *testing.T) {
	gokeyring.MockInit()

	_, err := ResolveAPIKey("")
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)

	require.NoError(t, keyring.SetAPIKey("stored"))
	key, err := ResolveAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "stored", key)

	key, err = ResolveAPIKey(" explicit ")
	require.NoError(t, err)
	assert.Equal(t, "explicit", key)
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "harmony")

	path, written, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.True(t, written)
	assert.FileExists(t, path)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, constants.DefaultSyncSchedule, cfg.Sync.Schedule)

	_, written, err = WriteDefault(dir)
	require.NoError(t, err)
	assert.False(t, written)
}
