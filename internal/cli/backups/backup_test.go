package backups

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/backup"
	"github.com/julianstephens/harmony/internal/cli/clitest"
	"github.com/julianstephens/harmony/internal/cli/tasks"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

func seeded() state.State {
	return state.State{Tasks: []models.Task{
		{ID: "t1", Title: "Gym", DurationMinutes: 45, Category: models.CategoryPersonal, Date: "2024-01-01"},
	}}
}

func TestBackupCreateAndList(t *testing.T) {
	env := clitest.New(t, seeded())

	require.NoError(t, (&BackupListCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "No backups found.")

	require.NoError(t, (&BackupCreateCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "✓ Backup created: harmony-")

	env.Out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "1 total")
}

func TestBackupCreateWithoutDocument(t *testing.T) {
	env := clitest.New(t)
	assert.Error(t, (&BackupCreateCmd{}).Run(env.Ctx))
}

func TestBackupRestore(t *testing.T) {
	env := clitest.New(t, seeded())
	require.NoError(t, (&BackupCreateCmd{}).Run(env.Ctx))

	backups, err := backup.NewManager(env.Ctx.ConfigDir).List()
	require.NoError(t, err)
	require.Len(t, backups, 1)

	require.NoError(t, (&tasks.TaskDeleteCmd{ID: "t1"}).Run(env.Ctx))
	require.Empty(t, env.Saved(t).Tasks)

	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}).Run(env.Ctx))

	assert.Len(t, env.Saved(t).Tasks, 1)
	assert.Len(t, env.Ctx.State.Snapshot().Tasks, 1)
	assert.Contains(t, env.Out.String(), "Previous data saved to:")
}

func TestBackupRestoreMissingFile(t *testing.T) {
	env := clitest.New(t)
	err := (&BackupRestoreCmd{BackupFile: "harmony-nope.json", Yes: true}).Run(env.Ctx)
	assert.ErrorContains(t, err, "backup file not found")
}
