package syncs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/cli/clitest"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/cloud/sqlite"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/watcher"
)

func seeded() state.State {
	return state.State{Tasks: []models.Task{
		{ID: "t1", Title: "Gym", DurationMinutes: 45, Category: models.CategoryPersonal, Date: "2024-01-01"},
	}}
}

func readSQLite(t *testing.T, path string) *state.State {
	t.Helper()
	store := sqlite.New(path)
	require.NoError(t, store.Load())
	defer store.Close()
	st, err := cloud.NewSyncer(store).Pull(context.Background(), constants.LocalUserID)
	require.NoError(t, err)
	return st
}

func TestSyncPushToAnotherStore(t *testing.T) {
	env := clitest.New(t, seeded())
	dest := filepath.Join(t.TempDir(), "mirror.db")

	require.NoError(t, (&SyncPushCmd{To: dest}).Run(env.Ctx))

	st := readSQLite(t, dest)
	require.NotNil(t, st)
	assert.Len(t, st.Tasks, 1)
	assert.Contains(t, env.Out.String(), "Pushed 1 task(s)")
}

func TestSyncPullFromAnotherStore(t *testing.T) {
	env := clitest.New(t)
	src := filepath.Join(t.TempDir(), "source.db")
	store := sqlite.New(src)
	require.NoError(t, store.Init())
	require.NoError(t, cloud.NewSyncer(store).Push(context.Background(), constants.LocalUserID, seeded()))
	require.NoError(t, store.Close())

	require.NoError(t, (&SyncPullCmd{From: src}).Run(env.Ctx))

	assert.Len(t, env.Ctx.State.Snapshot().Tasks, 1)
	assert.Len(t, env.Saved(t).Tasks, 1)
}

func TestSyncPullWithoutDocument(t *testing.T) {
	env := clitest.New(t)
	require.NoError(t, (&SyncPullCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "No document for local")
}

func TestSyncWatchOnceMirrors(t *testing.T) {
	env := clitest.New(t, seeded())
	dest := filepath.Join(t.TempDir(), "mirror.db")

	require.NoError(t, (&SyncWatchCmd{Once: true, To: dest}).Run(env.Ctx))

	st := readSQLite(t, dest)
	require.NotNil(t, st)
	assert.Len(t, st.Tasks, 1)
	assert.NoFileExists(t, filepath.Join(env.Ctx.ConfigDir, constants.SyncLockfileName))
}

func TestSyncWatchPicksUpRemoteChanges(t *testing.T) {
	env := clitest.New(t, seeded())
	job := &watchJob{ctx: env.Ctx, last: fingerprint(env.Ctx.State.Snapshot())}

	job.run()
	assert.NotContains(t, env.Out.String(), "synced")

	remote := seeded()
	remote.Tasks = append(remote.Tasks, models.Task{ID: "t2", Title: "Read", DurationMinutes: 30, Category: models.CategoryPersonal, Date: "2024-01-02"})
	require.NoError(t, cloud.NewSyncer(env.Store).Push(context.Background(), constants.LocalUserID, remote))

	job.run()
	assert.Contains(t, env.Out.String(), "synced 2 task(s)")
	assert.Len(t, env.Ctx.State.Snapshot().Tasks, 2)
}

func TestSyncWatchReacquiresOwnLock(t *testing.T) {
	env := clitest.New(t)
	lock, err := watcher.Acquire(env.Ctx.ConfigDir)
	require.NoError(t, err)
	defer lock.Release()

	// the lock belongs to this process, so it is treated as ours and taken over
	require.NoError(t, (&SyncWatchCmd{Once: true}).Run(env.Ctx))
}
