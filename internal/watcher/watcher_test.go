package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/constants"
)

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func withProcesses(t *testing.T, procs map[int]string) {
	t.Helper()
	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return fakeProcess{pid: pid, exe: exe}, nil
	}
	t.Cleanup(func() { findProcessFunc = orig })
}

func writeLock(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.SyncLockfileName), []byte(content), 0600))
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, nil)

	lock, err := Acquire(dir)
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, constants.SyncLockfileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), fmt.Sprintf("%d|", os.Getpid()))

	require.NoError(t, lock.Release())
	assert.NoFileExists(t, filepath.Join(dir, constants.SyncLockfileName))
	assert.NoError(t, lock.Release())
}

func TestAcquireRespectsLiveHolder(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, map[int]string{4242: "harmony"})
	writeLock(t, dir, "4242|harmony")

	_, err := Acquire(dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestAcquireTakesOverStaleLocks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   map[int]string
	}{
		{"dead process", "4242|harmony", nil},
		{"pid reused by another program", "4242|harmony", map[int]string{4242: "postgres"}},
		{"malformed", "garbage", nil},
		{"bad pid", "abc|harmony", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, tt.procs)
			writeLock(t, dir, tt.content)

			lock, err := Acquire(dir)
			require.NoError(t, err)
			assert.NoError(t, lock.Release())
		})
	}
}

func TestWatcherRunsJob(t *testing.T) {
	w := New(time.UTC)
	var runs atomic.Int32
	require.NoError(t, w.Schedule("@every 1s", func() { runs.Add(1) }))

	w.Start()
	assert.False(t, w.Next().IsZero())
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	w.Stop()
}

func TestWatcherRejectsBadSpec(t *testing.T) {
	err := New(nil).Schedule("every now and then", func() {})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrAlreadyRunning))
}

func TestRunning(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, map[int]string{4242: "harmony"})

	_, ok := Running(dir)
	assert.False(t, ok)

	writeLock(t, dir, "4242|harmony")
	pid, ok := Running(dir)
	assert.True(t, ok)
	assert.Equal(t, 4242, pid)
}
