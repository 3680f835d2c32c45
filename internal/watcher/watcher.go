// Package watcher runs the periodic sync job on a cron schedule and guards
// it with a lockfile so only one watcher runs per config directory.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
)

// ErrAlreadyRunning means a live watcher holds the lockfile.
var ErrAlreadyRunning = errors.New("another sync watcher is already running")

var findProcessFunc = ps.FindProcess

// Lock is a pid lockfile of the form "pid|executable".
type Lock struct {
	path string
}

// Acquire takes the lockfile in dir. A lockfile left by a process that is
// gone, or now belongs to another program, is taken over.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, constants.SyncLockfileName)
	if holder, ok := liveHolder(path); ok {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, holder)
	}

	exe := filepath.Base(os.Args[0])
	content := fmt.Sprintf("%d|%s", os.Getpid(), exe)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Running reports the pid of the live watcher holding dir's lockfile.
func Running(dir string) (int, bool) {
	return liveHolder(filepath.Join(dir, constants.SyncLockfileName))
}

func liveHolder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pidStr, exe, ok := strings.Cut(strings.TrimSpace(string(content)), "|")
	if !ok {
		logger.Warn("Ignoring malformed sync lockfile", "path", path)
		return 0, false
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid == os.Getpid() {
		return 0, false
	}
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return 0, false
	}
	if !strings.HasPrefix(proc.Executable(), strings.TrimSuffix(exe, filepath.Ext(exe))) {
		return 0, false
	}
	return pid, true
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Watcher runs one job on a cron schedule. Runs never overlap.
type Watcher struct {
	cron *cron.Cron
}

func New(loc *time.Location) *Watcher {
	if loc == nil {
		loc = time.Local
	}
	return &Watcher{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Schedule registers job under a standard five-field spec or a descriptor
// such as "@every 1m" or "@hourly".
func (w *Watcher) Schedule(spec string, job func()) error {
	if _, err := w.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return nil
}

func (w *Watcher) Start() {
	w.cron.Start()
}

// Stop waits for a running job to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// Next returns when the job runs next, zero before Start.
func (w *Watcher) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
