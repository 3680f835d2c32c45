package syncs

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/watcher"
)

// SyncWatchCmd pulls the user's document on a schedule and reports changes
// made elsewhere. With --to every change is mirrored to a second store.
type SyncWatchCmd struct {
	Schedule string `help:"Cron spec or descriptor; defaults to the sync.schedule setting (@every 1m)."`
	To       string `help:"Mirror changes to this sqlite path or PostgreSQL connection string."`
	Once     bool   `help:"Sync once and exit."`
}

type watchJob struct {
	ctx    *cli.Context
	mirror *cloud.Syncer

	mu   sync.Mutex
	last []byte
}

func (c *SyncWatchCmd) Run(ctx *cli.Context) error {
	lock, err := watcher.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release sync lock", "error", err)
		}
	}()

	job := &watchJob{ctx: ctx, last: fingerprint(ctx.State.Snapshot())}
	if c.To != "" {
		target, err := openTarget(c.To)
		if err != nil {
			return err
		}
		defer target.Close()
		job.mirror = cloud.NewSyncer(target)
		// the first pass mirrors whatever is there now
		job.last = nil
	}

	job.run()
	if c.Once {
		return nil
	}

	schedule := c.Schedule
	if schedule == "" {
		schedule = ctx.Config.Sync.Schedule
	}
	w := watcher.New(ctx.Clock().Location())
	if err := w.Schedule(schedule, job.run); err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	ctx.Printf("Watching %s (%s), next sync at %s. Press Ctrl+C to stop.\n",
		ctx.Store.Location(), schedule, w.Next().Format("15:04:05"))
	<-ctx.Ctx().Done()
	return nil
}

func (j *watchJob) run() {
	ctx := j.ctx
	st, err := ctx.Syncer.Pull(ctx.Ctx(), ctx.UserID())
	if err != nil {
		logger.Error("Sync pull failed", "error", err)
		ctx.Printf("Sync failed: %v\n", err)
		return
	}
	if st == nil {
		logger.Debug("Sync found no document", "user", ctx.UserID())
		return
	}

	fp := fingerprint(*st)
	j.mu.Lock()
	changed := !bytes.Equal(fp, j.last)
	j.last = fp
	j.mu.Unlock()
	if !changed {
		logger.Debug("Sync found no changes", "user", ctx.UserID())
		return
	}

	ctx.State.Replace(*st)
	ctx.Printf("%s  synced %s\n", ctx.Clock().Format("15:04:05"), summary(*st))
	if j.mirror != nil {
		if err := j.mirror.Push(ctx.Ctx(), ctx.UserID(), *st); err != nil {
			logger.Error("Sync mirror failed", "error", err)
			ctx.Printf("Mirror failed: %v\n", err)
		}
	}
}

func fingerprint(st state.State) []byte {
	doc, err := cloud.EncodeState(st)
	if err != nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return raw
}
