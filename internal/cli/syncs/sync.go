package syncs

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/state"
)

// SyncPushCmd writes the current state to the configured store, or copies it
// to another store with --to.
type SyncPushCmd struct {
	To string `help:"Destination sqlite path or PostgreSQL connection string."`
}

func (c *SyncPushCmd) Run(ctx *cli.Context) error {
	st := ctx.State.Snapshot()
	syncer := ctx.Syncer
	where := ctx.Store.Location()
	if c.To != "" {
		target, err := openTarget(c.To)
		if err != nil {
			return err
		}
		defer target.Close()
		syncer = cloud.NewSyncer(target)
		where = target.Location()
	}
	if err := syncer.Push(ctx.Ctx(), ctx.UserID(), st); err != nil {
		return err
	}
	ctx.Printf("Pushed %s to %s\n", summary(st), where)
	return nil
}

// SyncPullCmd replaces the current state with the user's document from
// another store (--from) and saves it to the configured store. Without
// --from it re-reads the configured store.
type SyncPullCmd struct {
	From string `help:"Source sqlite path or PostgreSQL connection string."`
}

func (c *SyncPullCmd) Run(ctx *cli.Context) error {
	syncer := ctx.Syncer
	where := ctx.Store.Location()
	if c.From != "" {
		source, err := cli.OpenStore(c.From)
		if err != nil {
			return err
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source store: %w", err)
		}
		defer source.Close()
		syncer = cloud.NewSyncer(source)
		where = source.Location()
	}

	st, err := syncer.Pull(ctx.Ctx(), ctx.UserID())
	if err != nil {
		return err
	}
	if st == nil {
		ctx.Printf("No document for %s in %s\n", ctx.UserID(), where)
		return nil
	}
	ctx.State.Replace(*st)
	if c.From != "" {
		if err := ctx.Syncer.Push(ctx.Ctx(), ctx.UserID(), *st); err != nil {
			return err
		}
	}
	ctx.Printf("Pulled %s from %s\n", summary(*st), where)
	return nil
}

// openTarget opens a destination store, creating its schema when needed.
func openTarget(location string) (cloud.DocumentStore, error) {
	target, err := cli.OpenStore(location)
	if err != nil {
		return nil, err
	}
	if err := target.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", target.Location(), err)
	}
	return target, nil
}

func summary(st state.State) string {
	return fmt.Sprintf("%d task(s), %d project(s), %d routine item(s), %d off-time(s), %d chat message(s)",
		len(st.Tasks), len(st.Projects), len(st.Routine), len(st.OffTimes), len(st.Chat))
}
