package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/harmony/internal/backup"
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/config"
	"github.com/julianstephens/harmony/internal/keyring"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/watcher"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks print a warning instead of failing the command
	warnOnly bool
	// needsStore checks are skipped when the store is unreachable
	needsStore bool
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Document readable", run: checkDocument, needsStore: true},
	{name: "Data validation", run: checkValidation, needsStore: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "API key", run: checkAPIKey, warnOnly: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	storeReachable := true
	for _, c := range checks {
		if c.needsStore && !storeReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Store reachable" {
				storeReachable = false
			}
		}
	}

	ctx.Println()
	ctx.Printf("ℹ User: %s\n", ctx.UserID())
	if pid, ok := watcher.Running(ctx.ConfigDir); ok {
		ctx.Printf("ℹ Sync watcher running (pid %d)\n", pid)
	}

	ctx.Println()
	if hasError {
		ctx.Println("❌ Some checks failed.")
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Println("✓ All checks passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func loadDocument(ctx *cli.Context) (*state.State, error) {
	return cloud.NewSyncer(ctx.Store).Pull(ctx.Ctx(), ctx.UserID())
}

func checkDocument(ctx *cli.Context) error {
	_, err := loadDocument(ctx)
	return err
}

func checkValidation(ctx *cli.Context) error {
	st, err := loadDocument(ctx)
	if err != nil || st == nil {
		return err
	}

	var errs []error
	projects := make(map[string]bool, len(st.Projects))
	for _, p := range st.Projects {
		projects[p.ID] = true
		if err := models.Validate(p); err != nil {
			errs = append(errs, err)
		}
	}
	for _, t := range st.Tasks {
		if err := models.Validate(t); err != nil {
			errs = append(errs, err)
		}
		if t.ProjectRef != "" && !projects[t.ProjectRef] {
			errs = append(errs, fmt.Errorf("task %q references missing project %s", t.Title, t.ProjectRef))
		}
	}
	for _, r := range st.Routine {
		if err := models.Validate(r); err != nil {
			errs = append(errs, err)
		}
	}
	for _, o := range st.OffTimes {
		if err := models.Validate(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := backup.NewManager(ctx.ConfigDir).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found (run 'harmony backup create')")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkAPIKey(ctx *cli.Context) error {
	_, err := config.ResolveAPIKey(ctx.APIKey)
	return err
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
