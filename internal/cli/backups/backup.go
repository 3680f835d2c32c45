package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/harmony/internal/backup"
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	// Perform a manual backup
	mgr := backup.NewManager(ctx.ConfigDir)
	backupPath, err := mgr.Create(ctx.Ctx(), ctx.Store, ctx.UserID())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.ConfigDir)
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.ConfigDir)

	backupPath, err := resolvePath(c.BackupFile, mgr.Dir())
	if err != nil {
		return err
	}
	snap, err := backup.Read(backupPath)
	if err != nil {
		return err
	}
	if snap.UserID != ctx.UserID() {
		ctx.Printf("Note: this backup belongs to %s and will be restored for %s\n", snap.UserID, ctx.UserID())
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace your current data with this backup?").
			Description(fmt.Sprintf("Restore from %s (taken %s).\nA backup of your current data is created first.",
				filepath.Base(backupPath), snap.CreatedAt.Local().Format("2006-01-02 15:04"))).
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	previous, err := mgr.Restore(ctx.Ctx(), ctx.Store, ctx.UserID(), backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		ctx.Printf("Previous data saved to: %s\n", filepath.Base(previous))
	}

	// reload so later output reflects the restored document
	if st, err := ctx.Syncer.Pull(ctx.Ctx(), ctx.UserID()); err == nil && st != nil {
		ctx.State.Replace(*st)
	}
	ctx.Println("✓ Restored successfully!")
	return nil
}

// resolvePath accepts an existing path or a file name inside the backup
// directory.
func resolvePath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
