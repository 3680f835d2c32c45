package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud/sqlite"
	"github.com/julianstephens/harmony/internal/config"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing sqlite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized harmony storage at: %s\n", ctx.Store.Location())

	path, written, err := config.WriteDefault(ctx.ConfigDir)
	if err != nil {
		return err
	}
	if written {
		ctx.Printf("Wrote default settings to: %s\n", path)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("--force only applies to sqlite storage; drop the PostgreSQL schema manually")
	}
	dbPath := store.Location()
	if _, err := os.Stat(dbPath); err == nil {
		// Database exists, close it first to prevent file locking issues
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
