package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/auth"
	"github.com/julianstephens/harmony/internal/backup"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/config"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/planner"
	"github.com/julianstephens/harmony/internal/state"
)

// Context is shared by every command. Open must run before commands that
// touch state.
type Context struct {
	Config    config.Config
	ConfigDir string
	Store     cloud.DocumentStore
	Auth      auth.Provider
	APIKey    string
	Out       io.Writer
	Now       func() time.Time
	// NewAI builds the model client on first use. Defaults to Gemini.
	NewAI func(ctx context.Context, apiKey string) (ai.Service, error)

	State  *state.Store
	Syncer *cloud.Syncer

	ctx     context.Context
	userID  string
	planner *planner.Planner
}

// Open loads the document store and hydrates the state for the current
// user. Every later dispatch is saved back.
func (c *Context) Open(ctx context.Context) error {
	c.ctx = ctx
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.Syncer = cloud.NewSyncer(c.Store)
	c.userID = auth.UserIDOrLocal(c.Auth)
	c.State = state.NewStore(state.State{})

	// a failed read must not be followed by saves that clobber the remote fields
	st, err := c.Syncer.Pull(ctx, c.userID)
	if err != nil {
		return err
	}
	if st != nil {
		c.State.Replace(*st)
	}
	c.Syncer.AutoSave(ctx, c.userID, c.State)
	logger.Debug("State hydrated", "user", c.userID, "store", c.Store.Location(), "found", st != nil)
	return nil
}

// Ctx returns the context passed to Open.
func (c *Context) Ctx() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// UserID is the signed-in user's id, or the local user.
func (c *Context) UserID() string {
	if c.userID == "" {
		c.userID = auth.UserIDOrLocal(c.Auth)
	}
	return c.userID
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Today() string {
	return c.Clock().Format(constants.DateFormat)
}

// Planner builds the model-backed planner, resolving the API key on first
// use so commands that never call the model work without one.
func (c *Context) Planner() (*planner.Planner, error) {
	if c.planner != nil {
		return c.planner, nil
	}
	key, err := config.ResolveAPIKey(c.APIKey)
	if err != nil {
		return nil, err
	}
	newAI := c.NewAI
	if newAI == nil {
		newAI = func(ctx context.Context, key string) (ai.Service, error) {
			return ai.NewGemini(ctx, key)
		}
	}
	svc, err := newAI(c.Ctx(), key)
	if err != nil {
		return nil, err
	}
	c.planner = planner.New(c.State, svc, planner.Config{
		RoutineModel:   c.Config.Models.Routine,
		BreakdownModel: c.Config.Models.Breakdown,
		ChatModel:      c.Config.Models.Chat,
		Now:            c.Clock,
	})
	return c.planner, nil
}

// PerformAutomaticBackup snapshots the user's document and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.ConfigDir)
	if _, err := mgr.Create(c.Ctx(), c.Store, c.UserID()); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.writer(), args...)
}
