package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/harmony/internal/auth"
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cli/backups"
	"github.com/julianstephens/harmony/internal/cli/chats"
	"github.com/julianstephens/harmony/internal/cli/offtimes"
	"github.com/julianstephens/harmony/internal/cli/plans"
	"github.com/julianstephens/harmony/internal/cli/projects"
	"github.com/julianstephens/harmony/internal/cli/routines"
	"github.com/julianstephens/harmony/internal/cli/syncs"
	"github.com/julianstephens/harmony/internal/cli/system"
	"github.com/julianstephens/harmony/internal/cli/tasks"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/cloud/postgres"
	"github.com/julianstephens/harmony/internal/config"
	"github.com/julianstephens/harmony/internal/constants"
	apperrors "github.com/julianstephens/harmony/internal/errors"
	"github.com/julianstephens/harmony/internal/keyring"
	"github.com/julianstephens/harmony/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Document store: a sqlite file path or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring ('config set-db'), PGPASSWORD or .pgpass. Defaults to the keyring connection string, then ${default_store}." env:"HARMONY_DB" type:"string"`
	Debug    bool   `help:"Log debug output to stderr." env:"HARMONY_DEBUG"`
	LogLevel string `name:"log-level" help:"Log file level (debug|info|warn|error)." env:"HARMONY_LOG_LEVEL"`
	APIKey   string `name:"api-key" help:"Gemini API key." env:"API_KEY"`

	Init   system.InitCmd   `cmd:"" help:"Initialize harmony storage."`
	Login  system.LoginCmd  `cmd:"" help:"Sign in with Google."`
	Logout system.LogoutCmd `cmd:"" help:"Sign out."`
	Whoami system.WhoamiCmd `cmd:"" help:"Show the signed-in user."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Today  plans.TodayCmd   `cmd:"" help:"Show the next priority and today's tasks."`
	Day    plans.DayCmd     `cmd:"" help:"Show the workloads, routine and off-time for a day."`
	Chat   chats.ChatCmd    `cmd:"" help:"Talk to the planning assistant."`
	Task   struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Toggle a task's completion."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Project struct {
		Add          projects.ProjectAddCmd          `cmd:"" help:"Add a project."`
		List         projects.ProjectListCmd         `cmd:"" help:"List projects."`
		Delete       projects.ProjectDeleteCmd       `cmd:"" help:"Delete a project and its tasks."`
		Breakdown    projects.ProjectBreakdownCmd    `cmd:"" help:"Break a project down into dated subtasks."`
		BreakdownAll projects.ProjectBreakdownAllCmd `cmd:"" name:"breakdown-all" help:"Break down every project that has not been broken down."`
	} `cmd:"" help:"Manage projects."`
	Routine struct {
		Generate routines.RoutineGenerateCmd `cmd:"" help:"Generate the weekly routine from a description."`
		List     routines.RoutineListCmd     `cmd:"" help:"Show the weekly routine." default:"1"`
		Add      routines.RoutineAddCmd      `cmd:"" help:"Add a routine block."`
		Edit     routines.RoutineEditCmd     `cmd:"" help:"Edit a routine block."`
		Toggle   routines.RoutineToggleCmd   `cmd:"" help:"Toggle a weekday on a routine block."`
		Delete   routines.RoutineDeleteCmd   `cmd:"" help:"Delete a routine block."`
	} `cmd:"" help:"Manage the weekly routine."`
	Offtime struct {
		Add      offtimes.OffTimeAddCmd      `cmd:"" help:"Add an off-time."`
		List     offtimes.OffTimeListCmd     `cmd:"" help:"List off-times." default:"1"`
		SetStart offtimes.OffTimeSetStartCmd `cmd:"" name:"set-start" help:"Change an off-time's start date."`
		SetEnd   offtimes.OffTimeSetEndCmd   `cmd:"" name:"set-end" help:"Change a range off-time's end date."`
		Delete   offtimes.OffTimeDeleteCmd   `cmd:"" help:"Delete an off-time."`
	} `cmd:"" help:"Manage off-times."`
	Sync struct {
		Push  syncs.SyncPushCmd  `cmd:"" help:"Save the current document."`
		Pull  syncs.SyncPullCmd  `cmd:"" help:"Load the document from a store."`
		Watch syncs.SyncWatchCmd `cmd:"" help:"Pull the document on a schedule."`
	} `cmd:"" help:"Synchronize the document store."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage document backups."`
	Settings struct {
		SetKey    system.ConfigSetKeyCmd    `cmd:"" name:"set-key" help:"Store the Gemini API key in the OS keyring."`
		DeleteKey system.ConfigDeleteKeyCmd `cmd:"" name:"delete-key" help:"Remove the Gemini API key from the OS keyring."`
		SetDB     system.ConfigSetDBCmd     `cmd:"" name:"set-db" help:"Store a PostgreSQL connection string in the OS keyring."`
		DeleteDB  system.ConfigDeleteDBCmd  `cmd:"" name:"delete-db" help:"Remove the PostgreSQL connection string from the OS keyring."`
		Show      system.ConfigShowCmd      `cmd:"" help:"Show the effective configuration." default:"1"`
	} `cmd:"" name:"config" help:"Manage settings and credentials."`
}

// commands that run without hydrating the state
var skipOpen = map[string]bool{
	"init":   true,
	"login":  true,
	"logout": true,
	"whoami": true,
	"doctor": true,
	"config": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal task and schedule planner with an AI assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"default_store": constants.DefaultStorePath,
		},
	)

	configDir := cli.ExpandHome(constants.DefaultConfigDir)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir, Level: CLI.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer func() { _ = logger.Close() }()

	cfg, err := config.Load(configDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	appCtx := &cli.Context{
		Config:    cfg,
		ConfigDir: configDir,
		Store:     store,
		APIKey:    CLI.APIKey,
		Out:       os.Stdout,
		Now:       func() time.Time { return time.Now().In(loc) },
	}
	if cfg.Auth.ClientID != "" {
		appCtx.Auth = auth.NewGoogle(auth.GoogleConfig{
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
		})
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if selected := ctx.Selected(); selected != nil && !skipOpen[rootCommand(selected)] {
		if err := appCtx.Open(runCtx); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		apperrors.Fatal(err)
	}
}

// openStore uses the flag when given, then the keyring connection string,
// then the default sqlite file.
func openStore(location string) (cloud.DocumentStore, error) {
	if location != "" {
		return cli.OpenStore(location)
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		logger.Debug("Using connection string from keyring")
		return postgres.New(connStr), nil
	case !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
		logger.Warn("Failed to read connection string from keyring", "error", err)
	}
	return cli.OpenStore(constants.DefaultStorePath)
}

func rootCommand(n *kong.Node) string {
	for n.Parent != nil && n.Parent.Type == kong.CommandNode {
		n = n.Parent
	}
	return n.Name
}
