package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitone/internal/cli"
	"github.com/julianstephens/habitone/internal/cli/backups"
	"github.com/julianstephens/habitone/internal/cli/habits"
	"github.com/julianstephens/habitone/internal/cli/system"
	"github.com/julianstephens/habitone/internal/constants"
	apperrors "github.com/julianstephens/habitone/internal/errors"
	"github.com/julianstephens/habitone/internal/logger"
	"github.com/julianstephens/habitone/internal/storage"
	"github.com/julianstephens/habitone/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Storage path: a SQLite database, a .json file, or :memory:." type:"string" default:"${config}"`
	Timezone string `help:"IANA timezone used for the daily reset boundary." default:"Local"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitone storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`

	Add    habits.HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   habits.HabitListCmd   `cmd:"" help:"List today's habits."`
	Toggle habits.HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for today."`
	Reset  habits.HabitResetCmd  `cmd:"" help:"Reset habits completed on a previous day."`
	Clear  habits.HabitClearCmd  `cmd:"" help:"Delete all habits."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("One screen, a handful of habits, reset every day"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	if CLI.Config != constants.MemoryConfigPath {
		CLI.Config = kong.ExpandPath(CLI.Config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cli.ConfigDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if !utils.ValidateTimezone(CLI.Timezone) {
		apperrors.Fatal(fmt.Errorf("invalid timezone %q", CLI.Timezone))
	}
	clock, err := utils.NewSystemClock(CLI.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store := storage.NewProvider(CLI.Config)
	logger.Debug("Opening storage", "path", store.GetConfigPath())

	// Init handles its own loading; every other command creates storage on first run
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			if !errors.Is(err, storage.ErrNotInitialized) {
				apperrors.Fatal(err)
			}
			logger.Info("Creating storage on first run", "path", store.GetConfigPath())
			if err := store.Init(); err != nil {
				apperrors.Fatal(err)
			}
		}
	}

	appCtx := &cli.Context{
		Store: store,
		Clock: clock,
		Out:   os.Stdout,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}
