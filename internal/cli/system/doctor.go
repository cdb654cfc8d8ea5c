package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitone/internal/cli"
	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/persistence"
	"github.com/julianstephens/habitone/internal/storage"
	"github.com/julianstephens/habitone/internal/utils"
	"github.com/julianstephens/habitone/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true

	checks := []check{
		{"Storage reachable", checkStorageReachable},
		{"Schema version", checkSchemaVersion},
		{"Habit data", checkHabitData},
		{"Clock/timezone", checkClock},
	}

	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	for _, c := range checks {
		if !reachable && c.name != "Clock/timezone" {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		if err := c.run(ctx); err != nil {
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
			continue
		}
		ctx.Printf("✓ %s: OK\n", c.name)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// Only SQLite has a schema
		return nil
	}

	current, latest, err := sqliteStore.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current != latest {
		return fmt.Errorf("schema version %d does not match expected version %d", current, latest)
	}
	return nil
}

func checkHabitData(ctx *cli.Context) error {
	data, err := ctx.Store.Get(constants.HabitsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read habits: %w", err)
	}
	habits, err := persistence.Decode(data)
	if err != nil {
		return fmt.Errorf("stored habits will be discarded on load: %w", err)
	}

	result := validation.New().ValidateHabits(habits)
	for _, w := range result.Warnings() {
		ctx.Printf("⚠ %s\n", w.Description)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.IsZero() {
		return fmt.Errorf("clock returned the zero time")
	}
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", utils.FormatDay(now))
	}
	if !utils.IsSameDay(utils.StartOfDay(now), now) {
		return fmt.Errorf("timezone %s has an inconsistent day boundary", now.Location())
	}
	return nil
}
