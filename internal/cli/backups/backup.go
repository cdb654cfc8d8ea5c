package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitone/internal/backup"
	"github.com/julianstephens/habitone/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups found in %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%s)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), formatSize(b.Size))
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore (file name or full path)."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	if err := ctx.AcquireLock(); err != nil {
		return err
	}
	defer ctx.ReleaseLock()

	path := c.Path
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to reopen restored storage: %w", err)
	}

	ctx.Printf("Restored %s from %s\n", ctx.Store.GetConfigPath(), path)
	return nil
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil, fmt.Errorf("backups are not available for in-memory storage")
	}
	return mgr, nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
