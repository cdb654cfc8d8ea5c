package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitone/internal/backup"
	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/habit"
	"github.com/julianstephens/habitone/internal/lock"
	"github.com/julianstephens/habitone/internal/logger"
	"github.com/julianstephens/habitone/internal/models"
	"github.com/julianstephens/habitone/internal/persistence"
	"github.com/julianstephens/habitone/internal/storage"
	"github.com/julianstephens/habitone/internal/utils"
)

type Context struct {
	Store storage.Provider
	Clock utils.Clock
	Out   io.Writer

	adapter     *persistence.Adapter
	habits      *habit.Store
	lock        *lock.Lock
	writable    bool
	resetOnLoad bool
}

// ConfigDir returns the directory holding logs and the lockfile for a config path
func ConfigDir(configPath string) string {
	if configPath == constants.MemoryConfigPath {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Dir(configPath)
}

// BackupManager returns a backup manager for file-backed stores, or nil for
// the in-memory store
func (c *Context) BackupManager() *backup.Manager {
	if c.Store.GetConfigPath() == constants.MemoryConfigPath {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Clock)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Adapter returns the habit persistence adapter bound to the preference store
func (c *Context) Adapter() *persistence.Adapter {
	if c.adapter == nil {
		c.adapter = persistence.New(c.Store)
	}
	return c.adapter
}

// AcquireLock makes this process the single writer of the preference store.
// In-memory stores are private to the process and need no lockfile.
func (c *Context) AcquireLock() error {
	if c.writable {
		return nil
	}
	if c.Store.GetConfigPath() != constants.MemoryConfigPath {
		l := lock.New(ConfigDir(c.Store.GetConfigPath()))
		if err := l.Acquire(); err != nil {
			return err
		}
		c.lock = l
	}
	c.writable = true
	return nil
}

// ReleaseLock gives up the lock taken by AcquireLock
func (c *Context) ReleaseLock() {
	if c.lock != nil {
		if err := c.lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "path", c.lock.Path(), "error", err)
		}
		c.lock = nil
	}
	c.writable = false
}

// Habits hydrates the habit store on first use and runs the startup reset
// pass. Without the lock the store is read-only: changes are visible to the
// caller but never written back.
func (c *Context) Habits() *habit.Store {
	if c.habits != nil {
		return c.habits
	}

	var p habit.Persister = c.Adapter()
	if !c.writable {
		p = readOnly{c.Adapter()}
	}

	c.habits = habit.NewStore(p, c.Clock)
	c.habits.Subscribe(func(habits []models.Habit) {
		logger.Debug("Habit list changed", "count", len(habits))
	})

	if c.habits.CheckDailyReset() {
		c.resetOnLoad = true
		logger.Info("Reset habits completed on a previous day")
	}
	return c.habits
}

// ResetOnLoad reports whether the startup reset pass changed anything
func (c *Context) ResetOnLoad() bool {
	return c.resetOnLoad
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

type readOnly struct {
	adapter *persistence.Adapter
}

func (r readOnly) Load() []models.Habit { return r.adapter.Load() }
func (r readOnly) Save([]models.Habit) {}
