package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/logger"
	"github.com/julianstephens/habitone/internal/utils"
)

// BackupInfo describes one backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the preference store file into a sibling backups directory
type Manager struct {
	storePath string
	backupDir string
	clock     utils.Clock
}

// NewManager creates a backup manager for the store at storePath
func NewManager(storePath string, clock utils.Clock) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
		clock:     clock,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return !strings.EqualFold(filepath.Ext(m.storePath), ".json")
}

// prefix and ext make backup names like habitone-20261014-093000.db
func (m *Manager) prefix() string {
	return strings.TrimSuffix(filepath.Base(m.storePath), filepath.Ext(m.storePath)) + "-"
}

func (m *Manager) ext() string {
	return filepath.Ext(m.storePath)
}

// CreateBackup copies the store into the backup directory and prunes old backups
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("storage does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.clock.Now().Format(constants.BackupTimestampFormat)
	path := filepath.Join(m.backupDir, m.prefix()+stamp+m.ext())
	for n := 1; fileExists(path); n++ {
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", m.prefix(), stamp, n, m.ext()))
	}

	if m.isSQLite() {
		if err := vacuumInto(m.storePath, path); err != nil {
			return "", fmt.Errorf("failed to backup database: %w", err)
		}
	} else if err := copyFile(m.storePath, path); err != nil {
		return "", fmt.Errorf("failed to backup storage: %w", err)
	}

	logger.Debug("Created backup", "path", path)
	return path, nil
}

// ListBackups returns backups newest first. Files that do not carry a
// parsable timestamp are ignored.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix()) || !strings.HasSuffix(name, m.ext()) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix()), m.ext())
		if len(stamp) > len(constants.BackupTimestampFormat) {
			// drop the -N collision counter
			stamp = stamp[:len(constants.BackupTimestampFormat)]
		}
		ts, err := time.ParseInLocation(constants.BackupTimestampFormat, stamp, m.clock.Now().Location())
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with a backup. The current store is
// backed up first. Callers must close the store before restoring.
func (m *Manager) RestoreBackup(backupPath string) error {
	if !fileExists(backupPath) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if m.isSQLite() {
		if err := verifyDatabase(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if fileExists(m.storePath) {
		if _, err := m.createBackup(); err != nil {
			return fmt.Errorf("failed to backup current storage before restore: %w", err)
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to restore storage: %w", err)
	}
	return nil
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return err
	}
	return nil
}

func verifyDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
