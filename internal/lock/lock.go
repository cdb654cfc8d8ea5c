package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/logger"
)

var (
	// ErrLocked is returned when another live habitone process holds the lock
	ErrLocked = errors.New("another habitone instance is running")

	errEmptyLockfile = errors.New("lockfile is empty")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// emptyLockGrace is how long an empty lockfile counts as an owner still
// writing its PID
const emptyLockGrace = 5 * time.Second

// Lock is an exclusive lockfile guarding the preference store
type Lock struct {
	path string
	held bool
}

// New returns a lock stored in dir
func New(dir string) *Lock {
	return &Lock{path: filepath.Join(dir, constants.LockfileName)}
}

func (l *Lock) Path() string {
	return l.path
}

// Acquire creates the lockfile holding the current PID. Creation is
// exclusive, so two instances starting together cannot both win. An existing
// lockfile is taken over when its owner is gone or is not a habitone process.
func (l *Lock) Acquire() error {
	if l.held {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	err := create(l.path)
	if errors.Is(err, fs.ErrExist) {
		if err := l.checkOwner(); err != nil {
			return err
		}
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
		err = create(l.path)
		if errors.Is(err, fs.ErrExist) {
			// Another instance took the stale lock first
			return ErrLocked
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}

	l.held = true
	return nil
}

// checkOwner returns ErrLocked if the existing lockfile belongs to a live
// instance, and nil if it may be taken over
func (l *Lock) checkOwner() error {
	pid, err := readOwner(l.path)
	switch {
	case errors.Is(err, errEmptyLockfile):
		if info, statErr := os.Stat(l.path); statErr == nil && time.Since(info.ModTime()) < emptyLockGrace {
			return ErrLocked
		}
	case err == nil:
		if pid != getpidFunc() && isHabitone(pid) {
			return fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
	}
	logger.Debug("Taking over stale lockfile", "path", l.path, "pid", pid)
	return nil
}

// Release removes the lockfile if this process holds it
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false

	pid, err := readOwner(l.path)
	if err != nil || pid != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// create makes the lockfile only if it does not exist yet
func create(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strconv.Itoa(getpidFunc())); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func readOwner(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return 0, errEmptyLockfile
	}
	pid, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func isHabitone(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
