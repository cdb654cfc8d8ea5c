package lock

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldGetpid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc = oldFind
		getpidFunc = oldGetpid
	})

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func writeOwner(t *testing.T, l *Lock, content string) {
	t.Helper()
	if err := os.WriteFile(l.Path(), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}
}

func readLock(t *testing.T, l *Lock) string {
	t.Helper()
	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read lockfile: %v", err)
	}
	return string(data)
}

func TestAcquireAndRelease(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone"})
	l := New(t.TempDir())

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := readLock(t, l); got != "100" {
		t.Errorf("lockfile = %q, want %q", got, "100")
	}
	if err := l.Acquire(); err != nil {
		t.Errorf("re-Acquire() by holder error = %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Errorf("lockfile should be removed, stat error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquireHeldByLiveInstance(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone", 200: "habitone"})
	l := New(t.TempDir())
	writeOwner(t, l, "200")

	err := l.Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire() error = %v, want ErrLocked", err)
	}
	if got := readLock(t, l); got != "200" {
		t.Errorf("lockfile = %q, should still belong to pid 200", got)
	}
}

func TestAcquireAfterAnotherInstance(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone", 200: "habitone"})
	dir := t.TempDir()

	getpidFunc = func() int { return 200 }
	first := New(dir)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	getpidFunc = func() int { return 100 }
	second := New(dir)
	if err := second.Acquire(); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire() error = %v, want ErrLocked", err)
	}
	if got := readLock(t, first); got != "200" {
		t.Errorf("lockfile = %q, should still belong to pid 200", got)
	}
}

func TestCreateIsExclusive(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone"})
	l := New(t.TempDir())

	const workers = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		other []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := create(l.Path())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case !errors.Is(err, fs.ErrExist):
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d creates succeeded, want exactly 1", wins)
	}
	if len(other) > 0 {
		t.Errorf("unexpected create errors: %v", other)
	}
}

func TestAcquireEmptyLockfile(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone"})

	t.Run("fresh", func(t *testing.T) {
		l := New(t.TempDir())
		writeOwner(t, l, "")

		if err := l.Acquire(); !errors.Is(err, ErrLocked) {
			t.Fatalf("Acquire() error = %v, want ErrLocked", err)
		}
	})

	t.Run("abandoned", func(t *testing.T) {
		l := New(t.TempDir())
		writeOwner(t, l, "")
		old := time.Now().Add(-time.Minute)
		if err := os.Chtimes(l.Path(), old, old); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}

		if err := l.Acquire(); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if got := readLock(t, l); got != "100" {
			t.Errorf("lockfile = %q, want %q", got, "100")
		}
	})
}

func TestAcquireTakesOverStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		running map[int]string
	}{
		{"owner exited", "200", map[int]string{100: "habitone"}},
		{"pid reused by another program", "200", map[int]string{100: "habitone", 200: "bash"}},
		{"malformed lockfile", "not-a-pid", map[int]string{100: "habitone"}},
		{"own pid", "100", map[int]string{100: "habitone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, 100, tt.running)
			l := New(t.TempDir())
			writeOwner(t, l, tt.owner)

			if err := l.Acquire(); err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			if got := readLock(t, l); got != strconv.Itoa(100) {
				t.Errorf("lockfile = %q, want %q", got, "100")
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "habitone"})
	l := New(t.TempDir())
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// Another instance took over in the meantime
	writeOwner(t, l, "300")

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if got := readLock(t, l); got != "300" {
		t.Errorf("lockfile = %q, foreign lock should be left alone", got)
	}
}
