// Package instance keeps a second copy of the application from running
// against the same data directory.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrAlreadyRunning is returned when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is an exclusive OS file lock. The OS drops it when the process exits,
// crashes included.
type Lock struct {
	path string
	file *os.File
}

// Acquire takes the lock named name in the system temp directory.
func Acquire(name string) (*Lock, error) {
	return AcquireIn(os.TempDir(), name)
}

// AcquireIn takes the lock <dir>/<name>.lock without waiting. When another
// process holds it the error wraps ErrAlreadyRunning and names the holder.
func AcquireIn(dir, name string) (*Lock, error) {
	path := filepath.Join(dir, name+".lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	l := &Lock{path: path, file: f}
	if err := l.tryLock(); err != nil {
		holder := readHolder(path)
		f.Close()
		return nil, fmt.Errorf("%w (holder %s)", ErrAlreadyRunning, holder)
	}

	l.writeHolder()
	return l, nil
}

// Path returns the lock file location
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.file.Truncate(0)
	l.unlock()
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Lock) writeHolder() {
	l.file.Truncate(0)
	l.file.Seek(0, 0)
	fmt.Fprintf(l.file, "pid:%d\ntime:%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	l.file.Sync()
}

func readHolder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}

	var pid, since string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		switch {
		case strings.HasPrefix(line, "pid:"):
			pid = strings.TrimPrefix(line, "pid:")
		case strings.HasPrefix(line, "time:"):
			since = strings.TrimPrefix(line, "time:")
		}
	}
	if pid == "" {
		return "unknown"
	}

	if n, err := strconv.Atoi(pid); err == nil && !isProcessAlive(n) {
		return fmt.Sprintf("pid:%s since %s (stale)", pid, since)
	}
	return fmt.Sprintf("pid:%s since %s", pid, since)
}
