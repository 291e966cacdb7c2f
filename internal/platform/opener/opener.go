// Package opener writes attachment bytes to a temp file and launches the
// platform's default application for it.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
)

// Launcher starts a process without waiting for it to exit.
type Launcher func(name string, args ...string) error

// Opener implements ports.FileOpener
type Opener struct {
	dir    string
	goos   string
	launch Launcher
	logger *logger.Logger
}

// Option configures an Opener
type Option func(*Opener)

// WithDir overrides the directory temp files are written to
func WithDir(dir string) Option {
	return func(o *Opener) { o.dir = dir }
}

// WithLauncher replaces process creation, e.g. in tests
func WithLauncher(l Launcher) Option {
	return func(o *Opener) { o.launch = l }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(o *Opener) { o.logger = l }
}

// New creates an opener that writes to the system temp directory
func New(opts ...Option) *Opener {
	o := &Opener{
		dir:    os.TempDir(),
		goos:   runtime.GOOS,
		launch: startDetached,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithComponent("opener")
	return o
}

// Open writes content to <dir>/<base of fileName> and opens it. Only the base
// name is used so a crafted name cannot escape the temp directory.
func (o *Opener) Open(ctx context.Context, fileName string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(fileName, `\`, "/")))
	if base == "/" || base == "." {
		return "", fmt.Errorf("%w: file name %q", entities.ErrValidation, fileName)
	}

	path := filepath.Join(o.dir, base)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", &entities.StorageError{Op: "write", Path: path, Err: err}
	}

	name, args := Command(o.goos, path)
	if err := o.launch(name, args...); err != nil {
		return "", fmt.Errorf("launch %s: %w", name, err)
	}

	o.logger.Infow("Opened file with system application", "path", path, "command", name)
	return path, nil
}

// Command returns the program and arguments that open path on goos.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/C", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s not found in PATH: %w", name, err)
		}
		return err
	}
	// reap the child once the launcher exits
	go cmd.Wait()
	return nil
}
