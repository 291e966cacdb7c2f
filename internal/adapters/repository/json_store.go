package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

const (
	tasksFile    = "tasks.json"
	settingsFile = "settings.json"
)

// ResolveDataDir returns override when set, otherwise <home>/<dirName>.
func ResolveDataDir(override, dirName string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", entities.ErrHomeDirUnavailable, err)
	}
	return filepath.Join(home, dirName), nil
}

// EnsureDataDir creates dir and its parents if missing.
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.StorageError{Op: "create directory", Path: dir, Err: err}
	}
	return nil
}

// JSONStoreImpl implements the DocumentStore interface on two pretty-printed
// JSON files. Unparseable documents are replaced by their defaults unless the
// store is strict.
type JSONStoreImpl struct {
	dataDir string
	strict  bool
	logger  *logger.Logger
}

// Option configures a JSONStoreImpl
type Option func(*JSONStoreImpl)

// WithStrictRead makes unparseable documents an error instead of a default.
func WithStrictRead(strict bool) Option {
	return func(s *JSONStoreImpl) { s.strict = strict }
}

// WithLogger sets the logger used to report lenient-read fallbacks.
func WithLogger(l *logger.Logger) Option {
	return func(s *JSONStoreImpl) { s.logger = l }
}

// NewJSONStore creates the data directory and returns a store rooted there.
func NewJSONStore(dataDir string, opts ...Option) (ports.DocumentStore, error) {
	if err := EnsureDataDir(dataDir); err != nil {
		return nil, err
	}
	s := &JSONStoreImpl{dataDir: dataDir, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("json_store")
	return s, nil
}

func (s *JSONStoreImpl) DataDir() string {
	return s.dataDir
}

func (s *JSONStoreImpl) tasksPath() string {
	return filepath.Join(s.dataDir, tasksFile)
}

func (s *JSONStoreImpl) settingsPath() string {
	return filepath.Join(s.dataDir, settingsFile)
}

func (s *JSONStoreImpl) LoadTasks(ctx context.Context) ([]entities.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.tasksPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entities.Task{}, nil
		}
		return nil, &entities.StorageError{Op: "read", Path: path, Err: err}
	}

	var tasks []entities.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		if s.strict {
			return nil, &entities.StorageError{Op: "parse", Path: path, Err: fmt.Errorf("%w: %v", entities.ErrCorruptDocument, err)}
		}
		s.logger.LogLenientFallback("tasks", path, err)
		return []entities.Task{}, nil
	}
	if tasks == nil {
		tasks = []entities.Task{}
	}

	return tasks, nil
}

func (s *JSONStoreImpl) SaveTasks(ctx context.Context, tasks []entities.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tasks == nil {
		tasks = []entities.Task{}
	}
	return writeDocument(s.tasksPath(), tasks)
}

func (s *JSONStoreImpl) LoadSettings(ctx context.Context) (*entities.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.settingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			defaults := entities.DefaultSettings()
			if err := writeDocument(path, &defaults); err != nil {
				return nil, err
			}
			return &defaults, nil
		}
		return nil, &entities.StorageError{Op: "read", Path: path, Err: err}
	}

	// Fields missing from the file keep their default values.
	settings := entities.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		if s.strict {
			return nil, &entities.StorageError{Op: "parse", Path: path, Err: fmt.Errorf("%w: %v", entities.ErrCorruptDocument, err)}
		}
		s.logger.LogLenientFallback("settings", path, err)
		defaults := entities.DefaultSettings()
		return &defaults, nil
	}

	return &settings, nil
}

func (s *JSONStoreImpl) SaveSettings(ctx context.Context, settings *entities.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeDocument(s.settingsPath(), settings)
}

// writeDocument replaces path with the indented JSON encoding of v. The content
// goes to a temp file in the same directory first and is renamed over path, so a
// failed write never leaves a truncated document behind.
func writeDocument(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &entities.StorageError{Op: "encode", Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &entities.StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &entities.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &entities.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &entities.StorageError{Op: "write", Path: path, Err: err}
	}

	return nil
}
