package ports

import (
	"context"

	"github.com/todoapp/core/internal/domain/entities"
)

// DocumentStore defines the persistence operations for the two on-disk documents.
// Implementations do no locking of their own; callers serialize access.
type DocumentStore interface {
	DataDir() string
	LoadTasks(ctx context.Context) ([]entities.Task, error)
	SaveTasks(ctx context.Context, tasks []entities.Task) error
	LoadSettings(ctx context.Context) (*entities.Settings, error)
	SaveSettings(ctx context.Context, settings *entities.Settings) error
}

// DocumentValidator checks an externally supplied task document before it replaces
// the stored collection.
type DocumentValidator interface {
	ValidateTasks(data []byte) error
}
