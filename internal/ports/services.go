package ports

import (
	"context"
	"time"

	"github.com/todoapp/core/internal/domain/entities"
)

// TaskService interface for task management operations
type TaskService interface {
	ListTasks(ctx context.Context) ([]entities.Task, error)
	QueryTasks(ctx context.Context, query TaskQuery) ([]entities.Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
	GetStats(ctx context.Context) (*entities.TaskStats, error)
}

// SettingsService interface for the settings singleton
type SettingsService interface {
	GetSettings(ctx context.Context) (*entities.Settings, error)
	UpdateSettings(ctx context.Context, settings entities.Settings) (*entities.Settings, error)
}

// DataService interface for whole-collection operations
type DataService interface {
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, data string) (int, error)
	Clear(ctx context.Context) error
	DataDir() string
}

// OperationObserver receives the outcome of every gateway operation.
type OperationObserver interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

// FileOpener hands a file to the operating system's default application.
type FileOpener interface {
	Open(ctx context.Context, fileName string, content []byte) (string, error)
}

// Request/Response Types

type CreateTaskRequest struct {
	Title       string                `json:"title" validate:"required,max=500"`
	Description *string               `json:"description" validate:"omitempty,max=5000"`
	Priority    *string               `json:"priority"`
	DueDate     *string               `json:"due_date" validate:"omitempty,max=64"`
	Attachments []entities.Attachment `json:"attachments" validate:"omitempty,dive"`
}

// UpdateTaskRequest carries only the fields to change. A nil field is left
// untouched; there is no way to clear a field back to null.
type UpdateTaskRequest struct {
	Title       *string               `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string               `json:"description" validate:"omitempty,max=5000"`
	Completed   *bool                 `json:"completed"`
	Priority    *string               `json:"priority"`
	DueDate     *string               `json:"due_date" validate:"omitempty,max=64"`
	Attachments []entities.Attachment `json:"attachments" validate:"omitempty,dive"`
}

// TaskQuery narrows and orders a task listing.
type TaskQuery struct {
	Filter entities.TaskFilter `json:"filter" query:"filter"`
	Search string              `json:"search" query:"q"`
	Sorted bool                `json:"sorted" query:"sorted"`
}

type OpenFileRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileData string `json:"file_data" validate:"required"`
	FileType string `json:"file_type"`
}

type ImportRequest struct {
	Data string `json:"data" validate:"required"`
}
