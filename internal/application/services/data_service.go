package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// DataService handles whole-collection export, import and reset
type DataService struct {
	store     ports.DocumentStore
	validator ports.DocumentValidator
	guard     *Guard
	logger    *logger.Logger
}

// NewDataService creates a new data service
func NewDataService(store ports.DocumentStore, validator ports.DocumentValidator, guard *Guard, logger *logger.Logger) *DataService {
	return &DataService{
		store:     store,
		validator: validator,
		guard:     guard,
		logger:    logger.WithComponent("data_service"),
	}
}

// Export returns the task collection as an indented JSON array
func (s *DataService) Export(ctx context.Context) (string, error) {
	var tasks []entities.Task
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.store.LoadTasks(ctx)
		return err
	})
	if err != nil {
		return "", serviceError("export data", err)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", serviceError("export data", fmt.Errorf("encode tasks: %w", err))
	}

	return string(data), nil
}

// Import validates data as a task array and replaces the stored collection
// with it. An invalid document leaves the collection untouched.
func (s *DataService) Import(ctx context.Context, data string) (int, error) {
	if err := s.validator.ValidateTasks([]byte(data)); err != nil {
		return 0, err
	}

	var tasks []entities.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return 0, fmt.Errorf("%w: %v", entities.ErrInvalidDocument, err)
	}

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.store.SaveTasks(ctx, tasks)
	})
	if err != nil {
		return 0, serviceError("import data", err)
	}

	s.logger.Infow("Tasks imported successfully", "count", len(tasks))

	return len(tasks), nil
}

// Clear empties the task collection. Settings are kept.
func (s *DataService) Clear(ctx context.Context) error {
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.store.SaveTasks(ctx, []entities.Task{})
	})
	if err != nil {
		return serviceError("clear data", err)
	}

	s.logger.Infow("All tasks cleared")

	return nil
}

// DataDir returns the absolute data directory
func (s *DataService) DataDir() string {
	return s.store.DataDir()
}
