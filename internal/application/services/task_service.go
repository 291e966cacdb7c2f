package services

import (
	"context"
	"errors"
	"time"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	store  ports.DocumentStore
	guard  *Guard
	logger *logger.Logger
	now    func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(store ports.DocumentStore, guard *Guard, logger *logger.Logger) *TaskService {
	return &TaskService{
		store:  store,
		guard:  guard,
		logger: logger.WithComponent("task_service"),
		now:    time.Now,
	}
}

// ListTasks returns the stored collection in insertion order
func (s *TaskService) ListTasks(ctx context.Context) ([]entities.Task, error) {
	var tasks []entities.Task
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.store.LoadTasks(ctx)
		return err
	})
	if err != nil {
		return nil, serviceError("list tasks", err)
	}

	return tasks, nil
}

// QueryTasks filters, searches and optionally sorts the collection
func (s *TaskService) QueryTasks(ctx context.Context, query ports.TaskQuery) ([]entities.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filter := entities.ParseTaskFilter(string(query.Filter))
	matched := make([]entities.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].MatchesFilter(filter, now) && tasks[i].MatchesSearch(query.Search) {
			matched = append(matched, tasks[i])
		}
	}

	if query.Sorted {
		entities.SortTasks(matched)
	}

	return matched, nil
}

// CreateTask appends a new task to the collection
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	priority := entities.PriorityMedium
	if req.Priority != nil {
		priority = entities.ParsePriority(*req.Priority)
	}

	task := entities.NewTask(req.Title, req.Description, priority, req.DueDate, req.Attachments)

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		tasks, err := s.store.LoadTasks(ctx)
		if err != nil {
			return err
		}
		return s.store.SaveTasks(ctx, append(tasks, *task))
	})
	if err != nil {
		return nil, serviceError("create task", err)
	}

	s.logger.Infow("Task created successfully", "task_id", task.ID, "title", task.Title)

	return task.Clone(), nil
}

// UpdateTask applies the fields present in req to the task with the given id.
// It returns ErrTaskNotFound, unwrapped, when no task has that id.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	var updated *entities.Task
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		tasks, err := s.store.LoadTasks(ctx)
		if err != nil {
			return err
		}

		idx := indexOf(tasks, id)
		if idx < 0 {
			return entities.ErrTaskNotFound
		}

		task := &tasks[idx]
		applyUpdate(task, req)
		task.Touch()

		if err := s.store.SaveTasks(ctx, tasks); err != nil {
			return err
		}
		updated = task.Clone()
		return nil
	})
	if err != nil {
		return nil, serviceError("update task", err)
	}

	s.logger.Infow("Task updated successfully", "task_id", updated.ID, "title", updated.Title)

	return updated, nil
}

// DeleteTask removes every task with the given id and reports whether any was removed
func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		tasks, err := s.store.LoadTasks(ctx)
		if err != nil {
			return err
		}

		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID == id {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		if !removed {
			return nil
		}
		return s.store.SaveTasks(ctx, kept)
	})
	if err != nil {
		return false, serviceError("delete task", err)
	}

	if removed {
		s.logger.Infow("Task deleted successfully", "task_id", id)
	}

	return removed, nil
}

// GetStats loads the collection and aggregates it
func (s *TaskService) GetStats(ctx context.Context) (*entities.TaskStats, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(tasks, s.now())
	return &stats, nil
}

// ComputeStats counts tasks by completion, due date and priority. It does not
// touch storage.
func ComputeStats(tasks []entities.Task, now time.Time) entities.TaskStats {
	stats := entities.TaskStats{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			stats.Completed++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.IsDueOn(now) {
			stats.Today++
		}
		switch entities.ParsePriority(string(t.Priority)) {
		case entities.PriorityHigh:
			stats.HighPriority++
		case entities.PriorityLow:
			stats.LowPriority++
		default:
			stats.MediumPriority++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

func applyUpdate(task *entities.Task, req ports.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Priority != nil {
		task.Priority = entities.ParsePriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Attachments != nil {
		task.SetAttachments(req.Attachments)
	}
}

func indexOf(tasks []entities.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// serviceError wraps store and guard failures. Not-found is an outcome, not a
// failure, so it passes through as is.
func serviceError(op string, err error) error {
	if errors.Is(err, entities.ErrTaskNotFound) {
		return err
	}
	return &entities.ServiceError{Op: op, Err: err}
}
