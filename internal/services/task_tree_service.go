package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/printshop-task-api/internal/constants"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrTitleRequired           = errors.New("title is required")
	ErrInvalidTaskStatus       = errors.New("status must be one of todo, in_progress, done")
	ErrConcurrentModification  = errors.New("order tasks kept changing concurrently; giving up")
	ErrTaskBelongsToOtherOrder = errors.New("task belongs to a different order")
)

// TaskTreeService mutates the task forest stored on an order.
//
// Each mutation reads the order, edits a copy of its tasks and writes the
// whole forest back. Mutations on one order are serialized in-process, and
// the write only lands if the order's version is unchanged, so writers in
// other processes cannot silently overwrite each other either.
type TaskTreeService struct {
	orderRepo   repository.OrderRepository
	locks       *orderLocks
	maxAttempts int
	newID       func() string
	now         func() time.Time
}

// NewTaskTreeService creates a new TaskTreeService. maxAttempts below one
// falls back to the default.
func NewTaskTreeService(orderRepo repository.OrderRepository, maxAttempts int) *TaskTreeService {
	if maxAttempts < 1 {
		maxAttempts = constants.DefaultMutationMaxAttempts
	}
	return &TaskTreeService{
		orderRepo:   orderRepo,
		locks:       newOrderLocks(),
		maxAttempts: maxAttempts,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// AttachTask appends task to the top level of the order's forest and returns
// the stored copy.
func (s *TaskTreeService) AttachTask(ctx context.Context, orderID string, task models.Task) (*models.Task, error) {
	if err := validateIncoming(task, orderID); err != nil {
		return nil, err
	}

	var stored models.Task
	err := s.mutate(ctx, orderID, func(tasks []models.Task) ([]models.Task, error) {
		if task.ID == "" {
			task.ID = s.newID()
		}
		stored = s.prepare(task, orderID)
		return append(tasks, stored), nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ReplaceTask swaps the task identified by taskID, anywhere in the forest,
// for replacement. The replacement keeps taskID, the original creation time
// and the original parent link.
func (s *TaskTreeService) ReplaceTask(ctx context.Context, orderID, taskID string, replacement models.Task) (*models.Task, error) {
	if err := validateIncoming(replacement, orderID); err != nil {
		return nil, err
	}

	var stored models.Task
	err := s.mutate(ctx, orderID, func(tasks []models.Task) ([]models.Task, error) {
		current, ok := models.FindTask(tasks, taskID)
		if !ok {
			return nil, ErrTaskNotFound
		}

		replacement.ID = taskID
		replacement.ParentTaskID = current.ParentTaskID
		if !current.CreatedAt.IsZero() {
			replacement.CreatedAt = current.CreatedAt
		}
		stored = s.prepare(replacement, orderID)

		out, _ := models.ReplaceTask(tasks, taskID, stored)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// RemoveTask deletes the task identified by taskID and its subtree.
func (s *TaskTreeService) RemoveTask(ctx context.Context, orderID, taskID string) error {
	return s.mutate(ctx, orderID, func(tasks []models.Task) ([]models.Task, error) {
		out, ok := models.RemoveTask(tasks, taskID)
		if !ok {
			return nil, ErrTaskNotFound
		}
		return out, nil
	})
}

// ListTasks returns the order's current task forest
func (s *TaskTreeService) ListTasks(ctx context.Context, orderID string) ([]models.Task, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order.Tasks, nil
}

// mutate runs one read-modify-write cycle, retrying on version conflicts.
func (s *TaskTreeService) mutate(ctx context.Context, orderID string, edit func([]models.Task) ([]models.Task, error)) error {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to find order: %w", err)
		}

		tasks, err := edit(cloneTasks(order.Tasks))
		if err != nil {
			return err
		}

		err = s.orderRepo.UpdateTasks(ctx, orderID, order.Version, tasks)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrVersionConflict):
			log.Printf("order %s: task update lost a version race (attempt %d/%d)", orderID, attempt, s.maxAttempts)
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrOrderNotFound
		default:
			return fmt.Errorf("failed to update order tasks: %w", err)
		}
	}

	return ErrConcurrentModification
}

// prepare stamps a caller-supplied task, and any subtasks it carries, for
// storage on orderID. task.ID must already be set.
func (s *TaskTreeService) prepare(task models.Task, orderID string) models.Task {
	now := s.now()
	task.OrderID = orderID
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	subtasks := make([]models.Task, len(task.Subtasks))
	for i, sub := range task.Subtasks {
		if sub.ID == "" {
			sub.ID = s.newID()
		}
		sub.ParentTaskID = task.ID
		subtasks[i] = s.prepare(sub, orderID)
	}
	task.Subtasks = subtasks
	return task
}

// validateIncoming checks a caller-supplied task tree before it is stored on orderID
func validateIncoming(task models.Task, orderID string) error {
	if task.Title == "" {
		return ErrTitleRequired
	}
	if task.OrderID != "" && task.OrderID != orderID {
		return ErrTaskBelongsToOtherOrder
	}
	if task.Status != "" && !task.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	if task.Priority != "" && !task.Priority.Valid() {
		return ErrInvalidPriority
	}
	for _, sub := range task.Subtasks {
		if err := validateIncoming(sub, orderID); err != nil {
			return err
		}
	}
	return nil
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		t.Subtasks = cloneTasks(t.Subtasks)
		out[i] = t
	}
	return out
}
