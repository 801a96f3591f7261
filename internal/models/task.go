package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known task priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a production task. Tasks are stored as a JSON forest on their order,
// so the struct carries no gorm tags of its own.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	Deadline      string       `json:"deadline"`
	EstimatedTime int          `json:"estimated_time"`
	OrderID       string       `json:"order_id"`
	IngredientID  string       `json:"ingredient_id,omitempty"`
	ParentTaskID  string       `json:"parent_task_id,omitempty"`
	Subtasks      []Task       `json:"subtasks"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TaskTemplate is a reusable blueprint attached to a recipe ingredient.
type TaskTemplate struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority,omitempty"`
	EstimatedTime int          `json:"estimated_time,omitempty"`
	IngredientID  string       `json:"ingredient_id,omitempty"`
}
