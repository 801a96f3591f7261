package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/dto"
	apierrors "github.com/yukikurage/printshop-task-api/internal/errors"
	"github.com/yukikurage/printshop-task-api/internal/middleware"
	"github.com/yukikurage/printshop-task-api/internal/services"
)

type TaskHandler struct {
	taskTreeService *services.TaskTreeService
}

func NewTaskHandler(taskTreeService *services.TaskTreeService) *TaskHandler {
	return &TaskHandler{
		taskTreeService: taskTreeService,
	}
}

// ListTasks returns the task forest of the order loaded by LoadOrder
func (h *TaskHandler) ListTasks(c *gin.Context) {
	order, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.ID,
		"version":  order.Version,
		"tasks":    dto.ToTaskDTOs(order.Tasks),
	})
}

// AttachTask appends a manually created task (with optional subtasks) to an order
func (h *TaskHandler) AttachTask(c *gin.Context) {
	var req dto.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskTreeService.AttachTask(c.Request.Context(), c.Param("id"), dto.ToTaskModel(req))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ReplaceTask overwrites a task anywhere in the order's forest
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	var req dto.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskTreeService.ReplaceTask(c.Request.Context(), c.Param("id"), c.Param("task_id"), dto.ToTaskModel(req))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// RemoveTask deletes a task and everything below it
func (h *TaskHandler) RemoveTask(c *gin.Context) {
	if err := h.taskTreeService.RemoveTask(c.Request.Context(), c.Param("id"), c.Param("task_id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		apierrors.NotFound(c, "Order not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrTaskBelongsToOtherOrder):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConcurrentModification):
		apierrors.Conflict(c, err.Error())
	default:
		log.Printf("task request failed: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
