package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskQueue is the subset of the task client used by the admin endpoints.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue              TaskQueue
	auditRetentionDays int
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue, auditRetentionDays int) *TasksController {
	return &TasksController{queue: queue, auditRetentionDays: auditRetentionDays}
}

type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type TaskEnqueuedResponse struct {
	TaskID string `json:"task_id"`
	Type   string `json:"type"`
}

type TaskStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ListTaskTypes handles GET /api/admin/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	jobs := tasks.MaintenanceJobs()
	types := make([]TaskTypeInfo, 0, len(jobs))
	for _, job := range jobs {
		types = append(types, TaskTypeInfo{Type: job.Name, Description: job.Description})
	}
	respondOK(c, "task types retrieved", types)
}

// RunTask handles POST /api/admin/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	task, err := tasks.MaintenanceTask(taskType, tc.auditRetentionDays)
	if err != nil {
		respondError(c, services.ErrInvalidRequest("type", err.Error()))
		return
	}

	id, err := tc.queue.Enqueue(task)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, "task enqueued", TaskEnqueuedResponse{TaskID: id, Type: taskType})
}

// GetTaskStatus handles GET /api/admin/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "task status retrieved", TaskStatusResponse{ID: taskID, Status: taskStatusToString(status)})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
