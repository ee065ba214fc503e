package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/analytics"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

const aiRequestTimeout = 60 * time.Second

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of tasks matching the search, status and
// priority filters in the requested order. assignee=me limits the list to
// the actor's own tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	query := analytics.TaskQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		SortBy:   analytics.SortKey(c.Query("sort")),
	}

	var assigneeID *uint64
	if c.Query("assignee") == "me" {
		assigneeID = &actor.ID
	}

	tasks, err := h.taskService.QueryTasks(query, assigneeID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	c.JSON(http.StatusOK, dto.ToTaskListResponse(
		utils.Page(tasks, params),
		utils.NewPaginationResponse(params, len(tasks)),
	))
}

// GetTask returns a task with the actions the actor may take on it
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, actor, ok := taskAndActor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.withCapabilities(task, actor))
}

// CreateTask creates a new task reported by the actor
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title         string            `json:"title" binding:"required"`
		Description   string            `json:"description"`
		Priority      models.Priority   `json:"priority"`
		Status        models.TaskStatus `json:"status"`
		AssigneeID    uint64            `json:"assignee_id"`
		DueDate       *time.Time        `json:"due_date"`
		Tags          []string          `json:"tags"`
		EstimatedTime *int              `json:"estimated_time"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		AssigneeID:    req.AssigneeID,
		ReporterID:    actor.ID,
		DueDate:       req.DueDate,
		Tags:          req.Tags,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.withCapabilities(*task, actor))
}

// UpdateTask updates the provided fields of an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, actor, ok := taskAndActor(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title              *string            `json:"title"`
		Description        *string            `json:"description"`
		Priority           *models.Priority   `json:"priority"`
		Status             *models.TaskStatus `json:"status"`
		AssigneeID         *uint64            `json:"assignee_id"`
		DueDate            *time.Time         `json:"due_date"`
		ClearDueDate       bool               `json:"clear_due_date"`
		Tags               *[]string          `json:"tags"`
		EstimatedTime      *int               `json:"estimated_time"`
		ClearEstimatedTime bool               `json:"clear_estimated_time"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.UpdateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           req.Priority,
		Status:             req.Status,
		AssigneeID:         req.AssigneeID,
		DueDate:            req.DueDate,
		ClearDueDate:       req.ClearDueDate,
		Tags:               req.Tags,
		EstimatedTime:      req.EstimatedTime,
		ClearEstimatedTime: req.ClearEstimatedTime,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.withCapabilities(*updated, actor))
}

// DeleteTask deletes a task and its time entries
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, _, ok := taskAndActor(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// CloseTask submits the actor's task for approval
func (h *TaskHandler) CloseTask(c *gin.Context) {
	h.workflow(c, h.taskService.CloseForReview)
}

// ApproveTask closes a task pending approval
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	h.workflow(c, h.taskService.Approve)
}

// ReopenTask sends a pending or closed task back to in-progress
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	h.workflow(c, h.taskService.Reopen)
}

func (h *TaskHandler) workflow(c *gin.Context, op func(uint64, models.User) (*models.Task, error)) {
	task, actor, ok := taskAndActor(c)
	if !ok {
		return
	}

	updated, err := op(task.ID, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.withCapabilities(*updated, actor))
}

// ListTimeEntries returns the time logged against a task
func (h *TaskHandler) ListTimeEntries(c *gin.Context) {
	task, _, ok := taskAndActor(c)
	if !ok {
		return
	}

	entries, err := h.taskService.ListTimeEntriesByTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time_entries": dto.ToTimeEntryDTOs(entries),
		"total":        analytics.TotalLogged(entries),
	})
}

// AddTimeEntry logs the actor's time against a task and returns the entry
// together with the task's new time spent
func (h *TaskHandler) AddTimeEntry(c *gin.Context) {
	task, actor, ok := taskAndActor(c)
	if !ok {
		return
	}

	type AddTimeEntryRequest struct {
		Duration    int        `json:"duration"`
		Description string     `json:"description"`
		Date        *time.Time `json:"date"`
	}

	var req AddTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	input := services.AddTimeEntryInput{
		TaskID:      task.ID,
		UserID:      actor.ID,
		Duration:    req.Duration,
		Description: req.Description,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	entry, err := h.taskService.AddTimeEntry(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	updated, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"time_entry": dto.ToTimeEntryDTO(*entry),
		"task":       dto.ToTaskDTO(*updated),
	})
}

// SuggestTasks drafts tasks from free text using AI. Nothing is stored.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required,min=10,max=5000"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiRequestTimeout)
	defer cancel()

	drafts, err := h.taskService.GenerateTasks(ctx, services.GenerateTasksInput{Text: req.Text})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
		"count": len(drafts),
	})
}

func (h *TaskHandler) withCapabilities(task models.Task, actor models.User) dto.TaskDTO {
	return dto.ToTaskDTOWithCapabilities(task, h.taskService.Capabilities(task, actor))
}

// taskAndActor reads what RequireAuth and RequireTaskAccess stored
func taskAndActor(c *gin.Context) (models.Task, models.User, bool) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return models.Task{}, models.User{}, false
	}

	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, models.User{}, false
	}

	return task, actor, true
}

func respondTaskError(c *gin.Context, err error) {
	var transitionErr *services.TransitionError
	switch {
	case errors.As(err, &transitionErr):
		apierrors.InvalidTransition(c, err.Error(), gin.H{
			"from": transitionErr.From,
			"to":   transitionErr.To,
		})
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrInvalidDuration),
		errors.Is(err, services.ErrInvalidEstimate),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
