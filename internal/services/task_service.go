package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-tracker-api/internal/analytics"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskPermissionDenied   = errors.New("user does not have permission to perform this action on the task")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrInvalidPriority        = errors.New("priority must be one of low, medium, high, critical")
	ErrInvalidStatus          = errors.New("status must be one of open, in-progress, pending-approval, closed")
	ErrInvalidTaskAssignee    = errors.New("assignee does not exist")
	ErrInvalidDuration        = errors.New("duration must be a positive number of minutes")
	ErrInvalidEstimate        = errors.New("estimated time must be a positive number of minutes")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TransitionError rejects a status change the workflow does not allow.
type TransitionError struct {
	TaskID uint64
	From   models.TaskStatus
	To     models.TaskStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("task %d cannot move from %s to %s", e.TaskID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TaskService owns tasks and the time logged against them.
type TaskService struct {
	taskRepo  repository.TaskRepository
	entryRepo repository.TimeEntryRepository
	userRepo  repository.UserRepository
	aiService *AIService
	clock     func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	entryRepo repository.TimeEntryRepository,
	userRepo repository.UserRepository,
	aiService *AIService,
) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		aiService: aiService,
		clock:     time.Now,
	}
}

// SetClock replaces the time source used for the trend window and for
// entries logged without a date.
func (s *TaskService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.Priority
	Status        models.TaskStatus
	AssigneeID    uint64
	ReporterID    uint64
	DueDate       *time.Time
	Tags          []string
	EstimatedTime *int
}

// UpdateTaskInput represents a partial update; nil fields are left alone
type UpdateTaskInput struct {
	Title              *string
	Description        *string
	Priority           *models.Priority
	Status             *models.TaskStatus
	AssigneeID         *uint64
	DueDate            *time.Time
	ClearDueDate       bool
	Tags               *[]string
	EstimatedTime      *int
	ClearEstimatedTime bool
}

// AddTimeEntryInput represents input for logging time against a task
type AddTimeEntryInput struct {
	TaskID      uint64
	UserID      uint64
	Duration    int
	Description string
	Date        time.Time
}

// CreateTask validates the input and stores a new task. Status defaults to
// open and priority to medium. Names of the assignee and reporter are
// captured now and not refreshed later.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Status == "" {
		input.Status = models.TaskStatusOpen
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.EstimatedTime != nil && *input.EstimatedTime <= 0 {
		return nil, ErrInvalidEstimate
	}

	assigneeName, err := s.assigneeName(input.AssigneeID)
	if err != nil {
		return nil, err
	}

	var reporterName string
	if input.ReporterID != 0 {
		reporter, err := s.findUser(input.ReporterID)
		if err != nil {
			return nil, err
		}
		reporterName = reporter.Name
	}

	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Priority:      input.Priority,
		Status:        input.Status,
		AssigneeID:    input.AssigneeID,
		AssigneeName:  assigneeName,
		ReporterID:    input.ReporterID,
		ReporterName:  reporterName,
		DueDate:       input.DueDate,
		Tags:          normalizeTags(input.Tags),
		EstimatedTime: input.EstimatedTime,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask merges the provided fields over an existing task. Nothing is
// written when the task is missing or any field is invalid; status changes
// must follow the workflow transition table.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		if !models.CanTransition(task.Status, *input.Status) {
			return nil, &TransitionError{TaskID: task.ID, From: task.Status, To: *input.Status}
		}
		task.Status = *input.Status
	}
	if input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID {
		name, err := s.assigneeName(*input.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = *input.AssigneeID
		task.AssigneeName = name
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = normalizeTags(*input.Tags)
	}
	if input.ClearEstimatedTime {
		task.EstimatedTime = nil
	} else if input.EstimatedTime != nil {
		if *input.EstimatedTime <= 0 {
			return nil, ErrInvalidEstimate
		}
		task.EstimatedTime = input.EstimatedTime
	}

	if err := s.saveTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask deletes a task and every time entry logged against it
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddTimeEntry logs time against a task. The task's time spent is
// recomputed from all of its entries in the same transaction as the insert.
func (s *TaskService) AddTimeEntry(input AddTimeEntryInput) (*models.TimeEntry, error) {
	if input.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	user, err := s.findUser(input.UserID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.clock()
	}

	entry := &models.TimeEntry{
		TaskID:      input.TaskID,
		UserID:      user.ID,
		UserName:    user.Name,
		Duration:    input.Duration,
		Description: input.Description,
		Date:        date,
	}

	if _, err := s.entryRepo.Create(entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to add time entry: %w", err)
	}

	return entry, nil
}

// ListTasks returns every task in store order
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByAssignee returns the tasks assigned to a user in store order
func (s *TaskService) ListTasksByAssignee(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{AssigneeID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTimeEntriesByTask returns the entries of one task in store order
func (s *TaskService) ListTimeEntriesByTask(taskID uint64) ([]models.TimeEntry, error) {
	entries, err := s.entryRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// ListTimeEntries returns every entry in store order
func (s *TaskService) ListTimeEntries() ([]models.TimeEntry, error) {
	entries, err := s.entryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// QueryTasks filters and sorts tasks, optionally only those of one assignee
func (s *TaskService) QueryTasks(query analytics.TaskQuery, assigneeID *uint64) ([]models.Task, error) {
	filter := repository.TaskFilter{AssigneeID: assigneeID}
	if status := models.TaskStatus(query.Status); status.Valid() {
		filter.Status = &status
	}
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return analytics.FilterAndSort(tasks, query), nil
}

// TaskStats counts all tasks by status
func (s *TaskService) TaskStats() (analytics.TaskStats, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return analytics.TaskStats{}, err
	}
	return analytics.Stats(tasks), nil
}

// UserTaskStats counts the tasks assigned to one user and how many are done
func (s *TaskService) UserTaskStats(userID uint64) (analytics.UserTaskStats, error) {
	tasks, err := s.ListTasksByAssignee(userID)
	if err != nil {
		return analytics.UserTaskStats{}, err
	}
	return analytics.ForUser(tasks), nil
}

// UserTimeSummaries aggregates logged time per user
func (s *TaskService) UserTimeSummaries() ([]analytics.UserTimeSummary, error) {
	entries, err := s.ListTimeEntries()
	if err != nil {
		return nil, err
	}
	return analytics.UserTimeSummaries(entries), nil
}

// TaskTimeAnalyses compares logged time with estimates for every task
func (s *TaskService) TaskTimeAnalyses() ([]analytics.TaskTimeAnalysis, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return nil, err
	}
	entries, err := s.ListTimeEntries()
	if err != nil {
		return nil, err
	}
	return analytics.TaskTimeAnalyses(tasks, entries), nil
}

// TotalLogged returns the minutes logged across all tasks
func (s *TaskService) TotalLogged() (int, error) {
	entries, err := s.ListTimeEntries()
	if err != nil {
		return 0, err
	}
	return analytics.TotalLogged(entries), nil
}

// DailyTrend counts the tasks worked on during each of the last days
func (s *TaskService) DailyTrend() ([]analytics.TrendPoint, error) {
	entries, err := s.ListTimeEntries()
	if err != nil {
		return nil, err
	}
	return analytics.DailyTrend(entries, s.clock()), nil
}

// Capabilities tells a presenter which actions the actor may take on task
func (s *TaskService) Capabilities(task models.Task, actor models.User) models.Capabilities {
	return models.CapabilitiesFor(task, actor)
}

// CloseForReview lets the assigned developer submit an open or in-progress
// task for approval
func (s *TaskService) CloseForReview(taskID uint64, actor models.User) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !models.CapabilitiesFor(*task, actor).CanEdit {
		return nil, ErrTaskPermissionDenied
	}
	return s.moveTo(task, models.TaskStatusPendingApproval, models.TaskStatusOpen, models.TaskStatusInProgress)
}

// Approve lets a manager close a task that is pending approval
func (s *TaskService) Approve(taskID uint64, actor models.User) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, ErrTaskPermissionDenied
	}
	return s.moveTo(task, models.TaskStatusClosed, models.TaskStatusPendingApproval)
}

// Reopen lets a manager send a pending or closed task back to in-progress
func (s *TaskService) Reopen(taskID uint64, actor models.User) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, ErrTaskPermissionDenied
	}
	return s.moveTo(task, models.TaskStatusInProgress, models.TaskStatusPendingApproval, models.TaskStatusClosed)
}

func (s *TaskService) moveTo(task *models.Task, to models.TaskStatus, from ...models.TaskStatus) (*models.Task, error) {
	allowed := false
	for _, f := range from {
		if task.Status == f {
			allowed = true
			break
		}
	}
	if !allowed || !models.CanTransition(task.Status, to) {
		return nil, &TransitionError{TaskID: task.ID, From: task.Status, To: to}
	}

	task.Status = to
	if err := s.saveTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

// saveTask writes task back; time spent comes back from the store, never the
// copy read earlier
func (s *TaskService) saveTask(task *models.Task) error {
	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text string
}

// GenerateTasks asks the AI service for task drafts. Drafts are not stored;
// the caller creates the ones it keeps.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	return validateGeneratedTasks(aiTasks, s.clock())
}

func validateGeneratedTasks(aiTasks []GeneratedTask, now time.Time) ([]GeneratedTask, error) {
	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := now.Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.Title) == "" {
			continue
		}
		if !aiTask.Priority.Valid() {
			aiTask.Priority = models.PriorityMedium
		}
		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		if aiTask.EstimatedTime != nil && *aiTask.EstimatedTime <= 0 {
			aiTask.EstimatedTime = nil
		}
		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *TaskService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// assigneeName resolves the display name for an assignee; 0 means unassigned
func (s *TaskService) assigneeName(assigneeID uint64) (string, error) {
	if assigneeID == 0 {
		return "", nil
	}
	user, err := s.findUser(assigneeID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidTaskAssignee
		}
		return "", err
	}
	return user.Name, nil
}

// normalizeTags trims tags and drops empty and repeated ones, keeping the
// first occurrence's position
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	return result
}
