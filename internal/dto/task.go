package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Priority      models.Priority      `json:"priority"`
	Status        models.TaskStatus    `json:"status"`
	AssigneeID    uint64               `json:"assignee_id"`
	AssigneeName  string               `json:"assignee_name"`
	ReporterID    uint64               `json:"reporter_id"`
	ReporterName  string               `json:"reporter_name"`
	DueDate       *time.Time           `json:"due_date"`
	Tags          []string             `json:"tags"`
	TimeSpent     int                  `json:"time_spent"`
	EstimatedTime *int                 `json:"estimated_time"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Capabilities  *models.Capabilities `json:"capabilities,omitempty"`
}

// TimeEntryDTO represents a time entry in API responses
type TimeEntryDTO struct {
	ID          uint64    `json:"id"`
	TaskID      uint64    `json:"task_id"`
	UserID      uint64    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Duration    int       `json:"duration"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	return TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      task.Priority,
		Status:        task.Status,
		AssigneeID:    task.AssigneeID,
		AssigneeName:  task.AssigneeName,
		ReporterID:    task.ReporterID,
		ReporterName:  task.ReporterName,
		DueDate:       task.DueDate,
		Tags:          tags,
		TimeSpent:     task.TimeSpent,
		EstimatedTime: task.EstimatedTime,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskDTOWithCapabilities converts a task and attaches what the caller may do with it
func ToTaskDTOWithCapabilities(task models.Task, caps models.Capabilities) TaskDTO {
	dto := ToTaskDTO(task)
	dto.Capabilities = &caps
	return dto
}

// ToTimeEntryDTO converts a TimeEntry model to TimeEntryDTO
func ToTimeEntryDTO(entry models.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:          entry.ID,
		TaskID:      entry.TaskID,
		UserID:      entry.UserID,
		UserName:    entry.UserName,
		Duration:    entry.Duration,
		Description: entry.Description,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
	}
}

// ToTimeEntryDTOs converts a slice of time entries
func ToTimeEntryDTOs(entries []models.TimeEntry) []TimeEntryDTO {
	items := make([]TimeEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToTimeEntryDTO(entry)
	}
	return items
}

// ToTaskListResponse converts one page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, pagination utils.PaginationResponse) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: pagination,
	}
}
