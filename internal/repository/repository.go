package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task and assigns its ID
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks in insertion order
	List(filter TaskFilter) ([]models.Task, error)

	// Update saves an existing task; time_spent is never written from task
	Update(task *models.Task) error

	// Delete removes a task together with its time entries
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssigneeID *uint64
	Status     *models.TaskStatus
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	// Create appends an entry and returns the task's recomputed time spent
	Create(entry *models.TimeEntry) (int, error)

	// ListByTask lists the entries of one task in insertion order
	ListByTask(taskID uint64) ([]models.TimeEntry, error)

	// List lists every entry in insertion order
	List() ([]models.TimeEntry, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List lists all users ordered by ID
	List() ([]models.User, error)
}
