package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter in insertion order
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.Model(&models.Task{})
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Scopes(database.InsertionOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes every field of task except time_spent, which only the time
// entry repository maintains. The row is locked for the write and task's
// TimeSpent is refreshed from it. It returns gorm.ErrRecordNotFound when the
// task no longer exists.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "time_spent").
			First(&current, task.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(task).
			Select("*").
			Omit("id", "time_spent", "created_at").
			Updates(task).Error; err != nil {
			return err
		}

		task.TimeSpent = current.TimeSpent
		return nil
	})
}

// Delete removes a task and cascades to its time entries in one transaction.
// It returns gorm.ErrRecordNotFound when no task has the given id.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.ForTask(id)).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
