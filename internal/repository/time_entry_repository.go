package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create inserts the entry and rewrites the owning task's time_spent as the
// sum of all its entries, all under one transaction with the task row locked.
// It returns gorm.ErrRecordNotFound, and stores nothing, when the task is missing.
func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) (int, error) {
	var total int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&task, entry.TaskID).Error; err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.TimeEntry{}).
			Scopes(database.ForTask(entry.TaskID)).
			Select("COALESCE(SUM(duration), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		return tx.Model(&task).Update("time_spent", total).Error
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// ListByTask lists the entries of one task in insertion order
func (r *GormTimeEntryRepository) ListByTask(taskID uint64) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	if err := r.db.Scopes(database.ForTask(taskID), database.InsertionOrder).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// List lists every entry in insertion order
func (r *GormTimeEntryRepository) List() ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	if err := r.db.Scopes(database.InsertionOrder).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
