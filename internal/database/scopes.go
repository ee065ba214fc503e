package database

import (
	"gorm.io/gorm"
)

// InsertionOrder sorts rows by their auto-increment id, which is the order
// they were stored in.
func InsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ForTask restricts a time entry query to one task.
func ForTask(taskID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("task_id = ?", taskID)
	}
}
