package models

import "time"

// TimeEntry records Duration minutes of work on a task. Date is when the work
// happened, CreatedAt when the record was inserted.
type TimeEntry struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	UserName    string    `gorm:"type:varchar(255)" json:"user_name"`
	Duration    int       `gorm:"not null" json:"duration"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
