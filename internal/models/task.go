package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusOpen            TaskStatus = "open"
	TaskStatusInProgress      TaskStatus = "in-progress"
	TaskStatusPendingApproval TaskStatus = "pending-approval"
	TaskStatusClosed          TaskStatus = "closed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusPendingApproval, TaskStatusClosed:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities low < medium < high < critical. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Task is a unit of trackable work. AssigneeName and ReporterName are
// snapshots taken when the identity was attached and are never re-synced.
type Task struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Priority      Priority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	AssigneeID    uint64     `gorm:"index" json:"assignee_id"`
	AssigneeName  string     `gorm:"type:varchar(255)" json:"assignee_name"`
	ReporterID    uint64     `gorm:"index" json:"reporter_id"`
	ReporterName  string     `gorm:"type:varchar(255)" json:"reporter_name"`
	DueDate       *time.Time `json:"due_date"`
	Tags          []string   `gorm:"type:text;serializer:json" json:"tags"`
	TimeSpent     int        `gorm:"not null;default:0" json:"time_spent"`
	EstimatedTime *int       `json:"estimated_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	TimeEntries []TimeEntry `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}
