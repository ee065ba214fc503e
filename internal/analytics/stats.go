package analytics

import (
	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskStats counts tasks per workflow status.
type TaskStats struct {
	Open            int `json:"open"`
	InProgress      int `json:"in_progress"`
	Closed          int `json:"closed"`
	PendingApproval int `json:"pending_approval"`
}

// Stats counts tasks by status in a single pass. Tasks with an unknown
// status are not counted anywhere.
func Stats(tasks []models.Task) TaskStats {
	var stats TaskStats
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusOpen:
			stats.Open++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusClosed:
			stats.Closed++
		case models.TaskStatusPendingApproval:
			stats.PendingApproval++
		}
	}
	return stats
}

// UserTaskStats summarizes one user's own tasks for their dashboard.
type UserTaskStats struct {
	TaskStats
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
}

// ForUser counts the given tasks, normally those assigned to one user.
// Tasks pending approval count as completed; the rate is 0 without tasks.
func ForUser(tasks []models.Task) UserTaskStats {
	stats := Stats(tasks)
	return UserTaskStats{
		TaskStats:      stats,
		Total:          len(tasks),
		CompletionRate: CompletionRate(stats.Closed+stats.PendingApproval, len(tasks)),
	}
}

// CompletionRate returns completed/total as a percentage.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
