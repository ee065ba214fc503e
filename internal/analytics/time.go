package analytics

import (
	"math"
	"sort"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// UserTimeSummary aggregates the time one user logged.
type UserTimeSummary struct {
	UserID     uint64  `json:"user_id"`
	UserName   string  `json:"user_name"`
	TotalTime  int     `json:"total_time"`
	TaskCount  int     `json:"task_count"`
	AvgPerTask float64 `json:"avg_per_task"`
}

// TaskTimeAnalysis compares the time logged on a task with its estimate.
type TaskTimeAnalysis struct {
	Task               models.Task `json:"task"`
	ActualTime         int         `json:"actual_time"`
	ProgressPercentage float64     `json:"progress_percentage"`
	IsOverEstimate     bool        `json:"is_over_estimate"`
}

// UserTimeSummaries groups entries by user. Users appear in the order of
// their first entry.
func UserTimeSummaries(entries []models.TimeEntry) []UserTimeSummary {
	type accumulator struct {
		summary UserTimeSummary
		tasks   map[uint64]struct{}
	}

	order := make([]uint64, 0)
	byUser := make(map[uint64]*accumulator)

	for _, e := range entries {
		acc, exists := byUser[e.UserID]
		if !exists {
			acc = &accumulator{
				summary: UserTimeSummary{UserID: e.UserID, UserName: e.UserName},
				tasks:   make(map[uint64]struct{}),
			}
			byUser[e.UserID] = acc
			order = append(order, e.UserID)
		}
		acc.summary.TotalTime += e.Duration
		acc.tasks[e.TaskID] = struct{}{}
	}

	summaries := make([]UserTimeSummary, 0, len(order))
	for _, userID := range order {
		acc := byUser[userID]
		acc.summary.TaskCount = len(acc.tasks)
		if acc.summary.TaskCount > 0 {
			acc.summary.AvgPerTask = float64(acc.summary.TotalTime) / float64(acc.summary.TaskCount)
		}
		summaries = append(summaries, acc.summary)
	}
	return summaries
}

// Progress returns actual/estimate as a percentage capped at 100, and whether
// the estimate has been exceeded. Without an estimate both are zero values.
func Progress(actual int, estimate *int) (float64, bool) {
	if estimate == nil || *estimate <= 0 {
		return 0, false
	}
	pct := math.Min(float64(actual)/float64(*estimate)*100, 100)
	return pct, actual > *estimate
}

// TaskTimeAnalyses sums each task's entries and sorts the result by actual
// time, largest first. Ties keep task order.
func TaskTimeAnalyses(tasks []models.Task, entries []models.TimeEntry) []TaskTimeAnalysis {
	actual := make(map[uint64]int, len(tasks))
	for _, e := range entries {
		actual[e.TaskID] += e.Duration
	}

	analyses := make([]TaskTimeAnalysis, 0, len(tasks))
	for _, t := range tasks {
		spent := actual[t.ID]
		pct, over := Progress(spent, t.EstimatedTime)
		analyses = append(analyses, TaskTimeAnalysis{
			Task:               t,
			ActualTime:         spent,
			ProgressPercentage: pct,
			IsOverEstimate:     over,
		})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].ActualTime > analyses[j].ActualTime
	})
	return analyses
}

// TotalLogged sums every entry's duration.
func TotalLogged(entries []models.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Duration
	}
	return total
}
