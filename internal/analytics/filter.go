package analytics

import (
	"sort"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

type SortKey string

const (
	SortByPriority  SortKey = "priority"
	SortByDueDate   SortKey = "dueDate"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
)

// TaskQuery describes a filtered, sorted task list. Empty or "all" status
// and priority mean no filter; an unknown SortBy falls back to updatedAt.
type TaskQuery struct {
	Search   string
	Status   string
	Priority string
	SortBy   SortKey
}

// FilterAndSort returns the tasks matching q in q's order. The input slice
// is not modified.
func FilterAndSort(tasks []models.Task, q TaskQuery) []models.Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if !matchesFilter(q.Status, string(t.Status)) || !matchesFilter(q.Priority, string(t.Priority)) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, lessFunc(filtered, q.SortBy))
	return filtered
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == constants.FilterAll || filter == value
}

func lessFunc(tasks []models.Task, key SortKey) func(i, j int) bool {
	switch key {
	case SortByPriority:
		return func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		}
	case SortByDueDate:
		return func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		}
	case SortByCreatedAt:
		return func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
	default:
		return func(i, j int) bool {
			return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
		}
	}
}
