package analytics

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

const dayLayout = "2006-01-02"

// TrendPoint is the number of distinct tasks worked on during one day.
type TrendPoint struct {
	Date  string `json:"date"`
	Tasks int    `json:"tasks"`
}

// DailyTrend covers the constants.TrendDays calendar days ending on now's
// day, oldest first. A task counts on a day when at least one of its entries
// is dated that day in now's location.
func DailyTrend(entries []models.TimeEntry, now time.Time) []TrendPoint {
	loc := now.Location()

	tasksByDay := make(map[string]map[uint64]struct{})
	for _, e := range entries {
		key := e.Date.In(loc).Format(dayLayout)
		if tasksByDay[key] == nil {
			tasksByDay[key] = make(map[uint64]struct{})
		}
		tasksByDay[key][e.TaskID] = struct{}{}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	points := make([]TrendPoint, 0, constants.TrendDays)
	for i := constants.TrendDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dayLayout)
		points = append(points, TrendPoint{Date: key, Tasks: len(tasksByDay[key])})
	}
	return points
}
