package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-tracker-api/internal/analytics"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

func (suite *TaskHandlerTestSuite) TestStats_TaskCounts() {
	suite.createTestTask("a", models.TaskStatusOpen, suite.developer)
	suite.createTestTask("b", models.TaskStatusOpen, suite.developer)
	suite.createTestTask("c", models.TaskStatusPendingApproval, suite.other)

	handler := NewStatsHandler(suite.taskService)
	c, w := suite.createAuthContext("GET", "/api/stats/tasks", nil, suite.developer)

	handler.TaskStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response analytics.TaskStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), analytics.TaskStats{Open: 2, PendingApproval: 1}, response)
}

func (suite *TaskHandlerTestSuite) TestStats_MyTasks() {
	handler := NewStatsHandler(suite.taskService)

	c, w := suite.createAuthContext("GET", "/api/stats/me", nil, suite.developer)
	handler.MyTaskStats(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var empty analytics.UserTaskStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Equal(suite.T(), analytics.UserTaskStats{}, empty)

	suite.createTestTask("open", models.TaskStatusOpen, suite.developer)
	suite.createTestTask("in progress", models.TaskStatusInProgress, suite.developer)
	suite.createTestTask("pending", models.TaskStatusPendingApproval, suite.developer)
	suite.createTestTask("closed", models.TaskStatusClosed, suite.developer)
	suite.createTestTask("not mine", models.TaskStatusClosed, suite.other)

	c, w = suite.createAuthContext("GET", "/api/stats/me", nil, suite.developer)
	handler.MyTaskStats(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var mine analytics.UserTaskStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Equal(suite.T(), analytics.TaskStats{Open: 1, InProgress: 1, Closed: 1, PendingApproval: 1}, mine.TaskStats)
	assert.Equal(suite.T(), 4, mine.Total)
	assert.Equal(suite.T(), 50.0, mine.CompletionRate)
}

func (suite *TaskHandlerTestSuite) TestStats_TimeReports() {
	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	suite.taskService.SetClock(func() time.Time { return now })

	estimate := 60
	task, err := suite.taskService.CreateTask(services.CreateTaskInput{
		Title:         "estimated",
		AssigneeID:    suite.developer.ID,
		EstimatedTime: &estimate,
	})
	suite.Require().NoError(err)
	_, err = suite.taskService.AddTimeEntry(services.AddTimeEntryInput{TaskID: task.ID, UserID: suite.developer.ID, Duration: 90})
	suite.Require().NoError(err)

	handler := NewStatsHandler(suite.taskService)

	c, w := suite.createAuthContext("GET", "/api/stats/users", nil, suite.manager)
	handler.UserTime(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var users struct {
		Users []analytics.UserTimeSummary `json:"users"`
		Total int                         `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	suite.Require().Len(users.Users, 1)
	assert.Equal(suite.T(), 90, users.Total)

	c, w = suite.createAuthContext("GET", "/api/stats/task-time", nil, suite.manager)
	handler.TaskTime(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks struct {
		Tasks []analytics.TaskTimeAnalysis `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks.Tasks, 1)
	assert.Equal(suite.T(), 100.0, tasks.Tasks[0].ProgressPercentage)
	assert.True(suite.T(), tasks.Tasks[0].IsOverEstimate)

	c, w = suite.createAuthContext("GET", "/api/stats/trend", nil, suite.developer)
	handler.Trend(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var trend struct {
		Days []analytics.TrendPoint `json:"days"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &trend))
	suite.Require().Len(trend.Days, 7)
	assert.Equal(suite.T(), analytics.TrendPoint{Date: "2024-01-17", Tasks: 1}, trend.Days[6])
}
