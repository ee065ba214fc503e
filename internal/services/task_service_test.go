package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker-api/internal/analytics"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// TaskServiceTestSuite exercises the task store against an in-memory database
type TaskServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *TaskService
	developer *models.User
	manager   *models.User
	other     *models.User
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = database.OpenInMemory()
	suite.Require().NoError(err)

	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewTimeEntryRepository(suite.db),
		repository.NewUserRepository(suite.db),
		nil,
	)

	suite.developer = suite.createUser("John Developer", "dev@example.com", models.RoleDeveloper)
	suite.manager = suite.createUser("Jane Manager", "manager@example.com", models.RoleManager)
	suite.other = suite.createUser("Bob Developer", "bob@example.com", models.RoleDeveloper)
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createUser(name, email string, role models.Role) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "hashedpassword", Role: role}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTask(title string, status models.TaskStatus) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:       title,
		Description: title + " description",
		Status:      status,
		AssigneeID:  suite.developer.ID,
		ReporterID:  suite.manager.ID,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) logTime(taskID uint64, minutes int) {
	_, err := suite.service.AddTimeEntry(AddTimeEntryInput{
		TaskID:   taskID,
		UserID:   suite.developer.ID,
		Duration: minutes,
	})
	suite.Require().NoError(err)
}

func (suite *TaskServiceTestSuite) TestCreateTask_DefaultsAndSnapshots() {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:       "Fix login authentication bug",
		Description: "Users are unable to login",
		AssigneeID:  suite.developer.ID,
		ReporterID:  suite.manager.ID,
		Tags:        []string{"bug", " authentication ", "bug", ""},
	})
	suite.Require().NoError(err)

	suite.NotZero(task.ID)
	suite.Equal(models.TaskStatusOpen, task.Status)
	suite.Equal(models.PriorityMedium, task.Priority)
	suite.Equal("John Developer", task.AssigneeName)
	suite.Equal("Jane Manager", task.ReporterName)
	suite.Equal([]string{"bug", "authentication"}, task.Tags)
	suite.Equal(0, task.TimeSpent)
	suite.False(task.CreatedAt.IsZero())
	suite.True(task.CreatedAt.Equal(task.UpdatedAt))

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"bug", "authentication"}, stored.Tags)
}

func (suite *TaskServiceTestSuite) TestCreateTask_Validation() {
	_, err := suite.service.CreateTask(CreateTaskInput{Title: "  "})
	suite.ErrorIs(err, ErrTitleRequired)

	_, err = suite.service.CreateTask(CreateTaskInput{Title: "t", Priority: "urgent"})
	suite.ErrorIs(err, ErrInvalidPriority)

	_, err = suite.service.CreateTask(CreateTaskInput{Title: "t", Status: "done"})
	suite.ErrorIs(err, ErrInvalidStatus)

	_, err = suite.service.CreateTask(CreateTaskInput{Title: "t", AssigneeID: 9999})
	suite.ErrorIs(err, ErrInvalidTaskAssignee)

	zero := 0
	_, err = suite.service.CreateTask(CreateTaskInput{Title: "t", EstimatedTime: &zero})
	suite.ErrorIs(err, ErrInvalidEstimate)

	tasks, err := suite.service.ListTasks()
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnassignedIsAllowed() {
	task, err := suite.service.CreateTask(CreateTaskInput{Title: "triage me"})
	suite.Require().NoError(err)
	suite.Zero(task.AssigneeID)
	suite.Empty(task.AssigneeName)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_MergesProvidedFields() {
	task := suite.createTask("Old title", models.TaskStatusOpen)
	originalCreatedAt := task.CreatedAt

	title := "New title"
	priority := models.PriorityCritical
	status := models.TaskStatusInProgress
	tags := []string{"ui", "ui", "feature"}
	estimate := 120
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{
		Title:         &title,
		Priority:      &priority,
		Status:        &status,
		Tags:          &tags,
		EstimatedTime: &estimate,
	})
	suite.Require().NoError(err)

	suite.Equal("New title", updated.Title)
	suite.Equal("Old title description", updated.Description)
	suite.Equal(models.PriorityCritical, updated.Priority)
	suite.Equal(models.TaskStatusInProgress, updated.Status)
	suite.Equal([]string{"ui", "feature"}, updated.Tags)
	suite.Require().NotNil(updated.EstimatedTime)
	suite.Equal(120, *updated.EstimatedTime)

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal("New title", stored.Title)
	suite.True(stored.CreatedAt.Equal(originalCreatedAt))
	suite.False(stored.UpdatedAt.Before(originalCreatedAt))
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ClearsOptionalFields() {
	due := time.Now().Add(48 * time.Hour)
	estimate := 60
	task, err := suite.service.CreateTask(CreateTaskInput{Title: "dated", DueDate: &due, EstimatedTime: &estimate})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{ClearDueDate: true, ClearEstimatedTime: true})
	suite.Require().NoError(err)
	suite.Nil(updated.DueDate)
	suite.Nil(updated.EstimatedTime)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_MissingTaskChangesNothing() {
	suite.createTask("one", models.TaskStatusOpen)
	suite.createTask("two", models.TaskStatusInProgress)

	before, err := suite.service.ListTasks()
	suite.Require().NoError(err)

	title := "ghost"
	_, err = suite.service.UpdateTask(424242, UpdateTaskInput{Title: &title})
	suite.ErrorIs(err, ErrTaskNotFound)

	after, err := suite.service.ListTasks()
	suite.Require().NoError(err)
	suite.Equal(before, after)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_RejectsIllegalTransition() {
	task := suite.createTask("straight to closed", models.TaskStatusOpen)

	closed := models.TaskStatusClosed
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Status: &closed})

	var transitionErr *TransitionError
	suite.Require().True(errors.As(err, &transitionErr))
	suite.Equal(models.TaskStatusOpen, transitionErr.From)
	suite.Equal(models.TaskStatusClosed, transitionErr.To)
	suite.ErrorIs(err, ErrInvalidTransition)

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusOpen, stored.Status)

	bogus := models.TaskStatus("done")
	_, err = suite.service.UpdateTask(task.ID, UpdateTaskInput{Status: &bogus})
	suite.ErrorIs(err, ErrInvalidStatus)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_AssigneeNameIsSnapshot() {
	task := suite.createTask("reassign", models.TaskStatusOpen)

	// Renaming the user later does not touch existing tasks
	suite.Require().NoError(suite.db.Model(suite.developer).Update("name", "Johnny").Error)
	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal("John Developer", stored.AssigneeName)

	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{AssigneeID: &suite.other.ID})
	suite.Require().NoError(err)
	suite.Equal(suite.other.ID, updated.AssigneeID)
	suite.Equal("Bob Developer", updated.AssigneeName)

	missing := uint64(9999)
	_, err = suite.service.UpdateTask(task.ID, UpdateTaskInput{AssigneeID: &missing})
	suite.ErrorIs(err, ErrInvalidTaskAssignee)
}

// entryLoggingTaskRepository logs time against every task right after it is
// loaded, so the caller works on a copy whose time spent is already stale.
type entryLoggingTaskRepository struct {
	repository.TaskRepository
	service *TaskService
	userID  uint64
	minutes int
}

func (r *entryLoggingTaskRepository) FindByID(id uint64) (*models.Task, error) {
	task, err := r.TaskRepository.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := r.service.AddTimeEntry(AddTimeEntryInput{TaskID: id, UserID: r.userID, Duration: r.minutes}); err != nil {
		return nil, err
	}
	return task, nil
}

func (suite *TaskServiceTestSuite) withConcurrentTimeLogging(minutes int) *TaskService {
	entries := repository.NewTimeEntryRepository(suite.db)
	users := repository.NewUserRepository(suite.db)
	wrapped := &entryLoggingTaskRepository{
		TaskRepository: repository.NewTaskRepository(suite.db),
		service:        suite.service,
		userID:         suite.developer.ID,
		minutes:        minutes,
	}
	return NewTaskService(wrapped, entries, users, nil)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_DoesNotLoseConcurrentTime() {
	task := suite.createTask("tracked", models.TaskStatusOpen)
	racing := suite.withConcurrentTimeLogging(50)

	description := "changed"
	updated, err := racing.UpdateTask(task.ID, UpdateTaskInput{Description: &description})
	suite.Require().NoError(err)
	suite.Equal(50, updated.TimeSpent)

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal("changed", stored.Description)
	suite.Equal(50, stored.TimeSpent)
}

func (suite *TaskServiceTestSuite) TestWorkflow_DoesNotLoseConcurrentTime() {
	task := suite.createTask("tracked", models.TaskStatusInProgress)
	racing := suite.withConcurrentTimeLogging(25)

	closed, err := racing.CloseForReview(task.ID, *suite.developer)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPendingApproval, closed.Status)

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(25, stored.TimeSpent)

	entries, err := suite.service.ListTimeEntriesByTask(task.ID)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_CascadesToTimeEntries() {
	doomed := suite.createTask("doomed", models.TaskStatusOpen)
	kept := suite.createTask("kept", models.TaskStatusOpen)
	suite.logTime(doomed.ID, 30)
	suite.logTime(doomed.ID, 45)
	suite.logTime(kept.ID, 10)

	suite.Require().NoError(suite.service.DeleteTask(doomed.ID))

	_, err := suite.service.GetTask(doomed.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	tasks, err := suite.service.ListTasks()
	suite.Require().NoError(err)
	suite.Len(tasks, 1)
	suite.Equal(kept.ID, tasks[0].ID)

	entries, err := suite.service.ListTimeEntriesByTask(doomed.ID)
	suite.Require().NoError(err)
	suite.Empty(entries)

	all, err := suite.service.ListTimeEntries()
	suite.Require().NoError(err)
	suite.Len(all, 1)

	suite.ErrorIs(suite.service.DeleteTask(doomed.ID), ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestAddTimeEntry_TimeSpentMatchesEntrySum() {
	task := suite.createTask("tracked", models.TaskStatusInProgress)
	other := suite.createTask("other", models.TaskStatusInProgress)

	for _, minutes := range []int{15, 30, 45} {
		suite.logTime(task.ID, minutes)
		suite.logTime(other.ID, 5)

		stored, err := suite.service.GetTask(task.ID)
		suite.Require().NoError(err)
		entries, err := suite.service.ListTimeEntriesByTask(task.ID)
		suite.Require().NoError(err)

		sum := 0
		for _, e := range entries {
			sum += e.Duration
		}
		suite.Equal(sum, stored.TimeSpent)
	}

	stored, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(90, stored.TimeSpent)
}

func (suite *TaskServiceTestSuite) TestAddTimeEntry_EstimateProgressEndToEnd() {
	estimate := 240
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:         "estimate me",
		AssigneeID:    suite.developer.ID,
		EstimatedTime: &estimate,
	})
	suite.Require().NoError(err)

	suite.logTime(task.ID, 60)
	suite.logTime(task.ID, 30)

	analysis := suite.analysisFor(task.ID)
	suite.Equal(90, analysis.Task.TimeSpent)
	suite.Equal(90, analysis.ActualTime)
	suite.InDelta(37.5, analysis.ProgressPercentage, 1e-9)
	suite.False(analysis.IsOverEstimate)

	suite.logTime(task.ID, 200)

	analysis = suite.analysisFor(task.ID)
	suite.Equal(290, analysis.Task.TimeSpent)
	suite.Equal(100.0, analysis.ProgressPercentage)
	suite.True(analysis.IsOverEstimate)
}

func (suite *TaskServiceTestSuite) analysisFor(taskID uint64) analytics.TaskTimeAnalysis {
	analyses, err := suite.service.TaskTimeAnalyses()
	suite.Require().NoError(err)
	for _, a := range analyses {
		if a.Task.ID == taskID {
			return a
		}
	}
	suite.FailNow("task missing from analyses")
	return analytics.TaskTimeAnalysis{}
}

func (suite *TaskServiceTestSuite) TestAddTimeEntry_Validation() {
	task := suite.createTask("tracked", models.TaskStatusOpen)

	_, err := suite.service.AddTimeEntry(AddTimeEntryInput{TaskID: task.ID, UserID: suite.developer.ID, Duration: 0})
	suite.ErrorIs(err, ErrInvalidDuration)

	_, err = suite.service.AddTimeEntry(AddTimeEntryInput{TaskID: 9999, UserID: suite.developer.ID, Duration: 10})
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.service.AddTimeEntry(AddTimeEntryInput{TaskID: task.ID, UserID: 9999, Duration: 10})
	suite.ErrorIs(err, ErrUserNotFound)

	entries, err := suite.service.ListTimeEntries()
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *TaskServiceTestSuite) TestAddTimeEntry_DefaultsDateToClock() {
	fixed := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	suite.service.SetClock(func() time.Time { return fixed })

	task := suite.createTask("tracked", models.TaskStatusOpen)
	entry, err := suite.service.AddTimeEntry(AddTimeEntryInput{
		TaskID:      task.ID,
		UserID:      suite.developer.ID,
		Duration:    120,
		Description: "Investigated authentication flow",
	})
	suite.Require().NoError(err)
	suite.True(entry.Date.Equal(fixed))
	suite.Equal("John Developer", entry.UserName)
}

func (suite *TaskServiceTestSuite) TestListTasksByAssignee() {
	first := suite.createTask("first", models.TaskStatusOpen)
	_, err := suite.service.CreateTask(CreateTaskInput{Title: "bob's", AssigneeID: suite.other.ID})
	suite.Require().NoError(err)
	third := suite.createTask("third", models.TaskStatusClosed)

	mine, err := suite.service.ListTasksByAssignee(suite.developer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 2)
	suite.Equal(first.ID, mine[0].ID)
	suite.Equal(third.ID, mine[1].ID)
}

func (suite *TaskServiceTestSuite) TestQueryTasks() {
	suite.createTask("Fix login bug", models.TaskStatusOpen)
	suite.createTask("Dark mode", models.TaskStatusClosed)
	_, err := suite.service.CreateTask(CreateTaskInput{Title: "Login page copy", AssigneeID: suite.other.ID})
	suite.Require().NoError(err)

	all, err := suite.service.QueryTasks(analytics.TaskQuery{Search: "login"}, nil)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	mine, err := suite.service.QueryTasks(analytics.TaskQuery{Search: "login"}, &suite.developer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal("Fix login bug", mine[0].Title)

	closed, err := suite.service.QueryTasks(analytics.TaskQuery{Status: string(models.TaskStatusClosed)}, nil)
	suite.Require().NoError(err)
	suite.Require().Len(closed, 1)
	suite.Equal("Dark mode", closed[0].Title)

	everything, err := suite.service.QueryTasks(analytics.TaskQuery{Status: "all"}, nil)
	suite.Require().NoError(err)
	suite.Len(everything, 3)
}

func (suite *TaskServiceTestSuite) TestTaskStats() {
	for i := 0; i < 3; i++ {
		suite.createTask("open", models.TaskStatusOpen)
	}
	suite.createTask("in progress", models.TaskStatusInProgress)
	suite.createTask("closed", models.TaskStatusClosed)
	suite.createTask("pending", models.TaskStatusPendingApproval)

	stats, err := suite.service.TaskStats()
	suite.Require().NoError(err)
	suite.Equal(analytics.TaskStats{Open: 3, InProgress: 1, Closed: 1, PendingApproval: 1}, stats)
}

func (suite *TaskServiceTestSuite) TestUserTaskStats() {
	empty, err := suite.service.UserTaskStats(suite.developer.ID)
	suite.Require().NoError(err)
	suite.Equal(0, empty.Total)
	suite.Equal(0.0, empty.CompletionRate)

	suite.createTask("open", models.TaskStatusOpen)
	suite.createTask("closed", models.TaskStatusClosed)
	suite.createTask("pending", models.TaskStatusPendingApproval)
	_, err = suite.service.CreateTask(CreateTaskInput{Title: "bob's", AssigneeID: suite.other.ID})
	suite.Require().NoError(err)

	stats, err := suite.service.UserTaskStats(suite.developer.ID)
	suite.Require().NoError(err)
	suite.Equal(3, stats.Total)
	suite.Equal(analytics.TaskStats{Open: 1, Closed: 1, PendingApproval: 1}, stats.TaskStats)
	suite.InDelta(200.0/3, stats.CompletionRate, 1e-9)
}

func (suite *TaskServiceTestSuite) TestUserTimeSummaries() {
	a := suite.createTask("a", models.TaskStatusOpen)
	b := suite.createTask("b", models.TaskStatusOpen)
	suite.logTime(a.ID, 60)
	suite.logTime(b.ID, 40)

	summaries, err := suite.service.UserTimeSummaries()
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal(100, summaries[0].TotalTime)
	suite.Equal(2, summaries[0].TaskCount)
	suite.Equal(50.0, summaries[0].AvgPerTask)
	suite.Equal("John Developer", summaries[0].UserName)

	total, err := suite.service.TotalLogged()
	suite.Require().NoError(err)
	suite.Equal(100, total)
}

func (suite *TaskServiceTestSuite) TestDailyTrend() {
	now := time.Date(2024, 1, 17, 18, 0, 0, 0, time.UTC)
	suite.service.SetClock(func() time.Time { return now })

	a := suite.createTask("a", models.TaskStatusOpen)
	b := suite.createTask("b", models.TaskStatusOpen)
	for _, in := range []AddTimeEntryInput{
		{TaskID: a.ID, UserID: suite.developer.ID, Duration: 30, Date: now.Add(-2 * time.Hour)},
		{TaskID: b.ID, UserID: suite.other.ID, Duration: 30, Date: now.Add(-3 * time.Hour)},
		{TaskID: a.ID, UserID: suite.developer.ID, Duration: 30, Date: now.AddDate(0, 0, -1)},
	} {
		_, err := suite.service.AddTimeEntry(in)
		suite.Require().NoError(err)
	}

	trend, err := suite.service.DailyTrend()
	suite.Require().NoError(err)
	suite.Require().Len(trend, 7)
	suite.Equal("2024-01-11", trend[0].Date)
	suite.Equal(analytics.TrendPoint{Date: "2024-01-16", Tasks: 1}, trend[5])
	suite.Equal(analytics.TrendPoint{Date: "2024-01-17", Tasks: 2}, trend[6])
}

func (suite *TaskServiceTestSuite) TestWorkflow_CloseApproveReopen() {
	task := suite.createTask("workflow", models.TaskStatusInProgress)

	_, err := suite.service.CloseForReview(task.ID, *suite.other)
	suite.ErrorIs(err, ErrTaskPermissionDenied)
	_, err = suite.service.CloseForReview(task.ID, *suite.manager)
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	_, err = suite.service.Approve(task.ID, *suite.manager)
	suite.ErrorIs(err, ErrInvalidTransition)

	closed, err := suite.service.CloseForReview(task.ID, *suite.developer)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPendingApproval, closed.Status)

	_, err = suite.service.CloseForReview(task.ID, *suite.developer)
	suite.ErrorIs(err, ErrInvalidTransition)

	_, err = suite.service.Approve(task.ID, *suite.developer)
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	approved, err := suite.service.Approve(task.ID, *suite.manager)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusClosed, approved.Status)

	reopened, err := suite.service.Reopen(task.ID, *suite.manager)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, reopened.Status)

	_, err = suite.service.Reopen(task.ID, *suite.manager)
	suite.ErrorIs(err, ErrInvalidTransition)

	_, err = suite.service.Approve(424242, *suite.manager)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestCapabilities() {
	task := suite.createTask("caps", models.TaskStatusOpen)

	caps := suite.service.Capabilities(*task, *suite.developer)
	suite.True(caps.CanClose)
	suite.False(suite.service.Capabilities(*task, *suite.manager).CanApprove)
}

func (suite *TaskServiceTestSuite) TestGenerateTasks_NotConfigured() {
	_, err := suite.service.GenerateTasks(context.Background(), GenerateTasksInput{Text: "fix the login page"})
	suite.ErrorIs(err, ErrAIServiceNotConfigured)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"bug", "ui", "auth"}, normalizeTags([]string{"bug", "ui", " bug ", "", "auth", "ui"}))
	assert.Equal(t, []string{}, normalizeTags(nil))
}

func TestValidateGeneratedTasks(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)
	negative := -5

	tasks, err := validateGeneratedTasks([]GeneratedTask{
		{Title: "  "},
		{Title: "Fix crash", Priority: "urgent", DueDate: &past, EstimatedTime: &negative},
		{Title: "Ship release", Priority: models.PriorityHigh, DueDate: &future},
	}, now)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	assert.Nil(t, tasks[0].DueDate)
	assert.Nil(t, tasks[0].EstimatedTime)
	assert.Equal(t, models.PriorityHigh, tasks[1].Priority)
	assert.NotNil(t, tasks[1].DueDate)

	_, err = validateGeneratedTasks(nil, now)
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)

	_, err = validateGeneratedTasks([]GeneratedTask{{Title: ""}}, now)
	assert.ErrorIs(t, err, ErrAINoValidTasks)
}

func TestParseGeneratedTasks(t *testing.T) {
	tasks, err := parseGeneratedTasks("```json\n[{\"title\":\"Fix crash\",\"priority\":\"high\",\"estimated_time\":90}]\n```")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix crash", tasks[0].Title)
	require.NotNil(t, tasks[0].EstimatedTime)
	assert.Equal(t, 90, *tasks[0].EstimatedTime)

	_, err = parseGeneratedTasks("not json")
	assert.Error(t, err)
}
