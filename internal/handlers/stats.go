package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	taskService *services.TaskService
}

func NewStatsHandler(taskService *services.TaskService) *StatsHandler {
	return &StatsHandler{
		taskService: taskService,
	}
}

// TaskStats returns task counts by status
func (h *StatsHandler) TaskStats(c *gin.Context) {
	stats, err := h.taskService.TaskStats()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MyTaskStats returns counts and the completion rate of the actor's own tasks
func (h *StatsHandler) MyTaskStats(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.taskService.UserTaskStats(actor.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UserTime returns minutes logged per user
func (h *StatsHandler) UserTime(c *gin.Context) {
	summaries, err := h.taskService.UserTimeSummaries()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	total, err := h.taskService.TotalLogged()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": summaries,
		"total": total,
	})
}

// TaskTime returns logged time against estimates for every task
func (h *StatsHandler) TaskTime(c *gin.Context) {
	analyses, err := h.taskService.TaskTimeAnalyses()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": analyses,
	})
}

// Trend returns the number of tasks worked on per day over the last week
func (h *StatsHandler) Trend(c *gin.Context) {
	trend, err := h.taskService.DailyTrend()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days": trend,
	})
}
