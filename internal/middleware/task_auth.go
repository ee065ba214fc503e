package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// RequireTaskAccess loads the task named by the :id parameter into the
// context. Every authenticated user may read every task.
func RequireTaskAccess(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		if _, exists := GetUserID(c); !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := taskService.GetTask(taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
