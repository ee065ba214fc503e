package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// RequireAuth checks if the user is authenticated via session and loads the
// acting user. A session whose user no longer exists is cleared.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		c.Set(constants.ContextKeyUserID, session.Get(constants.ContextKeyUserID))

		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "Session is no longer valid")
			} else {
				apierrors.InternalError(c, "Failed to load user")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, *user)
		c.Next()
	}
}

// RequireRole rejects actors whose role differs from role. Must run after
// RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if actor.Role != role {
			apierrors.Forbidden(c, "This action requires the "+string(role)+" role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor retrieves the authenticated user loaded by RequireAuth
func GetActor(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return models.User{}, false
	}
	actor, ok := value.(models.User)
	return actor, ok
}
