package constants

const (
	// Session
	SessionCookieName = "task_session"
	SessionMaxAge     = 86400 * 7

	// Gin context keys
	ContextKeyUserID    = "user_id"
	ContextKeyActor     = "actor"
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"

	RequestIDHeader = "X-Request-ID"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200

	MinPasswordLength = 8

	// AI drafts
	MaxAIGeneratedTasks = 20

	// Length of the daily trend window in calendar days
	TrendDays = 7

	// Query value meaning "no filter" for status and priority
	FilterAll = "all"
)
