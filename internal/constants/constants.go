package constants

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPage         = 1
	MinPageSize     = 1
)

// Request context keys
const (
	ContextKeyRequestID = "request_id"
)

// Deletion messages
const (
	MsgUserDeleted    = "User deleted successfully"
	MsgProjectDeleted = "Project deleted successfully"
	MsgTaskDeleted    = "Task deleted successfully"
)
