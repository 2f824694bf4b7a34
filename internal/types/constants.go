package types

const (
	// ContextUserKey is the gin context key holding the authenticated user.
	ContextUserKey = "user"
	// ContextRequestIDKey is the gin context key holding the request
	// correlation id.
	ContextRequestIDKey = "request_id"
)
