package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrEmptyMessage = errors.New("message is empty")

	// Not found errors
	ErrConversationNotFound = errors.New("conversation not found")

	// Access control errors
	ErrAccessDenied = errors.New("access denied to conversation")
)

// Context keys for error values
const (
	ConversationIDKey = "conversation_id"
	UserIDKey         = "user_id"
)
