package entity

import "errors"

// Domain errors
var (
	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSummaryNotReady      = errors.New("summary not available yet")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
