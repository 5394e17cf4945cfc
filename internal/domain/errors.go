package domain

import "errors"

var (
	// ErrNotFound indicates a session or assignment lookup miss
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates a validation failure (missing message, bad field)
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnsupportedFile indicates a disallowed upload extension
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrServiceUnavailable indicates an external adapter is not configured
	ErrServiceUnavailable = errors.New("external service unavailable")
)
