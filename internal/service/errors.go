package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP codes;
// services never see fiber.
var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("resource not found")
	ErrReaderNil  = errors.New("reader is nil")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAdminOnly   = errors.New("operation requires admin role")
	ErrDueDatePast = errors.New("due date cannot be in the past")

	ErrUnsupportedMedia = errors.New("file type is not allowed")
	ErrPayloadTooLarge  = errors.New("file exceeds the maximum upload size")
)
