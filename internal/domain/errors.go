package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates an expired or malformed token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserInactive indicates a disabled operator account.
	ErrUserInactive = errors.New("user account is inactive")
	// ErrValidation indicates the request payload failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyBatch indicates an upload with no files.
	ErrEmptyBatch = errors.New("batch contains no files")
	// ErrTooManyFiles indicates an upload above the configured batch limit.
	ErrTooManyFiles = errors.New("too many files in one batch")
	// ErrFileTooLarge indicates a single file above the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
	// ErrUnsupportedFileType indicates a file whose type cannot be ingested.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrJobFinished indicates a state change on a job that already ended.
	ErrJobFinished = errors.New("job already finished")
)
