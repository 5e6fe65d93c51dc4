package version

import "errors"

// Errors returned by the version manager. Callers match them with errors.Is.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrInvalidVersion  = errors.New("invalid semantic version")
	ErrInvalidRule     = errors.New("invalid bump type")
	ErrOriginMismatch  = errors.New("git origin mismatch")
	ErrTagFailed       = errors.New("failed to create or push git tag")
)
