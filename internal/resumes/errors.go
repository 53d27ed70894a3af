package resumes

import "errors"

var (
	ErrNotFound        = errors.New("resume not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUpstream        = errors.New("ai service failure")
	ErrVersionConflict = errors.New("concurrent version update")
)
