package report

import "errors"

var (
	ErrReportNotFound         = errors.New("report not found")
	ErrAlreadyResolved        = errors.New("report already resolved")
	ErrConcurrentModification = errors.New("report was modified concurrently")
	ErrRateLimited            = errors.New("report submission rate limit exceeded")
	ErrInvalidAction          = errors.New("invalid moderation action")
	ErrNoReportedUser         = errors.New("action requires a reported user")
	ErrNotRemovable           = errors.New("content removal requires a content target")
)
