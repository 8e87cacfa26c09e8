package mongo

import "errors"

// Domain-specific MongoDB errors for consistent error handling. Check with
// errors.Is() for retry logic and user-facing messages.
var (
	ErrEmptyConnectionURL = errors.New("empty mongodb connection URL")
	ErrFailedToConnect    = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed  = errors.New("mongodb healthcheck failed")
)
