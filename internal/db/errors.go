package db

import "errors"

// ErrUpdateContention signals that an optimistic update lost the race
// too many times in a row.
var ErrUpdateContention = errors.New("db: update contention")

// Op constants map to Redis command names for error context.
const (
	OpHGetAll = "HGETALL"
	OpScan    = "SCAN"
	OpWatch   = "WATCH"
	OpExec    = "EXEC"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
