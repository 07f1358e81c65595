package rawg

import (
	"errors"
	"fmt"
)

// Sentinel errors for RAWG API operations.
var (
	ErrNotFound      = errors.New("rawg: game not found")
	ErrRateLimited   = errors.New("rawg: rate limited by server")
	ErrBadRequest    = errors.New("rawg: bad request")
	ErrServer        = errors.New("rawg: server error")
	ErrNotConfigured = errors.New("rawg: API key not configured")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // Operation: "search", "details", "screenshots", "movies"
	Game string // Game name being looked up
	Err  error
}

func (e *Error) Error() string {
	if e.Game != "" {
		return fmt.Sprintf("rawg %s [%s]: %v", e.Op, e.Game, e.Err)
	}
	return fmt.Sprintf("rawg %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, game string, err error) error {
	return &Error{Op: op, Game: game, Err: err}
}
