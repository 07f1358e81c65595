package igdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for IGDB API operations.
var (
	ErrNotFound      = errors.New("igdb: no cover found")
	ErrNotConfigured = errors.New("igdb: credentials not configured")
	ErrRateLimited   = errors.New("igdb: rate limited by server")
	ErrServer        = errors.New("igdb: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // Operation: "search", "fetchCover"
	Game string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("igdb %s [%s]: %v", e.Op, e.Game, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, game string, err error) error {
	return &Error{Op: op, Game: game, Err: err}
}
