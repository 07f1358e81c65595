package domain

import "time"

// Report is a "something is wrong with this entry" submission from a reader.
// Reports are forwarded to the configured spreadsheet webhook and always
// recorded locally.
type Report struct {
	ID          string    `json:"id"`
	GameName    string    `json:"game_name"`
	GameID      string    `json:"game_id"`
	ErrorTypes  []string  `json:"error_types"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
	// Forwarded reports whether the webhook delivery succeeded. Reports are
	// always recorded locally regardless.
	Forwarded bool `json:"forwarded"`
}
