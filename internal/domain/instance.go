package domain

import "time"

// Instance describes this server installation. The ID is generated on first
// boot and persisted, so clients can tell installations apart.
type Instance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	GameCount   int       `json:"game_count"`
	StartedAt   time.Time `json:"started_at"`
}
