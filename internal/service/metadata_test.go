package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/metadata/rawg"
)

func TestMapRAWGError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel *domainerrors.Error
	}{
		{"not configured", rawg.ErrNotConfigured, domainerrors.ErrNotConfigured},
		{"not found", rawg.ErrNotFound, domainerrors.ErrNotFound},
		{"rate limited upstream", rawg.ErrRateLimited, domainerrors.ErrUpstream},
		{"server error", rawg.ErrServer, domainerrors.ErrUpstream},
		{"anything else", errors.New("connection reset"), domainerrors.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapRAWGError(tt.err, "Doom")
			assert.True(t, domainerrors.Is(mapped, tt.sentinel),
				"expected %v to map to %v, got %v", tt.err, tt.sentinel, mapped)

			// The original error stays reachable for logging.
			assert.ErrorIs(t, mapped, tt.err)
		})
	}
}
