package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
)

// Repository defines the interface for initiative tracker storage.
// Each session has at most one tracker.
type Repository interface {
	// Get retrieves the tracker for a session
	Get(ctx context.Context, sessionID string) (*combat.Tracker, error)

	// Save creates or replaces the tracker for its session
	Save(ctx context.Context, tracker *combat.Tracker) error

	// Delete removes the tracker for a session
	Delete(ctx context.Context, sessionID string) error
}
