package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
)

// Repository defines the interface for combatant record persistence.
// Records are keyed by character.Key(name), so lookups are case-insensitive.
type Repository interface {
	// Get retrieves a record by name, migrated to the current schema
	Get(ctx context.Context, name string) (*character.Character, error)

	// Save creates or replaces a record
	Save(ctx context.Context, char *character.Character) error

	// Delete removes a record
	Delete(ctx context.Context, name string) error

	// List returns every stored record sorted by key
	List(ctx context.Context) ([]*character.Character, error)
}
