package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Records are stored serialized so callers never share memory with the store.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		records: make(map[string][]byte),
	}
}

// Get retrieves a record by name
func (r *InMemoryRepository) Get(ctx context.Context, name string) (*character.Character, error) {
	key := character.Key(name)
	if key == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	r.mu.RLock()
	data, exists := r.records[key]
	r.mu.RUnlock()

	if !exists {
		return nil, dnderr.NotFoundf("character '%s' not found", name).
			WithMeta("name", name)
	}

	return decodeRecord(data)
}

// Save creates or replaces a record
func (r *InMemoryRepository) Save(ctx context.Context, char *character.Character) error {
	data, err := encodeRecord(char)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[char.Key()] = data
	return nil
}

// Delete removes a record
func (r *InMemoryRepository) Delete(ctx context.Context, name string) error {
	key := character.Key(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[key]; !exists {
		return dnderr.NotFoundf("character '%s' not found", name).
			WithMeta("name", name)
	}

	delete(r.records, key)
	return nil
}

// List returns every stored record sorted by key
func (r *InMemoryRepository) List(ctx context.Context) ([]*character.Character, error) {
	r.mu.RLock()
	keys := make([]string, 0, len(r.records))
	for k := range r.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	blobs := make([][]byte, len(keys))
	for i, k := range keys {
		blobs[i] = r.records[k]
	}
	r.mu.RUnlock()

	result := make([]*character.Character, 0, len(blobs))
	for _, data := range blobs {
		char, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		result = append(result, char)
	}
	return result, nil
}

func encodeRecord(char *character.Character) ([]byte, error) {
	if char == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}
	if char.Key() == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	character.Migrate(char)

	data, err := json.Marshal(char)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*character.Character, error) {
	var char character.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	character.Migrate(&char)
	return &char, nil
}
