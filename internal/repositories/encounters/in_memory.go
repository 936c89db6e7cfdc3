package encounters

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

type inMemoryRepository struct {
	mu       sync.RWMutex
	trackers map[string][]byte // sessionID -> serialized tracker
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		trackers: make(map[string][]byte),
	}
}

// Get retrieves the tracker for a session
func (r *inMemoryRepository) Get(ctx context.Context, sessionID string) (*combat.Tracker, error) {
	r.mu.RLock()
	data, exists := r.trackers[sessionID]
	r.mu.RUnlock()

	if !exists {
		return nil, dnderr.NotFoundf("no encounter for session %s", sessionID).
			WithMeta("session_id", sessionID)
	}

	return decodeTracker(data)
}

// Save creates or replaces the tracker for its session
func (r *inMemoryRepository) Save(ctx context.Context, tracker *combat.Tracker) error {
	data, err := encodeTracker(tracker)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.trackers[tracker.SessionID] = data
	return nil
}

// Delete removes the tracker for a session
func (r *inMemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trackers[sessionID]; !exists {
		return dnderr.NotFoundf("no encounter for session %s", sessionID).
			WithMeta("session_id", sessionID)
	}

	delete(r.trackers, sessionID)
	return nil
}

func encodeTracker(tracker *combat.Tracker) ([]byte, error) {
	if tracker == nil {
		return nil, dnderr.InvalidArgument("tracker cannot be nil")
	}
	if tracker.SessionID == "" {
		return nil, dnderr.InvalidArgument("tracker session ID is required")
	}

	data, err := json.Marshal(tracker)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tracker: %w", err)
	}
	return data, nil
}

func decodeTracker(data []byte) (*combat.Tracker, error) {
	var tracker combat.Tracker
	if err := json.Unmarshal(data, &tracker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracker: %w", err)
	}
	if tracker.Entries == nil {
		tracker.Entries = []*combat.Entry{}
	}
	return &tracker, nil
}
