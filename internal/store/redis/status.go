package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lyzrex/lythrion-status/internal/domain"
)

// Entry mirrors one freshness-cache entry: a normalized probe result and
// when it was fetched. The in-memory cache stays the source of truth;
// Redis only lets a restarted process warm-start inside the TTL window.
type Entry struct {
	Status    domain.ServiceStatus `json:"status"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// Store handles Redis operations for probe entries and presence.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveEntry stores a probe entry with the given TTL.
func (s *Store) SaveEntry(ctx context.Context, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal status entry: %w", err)
	}

	key := StatusKey(entry.Status.Service)
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save status entry: %w", err)
	}

	return nil
}

// GetEntry retrieves a probe entry for a service.
// A missing key is a normal miss, not an error.
func (s *Store) GetEntry(ctx context.Context, id domain.ServiceID) (Entry, bool, error) {
	data, err := s.client.Get(ctx, StatusKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("failed to get status entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to unmarshal status entry: %w", err)
	}

	return entry, true, nil
}

// SavePresence stores the last synthesized presence string.
func (s *Store) SavePresence(ctx context.Context, presence string, ttl time.Duration) error {
	if err := s.client.Set(ctx, KeyPresence, presence, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save presence: %w", err)
	}
	return nil
}

// GetPresence retrieves the last stored presence string ("" on miss).
func (s *Store) GetPresence(ctx context.Context) (string, error) {
	presence, err := s.client.Get(ctx, KeyPresence).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get presence: %w", err)
	}
	return presence, nil
}
