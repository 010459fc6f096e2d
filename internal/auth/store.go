package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CSRFRecord is one session's active anti-forgery token
type CSRFRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record has passed its expiry
func (r CSRFRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// CSRFStore holds per-session CSRF records. State is ephemeral and
// reconstructible; losing it forces token regeneration, nothing more.
// Stores are injected with explicit lifecycle, never package-level globals.
type CSRFStore interface {
	Put(ctx context.Context, sessionID string, rec CSRFRecord) error
	Get(ctx context.Context, sessionID string) (CSRFRecord, bool, error)
	Delete(ctx context.Context, sessionID string) error
	// Sweep removes expired records. Backends with native expiry may no-op.
	Sweep(ctx context.Context) error
}

// MemoryCSRFStore is a mutex-guarded in-process store. Suitable for
// single-instance deployments.
type MemoryCSRFStore struct {
	mu      sync.RWMutex
	records map[string]CSRFRecord
}

func NewMemoryCSRFStore() *MemoryCSRFStore {
	return &MemoryCSRFStore{records: make(map[string]CSRFRecord)}
}

func (s *MemoryCSRFStore) Put(_ context.Context, sessionID string, rec CSRFRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = rec
	return nil
}

func (s *MemoryCSRFStore) Get(_ context.Context, sessionID string) (CSRFRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	return rec, ok, nil
}

func (s *MemoryCSRFStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}

func (s *MemoryCSRFStore) Sweep(_ context.Context) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, id)
		}
	}
	return nil
}

// RedisCSRFStore shares CSRF state across horizontally-scaled instances.
// Records carry their expiry in the value and additionally a redis TTL, so
// the lazy sweep is delegated to the server.
type RedisCSRFStore struct {
	client *redis.Client
	prefix string
}

func NewRedisCSRFStore(client *redis.Client) *RedisCSRFStore {
	return &RedisCSRFStore{client: client, prefix: "csrf:"}
}

func (s *RedisCSRFStore) Put(ctx context.Context, sessionID string, rec CSRFRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.prefix+sessionID, data, ttl).Err()
}

func (s *RedisCSRFStore) Get(ctx context.Context, sessionID string) (CSRFRecord, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err == redis.Nil {
		return CSRFRecord{}, false, nil
	}
	if err != nil {
		return CSRFRecord{}, false, err
	}

	var rec CSRFRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return CSRFRecord{}, false, err
	}
	return rec, true, nil
}

func (s *RedisCSRFStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}

// Sweep is a no-op; redis expires keys natively.
func (s *RedisCSRFStore) Sweep(_ context.Context) error {
	return nil
}
