package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists the web session per device so it survives a relaunch of the shell.
type SessionStore interface {
	Save(ctx context.Context, deviceID string, session Session, ttl time.Duration) error
	// Load returns nil without error when the device has no stored session.
	Load(ctx context.Context, deviceID string) (*Session, error)
	Delete(ctx context.Context, deviceID string) error
}

const sessionKeyPrefix = "bridge:session:"

func sessionKey(deviceID string) string {
	return sessionKeyPrefix + deviceID
}

type RedisSessionStore struct {
	client redis.Cmdable
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, deviceID string, session Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(deviceID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session for device %s: %w", deviceID, err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, deviceID string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session for device %s: %w", deviceID, err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session for device %s: %w", deviceID, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, deviceID string) error {
	if err := s.client.Del(ctx, sessionKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session for device %s: %w", deviceID, err)
	}
	return nil
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process; used in development and tests.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, deviceID string, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{session: session}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[deviceID] = entry
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, deviceID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[deviceID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, deviceID)
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, deviceID)
	return nil
}
