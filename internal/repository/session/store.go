// Package session keeps login sessions and cached lookups, in redis when it
// is configured and in process memory otherwise.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"recruitment-console/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "console:session:"

type redisStore struct {
	client *goredis.Client
}

// NewRedisStore stores sessions as JSON strings with a TTL.
func NewRedisStore(client *goredis.Client) domain.SessionStore {
	return &redisStore{client: client}
}

func (s *redisStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore keeps sessions in a map. Expired entries are dropped on
// read and swept on every save.
func NewMemoryStore() domain.SessionStore {
	return &memoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *memoryStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[session.ID] = memoryEntry{session: *session, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, domain.ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
