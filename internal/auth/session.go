package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps server-side session records.
type SessionStore interface {
	// Create stores a new session for userID and returns its id.
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	// Lookup returns the session's user and extends its lifetime to ttl.
	// ok is false when the session is unknown or expired.
	Lookup(ctx context.Context, id string, ttl time.Duration) (userID int64, ok bool, err error)
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "session:"

// RedisSessions stores sessions as session:<uuid> keys holding the user id.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+id, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, id string, ttl time.Duration) (int64, bool, error) {
	val, err := s.client.GetEx(ctx, sessionKeyPrefix+id, ttl).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return userID, true, nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemorySessions is an in-process store for development and tests.
// Sessions are lost on restart.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	userID  int64
	expires time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]memorySession), now: time.Now}
}

func (s *MemorySessions) Create(_ context.Context, userID int64, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.sessions[id] = memorySession{userID: userID, expires: s.now().Add(ttl)}
	return id, nil
}

func (s *MemorySessions) Lookup(_ context.Context, id string, ttl time.Duration) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return 0, false, nil
	}
	now := s.now()
	if !now.Before(sess.expires) {
		delete(s.sessions, id)
		return 0, false, nil
	}
	sess.expires = now.Add(ttl)
	s.sessions[id] = sess
	return sess.userID, true, nil
}

func (s *MemorySessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// sweep drops expired sessions. Callers hold mu.
func (s *MemorySessions) sweep() {
	now := s.now()
	for id, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, id)
		}
	}
}
