package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gatepass/internal/cache"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when a session record is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Store(ctx context.Context, sessionID string, userID uint, role string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (userID uint, role string, err error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps the server-side session records in Redis. Logout
// deletes the record, which invalidates the cookie regardless of its
// remaining JWT lifetime.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Store writes a session record with TTL.
func (s *SessionStore) Store(ctx context.Context, sessionID string, userID uint, role string, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID,
		"role":    role,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// Get retrieves a session record.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (userID uint, role string, err error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return 0, "", fmt.Errorf("read session: %w", err)
	}
	if data == nil {
		return 0, "", ErrSessionNotFound
	}

	var sessionData map[string]interface{}
	if err := json.Unmarshal(data, &sessionData); err != nil {
		return 0, "", fmt.Errorf("unmarshal session data: %w", err)
	}

	uid, ok := sessionData["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid user_id in session data")
	}
	userID = uint(uid)

	role, ok = sessionData["role"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid role in session data")
	}

	return userID, role, nil
}

// Delete removes a session record.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
