package identity

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	blog "github.com/Esteban8482/blog-platform"
)

// sessionRecord is the server-held side of a session. The cookie only ever
// carries the signed opaque id.
type sessionRecord struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
}

// SessionStore keeps session records in redis, keyed by an opaque id that
// is HMAC-signed before it leaves the server.
type SessionStore struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewSessionStore(rdb *redis.Client, secret string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify returns the session id when the token carries a valid signature.
func (s *SessionStore) verify(token string) (string, bool) {
	id, _, found := strings.Cut(token, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(s.sign(id)), []byte(token)) {
		return "", false
	}
	return id, true
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create mints a session for the principal and returns the signed token
// for the cookie.
func (s *SessionStore) Create(ctx context.Context, p blog.Principal) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	id := hex.EncodeToString(raw)

	record, err := json.Marshal(sessionRecord{
		UserID:      p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Role:        p.Role,
	})
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, sessionKey(id), record, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return s.sign(id), nil
}

// Resolve maps a signed token back to its principal. An invalid signature
// or a missing record resolves to nil without error; only a store failure
// is reported.
func (s *SessionStore) Resolve(ctx context.Context, token string) (*blog.Principal, error) {
	id, ok := s.verify(token)
	if !ok {
		return nil, nil
	}

	raw, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}

	return &blog.Principal{
		ID:          record.UserID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
		Role:        record.Role,
	}, nil
}

// Delete removes a session. Deleting an unknown or tampered token is a
// no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	id, ok := s.verify(token)
	if !ok {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}
