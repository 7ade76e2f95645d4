package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps bearer tokens and the user they belong to.
type SessionStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type sessionDB interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string, now time.Time) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// DatabaseSessionStore keeps sessions in the sessions table.
type DatabaseSessionStore struct {
	db  sessionDB
	now func() time.Time
}

// NewDatabaseSessionStore stores sessions through db.
func NewDatabaseSessionStore(db sessionDB) *DatabaseSessionStore {
	return &DatabaseSessionStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *DatabaseSessionStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.db.SaveSession(ctx, &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	})
}

func (s *DatabaseSessionStore) Lookup(ctx context.Context, token string) (string, error) {
	session, err := s.db.GetSession(ctx, token, s.now())
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return session.UserID, nil
}

func (s *DatabaseSessionStore) Delete(ctx context.Context, token string) error {
	return s.db.DeleteSession(ctx, token)
}

// RedisSessionStore keeps sessions as expiring redis keys.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore stores sessions under the "session:" key prefix.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "session:"}
}

func (s *RedisSessionStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
