// Package sessions keeps the ids of logged-out tokens until they expire.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrStore возвращается при недоступности Redis
	ErrStore = errors.New("sessions: store error")

	// ErrEmptyTokenID возвращается для токена без jti
	ErrEmptyTokenID = errors.New("sessions: empty token id")
)

// Store хранит отозванные токены в Redis с TTL до истечения токена
type Store struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewStore создаёт хранилище отзывов; prefix отделяет ключи сервиса
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix, now: time.Now}
}

// Revoke помечает токен отозванным до expiresAt
// Для уже истёкшего токена ничего не записывается
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: Revoke - set: %v", ErrStore, err)
	}
	return nil
}

// IsRevoked проверяет, был ли токен отозван
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, ErrEmptyTokenID
	}

	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: IsRevoked - exists: %v", ErrStore, err)
	}
	return n > 0, nil
}

// Ping проверяет соединение при старте
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrStore, err)
	}
	return nil
}

func (s *Store) key(tokenID string) string {
	return s.prefix + tokenID
}
