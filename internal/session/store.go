// Package session holds the authenticated user projection for the
// lifetime of a login. The record lives in Redis keyed by the session
// id carried in the access token, so that sign-out invalidates the
// token immediately.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Pili-73/Libreria-Pier/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrNoSesion is returned when no session exists for the given id.
var ErrNoSesion = errors.New("no hay sesión activa")

// Sesion is the persisted user projection shown to the UI.
type Sesion struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Ciudad string `json:"ciudad"`
}

// EsAdmin reports whether the stored role grants admin access.
func (s *Sesion) EsAdmin() bool {
	return s != nil && s.Rol == model.RolAdmin
}

// Store is the session persistence contract.
type Store interface {
	Get(ctx context.Context, sid string) (*Sesion, error)
	Set(ctx context.Context, sid string, s Sesion) error
	Clear(ctx context.Context, sid string) error
}

const keyPrefix = "sesion:"

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a Store backed by Redis. The TTL matches the
// access-token lifetime: a session outliving its token is unreachable.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, sid string) (*Sesion, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+sid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSesion
	}
	if err != nil {
		return nil, err
	}
	var s Sesion
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *redisStore) Set(ctx context.Context, sid string, s Sesion) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, keyPrefix+sid, raw, r.ttl).Err()
}

func (r *redisStore) Clear(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, keyPrefix+sid).Err()
}
