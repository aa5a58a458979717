// Package store persists save-slot values (boss progress, wallet, destroyed
// cards) as checksummed key/value pairs in memory, SQLite, Postgres or Redis.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

const (
	KindMemory   = "memory"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindRedis    = "redis"
)

const DefaultProfile = "default"

var ErrClosed = errors.New("store closed")

// backend is the raw storage under a Store. Values arrive sealed.
type backend interface {
	get(ctx context.Context, profile, key string) (string, bool, error)
	set(ctx context.Context, profile, key, value string) error
	close() error
}

// Store is one profile's save slot. Every value carries a checksum; a value
// that fails verification reads as missing.
type Store struct {
	kind    string
	profile string
	b       backend
}

// Options selects and configures a backend.
type Options struct {
	Kind       string
	Profile    string
	SQLitePath string
	DSN        string
	RedisAddr  string
}

// Open builds the store named by opts.Kind.
func Open(ctx context.Context, opts Options) (*Store, error) {
	kind := strings.ToLower(strings.TrimSpace(opts.Kind))
	switch kind {
	case "", KindMemory, "mem":
		return NewMemory(opts.Profile), nil
	case KindSQLite:
		return OpenSQLite(ctx, opts.SQLitePath, opts.Profile)
	case KindPostgres, "postgresql", "db":
		return OpenPostgres(ctx, opts.DSN, opts.Profile)
	case KindRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.Profile)
	default:
		return nil, fmt.Errorf("invalid store kind %q (supported: %s, %s, %s, %s)",
			opts.Kind, KindMemory, KindSQLite, KindPostgres, KindRedis)
	}
}

func newStore(kind, profile string, b backend) *Store {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = DefaultProfile
	}
	return &Store{kind: kind, profile: profile, b: b}
}

// Kind names the backend.
func (s *Store) Kind() string { return s.kind }

func (s *Store) Profile() string { return s.profile }

// WithProfile returns a store for another save slot on the same backend.
// Closing either closes the shared backend.
func (s *Store) WithProfile(profile string) *Store {
	return newStore(s.kind, profile, s.b)
}

// Get returns the value under key. ok is false when the key is missing or
// its checksum does not match.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	raw, ok, err := s.b.get(ctx, s.profile, key)
	if err != nil || !ok {
		return "", false, err
	}
	value, valid := unseal(s.profile, key, raw)
	if !valid {
		log.Printf("[Store] %s/%s: checksum mismatch, value ignored", s.profile, key)
		return "", false, nil
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.b.set(ctx, s.profile, key, seal(s.profile, key, value)); err != nil {
		return fmt.Errorf("store %s set %s: %w", s.kind, key, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.b == nil {
		return nil
	}
	return s.b.close()
}
