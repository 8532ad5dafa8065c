package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/pump-curve/internal/storage"
)

const (
	// DefaultPrefix namespaces the keys of the cases.
	DefaultPrefix = "pump"

	timeout = 5 * time.Second
)

// Storage keeps every key as a json document in redis.
type Storage struct {
	client *redis.Client
	prefix string
	debug  bool
}

// New creates a redis backed storage for the given address.
// The connection is checked lazily, see Ping.
func New(addr, prefix string, debug bool) *Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		prefix: prefix,
		debug:  debug,
	}
}

// Ping checks the connection to the redis server.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Store(k storage.Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", k.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	key := s.key(k)
	if err := s.client.Set(ctx, key, b, 0).Err(); err != nil {
		return fmt.Errorf("could not store '%s': %w", key, err)
	}
	if s.debug {
		log.Info().Str("key", key).Msg("stored redis document")
	}
	return nil
}

func (s *Storage) Load(k storage.Key, value interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	key := s.key(k)
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("could not find '%s': %w", key, storage.NotFoundErr)
	}
	if err != nil {
		return fmt.Errorf("could not load '%s': %v: %w", key, err, storage.CouldNotLoadErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not decode '%s': %v: %w", key, err, storage.CouldNotLoadErr)
	}
	return nil
}

// List returns the keys under the prefix, ordered by name.
func (s *Storage) List() ([]storage.Key, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	keys := make([]storage.Key, 0)
	iter := s.client.Scan(ctx, 0, s.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, storage.Key{Name: strings.TrimPrefix(iter.Val(), s.prefix+":")})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("could not list keys: %w", err)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys, nil
}

func (s *Storage) key(k storage.Key) string {
	return fmt.Sprintf("%s:%s", s.prefix, k.Path())
}
