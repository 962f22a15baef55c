package matrixstore

import (
	"bytes"
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "cows-tsp:matrix:"

// RedisMatrixStore keeps each matrix as a msgpack blob under <Prefix><key>,
// with no expiry.
type RedisMatrixStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisMatrixStore(client *redis.Client) *RedisMatrixStore {
	return &RedisMatrixStore{Client: client, Prefix: defaultRedisPrefix}
}

// NewRedisMatrixStoreFromURL parses a redis:// URL and returns a store
// backed by a new client.
func NewRedisMatrixStoreFromURL(url string) (*RedisMatrixStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis matrix store: parse url: %w", err)
	}
	return NewRedisMatrixStore(redis.NewClient(opts)), nil
}

func (s *RedisMatrixStore) Save(ctx context.Context, key string, m domain.Matrix) (err error) {
	defer obs.Time(ctx, "matrix.redis.Save")(&err)

	if s.Client == nil {
		return errors.New("redis matrix store: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("save matrix: key must not be empty")
	}

	var buf bytes.Buffer
	if err := encodeMatrix(&buf, m); err != nil {
		return fmt.Errorf("save matrix: encode: %w", err)
	}

	if err := s.Client.Set(ctx, s.Prefix+key, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("save matrix: redis set: %w", err)
	}
	return nil
}

func (s *RedisMatrixStore) Load(ctx context.Context, key string) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "matrix.redis.Load")(&err)

	if s.Client == nil {
		return nil, errors.New("redis matrix store: client is nil")
	}

	b, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load matrix %q: %w", key, ports.ErrMatrixNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load matrix: redis get: %w", err)
	}

	m, err := decodeMatrix(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("load matrix %q: %w", key, err)
	}
	return m, nil
}

// Close releases the underlying client.
func (s *RedisMatrixStore) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}
