package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/trnnut"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrRedisUnavailable wraps every Redis failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrNotFound is returned when no token is stored under an ID or digest.
var ErrNotFound = errors.New("token not found")

// ErrCorrupt is returned when a stored blob no longer decodes.
var ErrCorrupt = errors.New("stored token corrupt")

const deleteTokenScript = `
local existed = redis.call("EXISTS", KEYS[1])
redis.call("DEL", KEYS[1])
if KEYS[2] and redis.call("GET", KEYS[2]) == ARGV[1] then
  redis.call("DEL", KEYS[2])
end
return existed
`

var deleteTokenLua = redis.NewScript(deleteTokenScript)

// Config holds store settings.
type Config struct {
	// Prefix namespaces every key.
	Prefix string
	// TTL expires stored tokens; zero keeps them until deleted.
	TTL time.Duration
}

// DefaultConfig returns the defaults used when NewStore receives a zero Config.
func DefaultConfig() Config {
	return Config{Prefix: "trnnut"}
}

// Validate checks cfg.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("store Prefix must not be empty")
	}
	if c.TTL < 0 {
		return errors.New("store TTL must be >= 0")
	}
	return nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCodec sets the codec used to encode and decode blobs. The default uses
// trnnut.DefaultConfig.
func WithCodec(c *trnnut.Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// Store keeps encoded tokens in Redis.
type Store struct {
	redis  redis.UniversalClient
	config Config
	codec  *trnnut.Codec
	logger *zap.Logger
}

// NewStore creates a token store backed by the given Redis client.
func NewStore(client redis.UniversalClient, cfg Config, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("store: nil redis client")
	}
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := trnnut.NewCodec(trnnut.DefaultConfig())
	if err != nil {
		return nil, err
	}
	s := &Store{
		redis:  client,
		config: cfg,
		codec:  codec,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) tokenKey(id uuid.UUID) string {
	return s.config.Prefix + ":token:" + id.String()
}

func (s *Store) digestKey(digest common.Hash) string {
	return s.config.Prefix + ":digest:" + digest.Hex()
}

// Save stores t under a fresh ID and points the digest index at it.
func (s *Store) Save(ctx context.Context, t *trnnut.TRNNut) (uuid.UUID, error) {
	data, err := s.codec.Encode(t)
	if err != nil {
		return uuid.Nil, err
	}
	digest, err := t.Digest()
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(id), data, s.config.TTL)
		pipe.Set(ctx, s.digestKey(digest), id.String(), s.config.TTL)
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	s.logger.Debug("token saved", zap.Stringer("id", id), zap.Stringer("digest", digest), zap.Int("bytes", len(data)))
	return id, nil
}

// Load returns the token stored under id.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*trnnut.TRNNut, error) {
	data, err := s.redis.Get(ctx, s.tokenKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	t, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("stored token does not decode", zap.Stringer("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return t, nil
}

// Delete removes the token stored under id and its digest index entry when that
// entry still points at id. Deleting a missing token is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	key := s.tokenKey(id)

	keys := []string{key}
	data, err := s.redis.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if t, err := s.codec.Decode(data); err == nil {
		if digest, err := t.Digest(); err == nil {
			keys = append(keys, s.digestKey(digest))
		}
	}

	if _, err := deleteTokenLua.Run(ctx, s.redis, keys, id.String()).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// LookupDigest returns the ID the token with digest was last saved under.
func (s *Store) LookupDigest(ctx context.Context, digest common.Hash) (uuid.UUID, error) {
	raw, err := s.redis.Get(ctx, s.digestKey(digest)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("digest index holds a malformed id", zap.Stringer("digest", digest), zap.String("value", raw))
		return uuid.Nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return id, nil
}

// Ping checks Redis reachability and returns the round-trip time.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
