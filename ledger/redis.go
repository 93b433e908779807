package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/trnnut"
	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds Redis ledger settings.
type Config struct {
	// Prefix namespaces every key.
	Prefix string
	// RecordTTL expires records after the given duration; zero keeps them forever.
	RecordTTL time.Duration
}

// DefaultConfig returns the defaults used by NewRedis when cfg is zero.
func DefaultConfig() Config {
	return Config{Prefix: "trnnut"}
}

// Validate checks cfg.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("ledger Prefix must not be empty")
	}
	if c.RecordTTL < 0 {
		return errors.New("ledger RecordTTL must be >= 0")
	}
	return nil
}

// KEYS are the claimed use keys. ARGV[1] is the current block, ARGV[2..n+1] the
// cooldown of each key and ARGV[n+2] the record TTL in milliseconds. Returns 1 when
// charged, 0 inside a window and -i when KEYS[i] holds something other than a block.
const tryUseScript = `
local current = tonumber(ARGV[1])
local n = #KEYS
local ttl = tonumber(ARGV[n + 2])
for i = 1, n do
  local last = redis.call("GET", KEYS[i])
  if last then
    if not string.match(last, "^%d+$") then
      return -i
    end
    if current < tonumber(last) + tonumber(ARGV[i + 1]) then
      return 0
    end
  end
end
for i = 1, n do
  if ttl > 0 then
    redis.call("SET", KEYS[i], ARGV[1], "PX", ttl)
  else
    redis.call("SET", KEYS[i], ARGV[1])
  end
end
return 1
`

var tryUseLua = redis.NewScript(tryUseScript)

// Option configures a Redis ledger.
type Option func(*Redis)

// WithLogger sets the ledger logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Redis) {
		if l != nil {
			r.logger = l
		}
	}
}

// Redis is a use tracker shared between processes through Redis.
//
// Records of one token share a hash tag, so a multi-claim TryUse stays in one slot on
// Redis Cluster. Block heights are compared as Lua numbers and are exact up to 2^53.
type Redis struct {
	redis  redis.UniversalClient
	config Config
	logger *zap.Logger
}

// NewRedis creates a ledger backed by the given Redis client.
func NewRedis(client redis.UniversalClient, cfg Config, opts ...Option) (*Redis, error) {
	if client == nil {
		return nil, errors.New("ledger: nil redis client")
	}
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Redis{
		redis:  client,
		config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Redis) key(k trnnut.UseKey) string {
	return r.config.Prefix + ":use:{" + k.Token.Hex() + "}:" + string(k.Domain) + ":" + k.Target()
}

// LastUse returns the block of the last recorded use of key.
func (r *Redis) LastUse(ctx context.Context, key trnnut.UseKey) (uint64, bool, error) {
	raw, err := r.redis.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	block, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, r.corrupt(r.key(key), raw)
	}
	return block, true, nil
}

// TryUse records current for every claim iff all cooldowns have elapsed. The check and
// the writes run atomically on the server.
func (r *Redis) TryUse(ctx context.Context, current uint64, claims ...trnnut.UseClaim) (bool, error) {
	if len(claims) == 0 {
		return false, ErrNoClaims
	}

	keys := make([]string, len(claims))
	args := make([]any, 0, len(claims)+2)
	args = append(args, strconv.FormatUint(current, 10))
	for i, c := range claims {
		keys[i] = r.key(c.Key)
		args = append(args, strconv.FormatUint(uint64(c.Cooldown), 10))
	}
	args = append(args, strconv.FormatInt(r.config.RecordTTL.Milliseconds(), 10))

	allowed, err := tryUseLua.Run(ctx, r.redis, keys, args...).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if allowed < 0 {
		key := keys[-allowed-1]
		raw, _ := r.redis.Get(ctx, key).Result()
		return false, r.corrupt(key, raw)
	}
	return allowed == 1, nil
}

func (r *Redis) corrupt(key, raw string) error {
	r.logger.Warn("malformed use record", zap.String("key", key), zap.String("value", raw))
	return fmt.Errorf("%w: %s holds %q", ErrCorruptRecord, key, raw)
}

// Forget deletes every record of token.
func (r *Redis) Forget(ctx context.Context, token common.Hash) error {
	pattern := r.config.Prefix + ":use:{" + token.Hex() + "}:*"

	var cursor uint64
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if len(keys) > 0 {
			if err := r.redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks Redis reachability and returns the round-trip time.
func (r *Redis) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

var _ trnnut.UseTracker = (*Redis)(nil)
