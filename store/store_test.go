package store

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/trnnut"
	"github.com/MrEthical07/trnnut/permission"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, cfg Config) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewStore(rdb, cfg)
	require.NoError(t, err)
	return s, mr
}

func testToken(t *testing.T) *trnnut.TRNNut {
	t.Helper()
	tok, err := trnnut.FromSections(
		[]trnnut.ModuleSection{{
			Key:           "balances",
			BlockCooldown: 12,
			Methods: []permission.MethodEntry{
				{Key: "transfer", Method: permission.NewMethod("transfer").WithConstraints([]byte{0xde, 0xad})},
			},
		}},
		[]trnnut.ContractSection{{Address: permission.ContractAddress{0: 1}, BlockCooldown: 3}},
	)
	require.NoError(t, err)
	return tok
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, Config{})
	ctx := context.Background()
	tok := testToken(t)

	id, err := s.Save(ctx, tok)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	loaded, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(tok))

	digest, err := tok.Digest()
	require.NoError(t, err)
	found, err := s.LookupDigest(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, id, found)
}

func TestLoadMissing(t *testing.T) {
	s, _ := newTestStore(t, Config{})
	_, err := s.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.LookupDigest(context.Background(), [32]byte{9})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	s, mr := newTestStore(t, Config{})
	id := uuid.New()
	require.NoError(t, mr.Set("trnnut:token:"+id.String(), "\x07\x00\x00\x00"))

	_, err := s.Load(context.Background(), id)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorContains(t, err, "unknown_version")
}

func TestLookupDigestCorrupt(t *testing.T) {
	s, mr := newTestStore(t, Config{})
	tok := testToken(t)
	digest, err := tok.Digest()
	require.NoError(t, err)
	require.NoError(t, mr.Set("trnnut:digest:"+digest.Hex(), "not-a-uuid"))

	_, err = s.LookupDigest(context.Background(), digest)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDeleteIdempotent(t *testing.T) {
	s, mr := newTestStore(t, Config{Prefix: "p"})
	ctx := context.Background()
	tok := testToken(t)

	id, err := s.Save(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	digest, err := tok.Digest()
	require.NoError(t, err)
	assert.False(t, mr.Exists("p:digest:"+digest.Hex()))
}

func TestDeleteKeepsNewerDigestEntry(t *testing.T) {
	s, _ := newTestStore(t, Config{})
	ctx := context.Background()
	tok := testToken(t)

	first, err := s.Save(ctx, tok)
	require.NoError(t, err)
	second, err := s.Save(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, first))

	digest, err := tok.Digest()
	require.NoError(t, err)
	found, err := s.LookupDigest(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, second, found)
}

func TestSaveTTL(t *testing.T) {
	s, mr := newTestStore(t, Config{Prefix: "trnnut", TTL: time.Hour})
	id, err := s.Save(context.Background(), testToken(t))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, mr.TTL("trnnut:token:"+id.String()))

	mr.FastForward(2 * time.Hour)
	_, err = s.Load(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodecLimitsApplyOnLoad(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := trnnut.DefaultConfig()
	cfg.Limits.MaxTokenSize = 8
	strict, err := trnnut.NewCodec(cfg)
	require.NoError(t, err)

	loose, err := NewStore(rdb, Config{})
	require.NoError(t, err)
	tight, err := NewStore(rdb, Config{}, WithCodec(strict))
	require.NoError(t, err)

	id, err := loose.Save(context.Background(), testToken(t))
	require.NoError(t, err)

	_, err = tight.Load(context.Background(), id)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorContains(t, err, "limit_exceeded")
}

func TestRedisUnavailable(t *testing.T) {
	s, mr := newTestStore(t, Config{})
	mr.Close()

	_, err := s.Save(context.Background(), testToken(t))
	assert.ErrorIs(t, err, ErrRedisUnavailable)
	_, err = s.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRedisUnavailable)
	assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), ErrRedisUnavailable)
	_, err = s.Ping(context.Background())
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}

func TestNewStoreValidation(t *testing.T) {
	_, err := NewStore(nil, Config{})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	_, err = NewStore(rdb, Config{Prefix: "x", TTL: -time.Minute})
	assert.Error(t, err)
}
