package ledger

import "errors"

// ErrRedisUnavailable wraps every Redis failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrNoClaims is returned when TryUse is called without claims.
var ErrNoClaims = errors.New("no use claims")

// ErrCorruptRecord is returned when a use record does not hold a block height.
var ErrCorruptRecord = errors.New("corrupt use record")
