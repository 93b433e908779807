package trnnut

import (
	"errors"

	"github.com/MrEthical07/trnnut/wire"
)

var (
	// ErrFieldTooLong is returned when an identifier exceeds its 32-byte slot.
	ErrFieldTooLong = wire.ErrFieldTooLong
	// ErrValueOutOfRange is returned when a cooldown or count exceeds its packed width.
	ErrValueOutOfRange = wire.ErrValueOutOfRange
	// ErrInvalidEncoding is returned for non UTF-8 identifiers and malformed flags.
	ErrInvalidEncoding = wire.ErrInvalidEncoding
	// ErrTruncatedBuffer is returned when a section is longer than the remaining bytes.
	ErrTruncatedBuffer = wire.ErrTruncatedBuffer
	// ErrUnknownVersion is returned for unsupported format versions.
	ErrUnknownVersion = wire.ErrUnknownVersion
	// ErrTrailingData is returned when a strict format version finds bytes after the last section.
	ErrTrailingData = wire.ErrTrailingData
	// ErrDuplicateKey is returned when a module, method or contract key repeats.
	ErrDuplicateKey = wire.ErrDuplicateKey
	// ErrKeyMismatch is returned when a module key differs from the module name.
	ErrKeyMismatch = wire.ErrKeyMismatch
	// ErrLimitExceeded is returned when a decoded token exceeds configured limits.
	ErrLimitExceeded = wire.ErrLimitExceeded

	// ErrNilToken is returned when an operation receives a nil token.
	ErrNilToken = errors.New("nil token")
	// ErrNoPermission is matched by every *ValidationError.
	ErrNoPermission = errors.New("no permission")
	// ErrCooldownActive is returned when a use falls inside a cooldown window.
	ErrCooldownActive = errors.New("cooldown active")
	// ErrNilTracker is returned when a CooldownVerifier is built without a UseTracker.
	ErrNilTracker = errors.New("nil use tracker")
	// ErrNilHeightProvider is returned when a CooldownVerifier is built without a BlockHeightProvider.
	ErrNilHeightProvider = errors.New("nil block height provider")
)

// Domain names the part of a token a permission check failed on.
type Domain string

const (
	DomainModule   Domain = "module"
	DomainMethod   Domain = "method"
	DomainContract Domain = "contract"
)

// ValidationError reports a call the token does not grant.
type ValidationError struct {
	Domain Domain
}

func (e *ValidationError) Error() string {
	return "no permission: " + string(e.Domain)
}

// Is matches ErrNoPermission.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNoPermission
}
