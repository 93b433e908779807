package trnnut

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/MrEthical07/trnnut/permission"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// UseKey identifies one cooldown window: a resolved permission entry of one token.
//
// Module, Method and Address hold the matched keys, so every call admitted through a
// wildcard entry shares that entry's window. Fields outside Domain stay zero.
type UseKey struct {
	Token   common.Hash
	Domain  Domain
	Module  string
	Method  string
	Address permission.ContractAddress
}

// Target encodes the entry part of k. Identifiers are length prefixed, so distinct
// keys never share a target even when identifiers contain separators.
func (k UseKey) Target() string {
	switch k.Domain {
	case DomainContract:
		return k.Address.String()
	case DomainModule:
		return lengthPrefixed(k.Module)
	default:
		return lengthPrefixed(k.Module) + "/" + lengthPrefixed(k.Method)
	}
}

func (k UseKey) String() string {
	return k.Token.Hex() + ":" + string(k.Domain) + ":" + k.Target()
}

func lengthPrefixed(s string) string {
	return strconv.Itoa(len(s)) + ":" + s
}

// UseClaim asks a UseTracker to charge Key if Cooldown blocks have passed since its
// last use.
type UseClaim struct {
	Key      UseKey
	Cooldown uint32
}

// UseTracker records the block height at which permission entries were last used.
type UseTracker interface {
	// LastUse returns the block of the last recorded use of key.
	LastUse(ctx context.Context, key UseKey) (block uint64, ok bool, err error)
	// TryUse records current as the last use of every claimed key iff every claim's
	// cooldown has elapsed. It is all or nothing.
	TryUse(ctx context.Context, current uint64, claims ...UseClaim) (bool, error)
}

// BlockHeightProvider reports the current block height.
type BlockHeightProvider interface {
	CurrentBlock(ctx context.Context) (uint64, error)
}

// BlockHeightFunc adapts a function to BlockHeightProvider.
type BlockHeightFunc func(ctx context.Context) (uint64, error)

// CurrentBlock calls f.
func (f BlockHeightFunc) CurrentBlock(ctx context.Context) (uint64, error) {
	return f(ctx)
}

// CooldownElapsed reports whether an entry last used at lastUse may be used again at
// current. An entry that was never used is always available.
func CooldownElapsed(lastUse uint64, used bool, cooldown uint32, current uint64) bool {
	if !used {
		return true
	}
	if lastUse > math.MaxUint64-uint64(cooldown) {
		return false
	}
	return current >= lastUse+uint64(cooldown)
}

/*
====================================
VERIFIER
====================================
*/

// VerifierOption configures a CooldownVerifier.
type VerifierOption func(*CooldownVerifier)

// WithLogger sets the verifier logger. The default discards everything.
func WithLogger(l *zap.Logger) VerifierOption {
	return func(v *CooldownVerifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMetrics makes the verifier count allowed and rejected uses.
func WithMetrics(m *Metrics) VerifierOption {
	return func(v *CooldownVerifier) {
		v.metrics = m
	}
}

// CooldownVerifier checks block cooldowns of token entries against a UseTracker.
type CooldownVerifier struct {
	tracker  UseTracker
	heights  BlockHeightProvider
	logger   *zap.Logger
	metrics  *Metrics
	observer Observer
}

// NewCooldownVerifier builds a verifier. Both collaborators are required.
func NewCooldownVerifier(tracker UseTracker, heights BlockHeightProvider, opts ...VerifierOption) (*CooldownVerifier, error) {
	if tracker == nil {
		return nil, ErrNilTracker
	}
	if heights == nil {
		return nil, ErrNilHeightProvider
	}
	v := &CooldownVerifier{
		tracker: tracker,
		heights: heights,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// VerifyContract reports whether t holds address and its cooldown has elapsed at the
// current block. It records nothing.
func (v *CooldownVerifier) VerifyContract(ctx context.Context, t *TRNNut, address permission.ContractAddress) (bool, error) {
	if !t.VerifyContract(address) {
		return false, nil
	}
	c, _ := t.Contract(address)
	claim, err := contractClaim(t, c)
	if err != nil {
		return false, err
	}
	return v.verify(ctx, claim)
}

// UseContract charges the contract cooldown of address. It fails with a
// *ValidationError when t does not hold address and with ErrCooldownActive when the
// window has not elapsed.
func (v *CooldownVerifier) UseContract(ctx context.Context, t *TRNNut, address permission.ContractAddress) error {
	if !t.VerifyContract(address) {
		return &ValidationError{Domain: DomainContract}
	}
	c, _ := t.Contract(address)
	claim, err := contractClaim(t, c)
	if err != nil {
		return err
	}
	return v.use(ctx, claim)
}

// VerifyRuntimeCall reports whether t grants method of module, wildcards included,
// and both the module and method cooldowns have elapsed.
func (v *CooldownVerifier) VerifyRuntimeCall(ctx context.Context, t *TRNNut, module, method string) (bool, error) {
	claims, err := runtimeClaims(t, module, method)
	if err != nil {
		if errors.Is(err, ErrNoPermission) {
			return false, nil
		}
		return false, err
	}
	return v.verify(ctx, claims...)
}

// UseRuntimeCall charges the module and method cooldowns together.
func (v *CooldownVerifier) UseRuntimeCall(ctx context.Context, t *TRNNut, module, method string) error {
	claims, err := runtimeClaims(t, module, method)
	if err != nil {
		return err
	}
	return v.use(ctx, claims...)
}

func (v *CooldownVerifier) verify(ctx context.Context, claims ...UseClaim) (bool, error) {
	current, err := v.heights.CurrentBlock(ctx)
	if err != nil {
		return false, fmt.Errorf("current block: %w", err)
	}
	for _, claim := range claims {
		last, used, err := v.tracker.LastUse(ctx, claim.Key)
		if err != nil {
			v.logger.Warn("cooldown lookup failed", zap.Stringer("key", claim.Key), zap.Error(err))
			return false, err
		}
		if !CooldownElapsed(last, used, claim.Cooldown, current) {
			return false, nil
		}
	}
	return true, nil
}

func (v *CooldownVerifier) use(ctx context.Context, claims ...UseClaim) error {
	current, err := v.heights.CurrentBlock(ctx)
	if err != nil {
		return fmt.Errorf("current block: %w", err)
	}
	allowed, err := v.tracker.TryUse(ctx, current, claims...)
	if err != nil {
		v.logger.Warn("cooldown record failed", zap.Uint64("block", current), zap.Error(err))
		return err
	}
	key := claims[len(claims)-1].Key
	if v.observer != nil {
		v.observer.ObserveCooldown(key.Domain, allowed)
	}
	if !allowed {
		v.metrics.Inc(MetricCooldownRejected)
		v.logger.Debug("cooldown active",
			zap.Uint64("block", current),
			zap.Stringer("key", key),
		)
		return fmt.Errorf("%w at block %d", ErrCooldownActive, current)
	}
	v.metrics.Inc(MetricCooldownAllowed)
	v.logger.Debug("cooldown charged",
		zap.Uint64("block", current),
		zap.Stringer("key", key),
	)
	return nil
}

func contractClaim(t *TRNNut, c permission.Contract) (UseClaim, error) {
	digest, err := t.Digest()
	if err != nil {
		return UseClaim{}, err
	}
	return UseClaim{
		Key:      UseKey{Token: digest, Domain: DomainContract, Address: c.Address},
		Cooldown: c.BlockCooldown,
	}, nil
}

func runtimeClaims(t *TRNNut, module, method string) ([]UseClaim, error) {
	moduleKey, m, resolved, err := t.resolveRuntimeCall(module, method)
	if err != nil {
		return nil, err
	}
	digest, err := t.Digest()
	if err != nil {
		return nil, err
	}
	return []UseClaim{
		{
			Key:      UseKey{Token: digest, Domain: DomainModule, Module: moduleKey},
			Cooldown: m.BlockCooldown,
		},
		{
			Key:      UseKey{Token: digest, Domain: DomainMethod, Module: moduleKey, Method: resolved.key},
			Cooldown: resolved.method.BlockCooldown,
		},
	}, nil
}
