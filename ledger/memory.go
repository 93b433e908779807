package ledger

import (
	"context"
	"sync"

	"github.com/MrEthical07/trnnut"
	"github.com/ethereum/go-ethereum/common"
)

// Memory is an in-process use tracker. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.Mutex
	last map[trnnut.UseKey]uint64
}

// NewMemory returns an empty tracker.
func NewMemory() *Memory {
	return &Memory{last: make(map[trnnut.UseKey]uint64)}
}

// LastUse returns the block of the last recorded use of key.
func (m *Memory) LastUse(ctx context.Context, key trnnut.UseKey) (uint64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	block, ok := m.last[key]
	return block, ok, nil
}

// TryUse records current for every claim iff all cooldowns have elapsed.
func (m *Memory) TryUse(ctx context.Context, current uint64, claims ...trnnut.UseClaim) (bool, error) {
	if len(claims) == 0 {
		return false, ErrNoClaims
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range claims {
		last, used := m.last[c.Key]
		if !trnnut.CooldownElapsed(last, used, c.Cooldown, current) {
			return false, nil
		}
	}
	for _, c := range claims {
		m.last[c.Key] = current
	}
	return true, nil
}

// Forget drops every record of token.
func (m *Memory) Forget(token common.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.last {
		if key.Token == token {
			delete(m.last, key)
		}
	}
}

// Len returns the number of records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.last)
}

var _ trnnut.UseTracker = (*Memory)(nil)
