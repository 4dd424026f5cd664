package ledger

import (
	"sync"
	"time"
)

// TickInterval is the wall time of one clock tick. 10 minutes gives 144
// ticks per day.
const TickInterval = 10 * time.Minute

// Clock supplies the current tick height. It is read once per settlement
// call; ticks only ever increase.
type Clock interface {
	Now() uint64
}

// ChainClock derives the tick height from wall time relative to a genesis
// instant.
type ChainClock struct {
	genesis time.Time
}

func NewChainClock(genesis time.Time) *ChainClock {
	return &ChainClock{genesis: genesis}
}

func (c *ChainClock) Now() uint64 {
	elapsed := time.Since(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / TickInterval)
}

// ManualClock is an advance-by-hand clock for tests.
type ManualClock struct {
	mu   sync.Mutex
	tick uint64
}

func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{tick: start}
}

func (m *ManualClock) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick
}

func (m *ManualClock) Advance(ticks uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick += ticks
}

func (m *ManualClock) Set(tick uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick = tick
}
