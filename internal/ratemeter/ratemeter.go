// Package ratemeter implements the RateMeter (C7): per-message-key
// rolling-window frequency counters and periodic byte-rate accumulation,
// grounded in the teacher's pkg/caster mutex-guarded counter style.
package ratemeter

import (
	"sync"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

// Config holds the rate meter's tunables, mirroring spec.md §6.5.
type Config struct {
	Window time.Duration
}

// DefaultConfig matches spec.md §6.5's RATE_WINDOW_S default.
func DefaultConfig() Config { return Config{Window: 5 * time.Second} }

// Meter tracks a rolling-window timestamp queue per message key plus a
// byte-rate accumulator, reset once per second.
type Meter struct {
	cfg Config

	mu         sync.Mutex
	windows    map[string][]time.Time
	byteAccum  map[string]uint64
	lastReset  time.Time
}

// New constructs a Meter.
func New(cfg Config) *Meter {
	return &Meter{
		cfg:       cfg,
		windows:   make(map[string][]time.Time),
		byteAccum: make(map[string]uint64),
	}
}

// Observe records one message observation for key at time now, evicting
// entries older than the rolling window.
func (m *Meter) Observe(key string, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := append(m.windows[key], now)
	cutoff := now.Add(-m.cfg.Window)
	i := 0
	for i < len(q) && q[i].Before(cutoff) {
		i++
	}
	m.windows[key] = q[i:]
}

// ObserveBytes accumulates nbytes toward key's byte-rate counter.
func (m *Meter) ObserveBytes(key string, nbytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byteAccum[key] += uint64(nbytes)
}

// MessageRates returns the current per-key rate snapshot (count/window).
func (m *Meter) MessageRates(now time.Time) []events.MessageRate {
	m.mu.Lock()
	defer m.mu.Unlock()

	windowSecs := m.cfg.Window.Seconds()
	rates := make([]events.MessageRate, 0, len(m.windows))
	for key, q := range m.windows {
		cutoff := now.Add(-m.cfg.Window)
		i := 0
		for i < len(q) && q[i].Before(cutoff) {
			i++
		}
		q = q[i:]
		m.windows[key] = q
		if len(q) == 0 {
			continue
		}
		rates = append(rates, events.MessageRate{
			Key:            key,
			CountPerWindow: len(q),
			RatePerSec:     float64(len(q)) / windowSecs,
		})
	}
	return rates
}

// DataRates returns kbps for each key since the last call, then resets
// the accumulators. Intended to be called once per second by C7's
// publishing timer.
func (m *Meter) DataRates(now time.Time) map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := time.Second
	if !m.lastReset.IsZero() {
		elapsed = now.Sub(m.lastReset)
	}
	if elapsed <= 0 {
		elapsed = time.Second
	}
	m.lastReset = now

	kbps := make(map[string]float64, len(m.byteAccum))
	for key, bytes := range m.byteAccum {
		kbps[key] = (float64(bytes) * 8 / 1000) / elapsed.Seconds()
		m.byteAccum[key] = 0
	}
	return kbps
}
