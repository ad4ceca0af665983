package correction

import (
	"sync"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

// Config holds the aggregator's staleness and throttle tunables,
// mirroring spec.md §6.5.
type Config struct {
	MinEmitInterval time.Duration
	RxmCorStale     time.Duration
	NavSatStale     time.Duration
	NavPvtStale     time.Duration
}

// DefaultConfig matches spec.md §6.5's defaults.
func DefaultConfig() Config {
	return Config{
		MinEmitInterval: time.Second,
		RxmCorStale:     5 * time.Second,
		NavSatStale:     5 * time.Second,
		NavPvtStale:     2 * time.Second,
	}
}

// Aggregator is the CorrectionAggregator (C5): it reconciles the
// CorrectionStore's three slots into one CorrectionStatus stream via a
// priority ladder, throttled and change-detected before emission.
type Aggregator struct {
	cfg   Config
	store *Store
	pub   events.Publisher

	mu          sync.Mutex
	lastEmitAt  time.Time
	lastEmitted *events.CorrectionStatus
}

// New constructs an Aggregator publishing onto pub.
func New(cfg Config, store *Store, pub events.Publisher) *Aggregator {
	return &Aggregator{cfg: cfg, store: store, pub: pub}
}

// OnUpdate is called by any decoder that just wrote to the store, and by
// the staleness timer. It evaluates the priority ladder and publishes a
// CorrectionStatus if the throttle and change-detection checks pass. The
// memo lock is released before Publish is called.
func (a *Aggregator) OnUpdate(now time.Time) {
	a.mu.Lock()

	if !a.lastEmitAt.IsZero() && now.Sub(a.lastEmitAt) < a.cfg.MinEmitInterval {
		a.mu.Unlock()
		return
	}

	snap := a.store.Snapshot(now)
	status := a.reconcile(snap, now)

	if a.lastEmitted != nil &&
		a.lastEmitted.Source == status.Source &&
		a.lastEmitted.StatusLabel == status.StatusLabel &&
		a.lastEmitted.Valid == status.Valid &&
		a.lastEmitted.Stale == status.Stale &&
		equalAgePtr(a.lastEmitted.AgeMs, status.AgeMs) {
		a.mu.Unlock()
		return
	}

	a.lastEmitAt = now
	cp := status
	a.lastEmitted = &cp
	a.mu.Unlock()

	a.pub.Publish(status)
}

// reconcile implements the priority ladder of spec.md §4.5: stop at the
// first matching, non-stale rung.
func (a *Aggregator) reconcile(snap Snapshot, now time.Time) events.CorrectionStatus {
	status := events.CorrectionStatus{Timestamp: now}

	// 1. SPARTN via RXM-COR.
	if snap.RxmCorSet && snap.RxmCor.SPARTN && snap.RxmCorAge <= a.cfg.RxmCorStale {
		age := snap.RxmCor.CorrAgeMs
		status.Source = events.StatusSPARTN
		status.StatusLabel = "SPARTN"
		status.Valid = true
		status.Stale = snap.RxmCor.Stale
		status.AgeMs = &age
		status.Flags = rxmCorFlags(snap.RxmCor)
		status.Received = events.NewReceived(0)
		return status
	}

	// 2. RTCM via NAV-PVT.
	if snap.NavPvtSet && snap.NavPvt.DiffSoln && snap.NavPvtAge <= a.cfg.NavPvtStale {
		source := events.StatusDGPS
		label := "DGPS"
		if snap.NavPvt.CarrierSolution == events.CarrierFloat || snap.NavPvt.CarrierSolution == events.CarrierFixed {
			source = events.StatusRTCM
			label = "RTCM"
		}
		status.Source = source
		status.StatusLabel = label
		status.Valid = true
		status.Flags = 0x21
		if snap.NavPvt.DiffAgeMs != nil {
			age := uint32(*snap.NavPvt.DiffAgeMs)
			status.AgeMs = &age
		}
		status.Received = events.NewReceived(0)
		return status
	}

	// 3. SBAS via NAV-SAT.
	if snap.NavSatSet && snap.NavSat.SbasInUse && snap.NavSat.DiffCorrInUse && snap.NavSatAge <= a.cfg.NavSatStale {
		status.Source = events.StatusSBAS
		status.StatusLabel = "SBAS"
		status.Valid = true
		status.Flags = 0x11
		status.Received = events.NewReceived(0)
		return status
	}

	// 4. RTCM/SBAS via RXM-COR fallback.
	if snap.RxmCorSet && (snap.RxmCor.RTCM || snap.RxmCor.SBAS) && snap.RxmCorAge <= a.cfg.RxmCorStale {
		age := snap.RxmCor.CorrAgeMs
		source := events.StatusSBAS
		label := "SBAS"
		if snap.RxmCor.RTCM {
			source = events.StatusRTCM
			label = "RTCM"
		}
		status.Source = source
		status.StatusLabel = label
		status.Valid = true
		status.Stale = snap.RxmCor.Stale
		status.AgeMs = &age
		status.Flags = rxmCorFlags(snap.RxmCor)
		status.Received = events.NewReceived(0)
		return status
	}

	// 5. None.
	status.Source = events.StatusNone
	status.StatusLabel = "None"
	status.Valid = false
	status.Received = events.NewReceived(0)
	return status
}

func rxmCorFlags(c events.Correction) uint8 {
	var f uint8
	if c.Valid {
		f |= 0x01
	}
	if c.RTCM {
		f |= 0x20
	}
	if c.SPARTN {
		f |= 0x40
	}
	if c.SBAS {
		f |= 0x10
	}
	return f
}

func equalAgePtr(a, b *uint32) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
