// Package correction implements the CorrectionStore (C4) and
// CorrectionAggregator (C5): the single-writer-per-slot state that
// decoders feed and the priority-ladder reconciliation that turns it
// into one steady CorrectionStatus stream.
package correction

import (
	"sync"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

// Store holds three single-writer slots, each stamped with the wall
// time it was written. No history is retained, grounded in the
// teacher's pkg/caster mount-point pattern of one mutex-guarded struct
// shared between a writer and readers, generalized here to three
// independent slots updated by three different decoders.
type Store struct {
	mu sync.Mutex

	rxmCor        events.Correction
	rxmCorSet     bool
	rxmCorAt      time.Time

	navSat        events.SatelliteSnapshot
	navSatSet     bool
	navSatAt      time.Time

	navPvt        events.PositionFix
	navPvtSet     bool
	navPvtAt      time.Time
}

// NewStore constructs an empty correction store.
func NewStore() *Store { return &Store{} }

// PutRxmCor stamps the RXM-COR slot with the decoded event at the given
// wall-clock receipt time.
func (s *Store) PutRxmCor(c events.Correction, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rxmCor, s.rxmCorSet, s.rxmCorAt = c, true, at
}

// PutNavSat stamps the NAV-SAT slot.
func (s *Store) PutNavSat(sat events.SatelliteSnapshot, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navSat, s.navSatSet, s.navSatAt = sat, true, at
}

// PutNavPvt stamps the NAV-PVT slot.
func (s *Store) PutNavPvt(pvt events.PositionFix, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navPvt, s.navPvtSet, s.navPvtAt = pvt, true, at
}

// Snapshot is a consistent, guarded read of all three slots.
type Snapshot struct {
	RxmCor    events.Correction
	RxmCorSet bool
	RxmCorAge time.Duration

	NavSat    events.SatelliteSnapshot
	NavSatSet bool
	NavSatAge time.Duration

	NavPvt    events.PositionFix
	NavPvtSet bool
	NavPvtAge time.Duration
}

// Snapshot returns a consistent triple, with ages computed relative to now.
func (s *Store) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		RxmCor:    s.rxmCor,
		RxmCorSet: s.rxmCorSet,
		NavSat:    s.navSat,
		NavSatSet: s.navSatSet,
		NavPvt:    s.navPvt,
		NavPvtSet: s.navPvtSet,
	}
	if s.rxmCorSet {
		snap.RxmCorAge = now.Sub(s.rxmCorAt)
	}
	if s.navSatSet {
		snap.NavSatAge = now.Sub(s.navSatAt)
	}
	if s.navPvtSet {
		snap.NavPvtAge = now.Sub(s.navPvtAt)
	}
	return snap
}
