package ratemeter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterObserveAndRate(t *testing.T) {
	m := New(Config{Window: 5 * time.Second})
	base := time.Now()
	for i := 0; i < 5; i++ {
		m.Observe("UBX.NAV_PVT", base.Add(time.Duration(i)*time.Second))
	}
	rates := m.MessageRates(base.Add(4 * time.Second))
	require.Len(t, rates, 1)
	assert.Equal(t, "UBX.NAV_PVT", rates[0].Key)
	assert.Equal(t, 5, rates[0].CountPerWindow)
}

func TestMeterEvictsOldEntries(t *testing.T) {
	m := New(Config{Window: 2 * time.Second})
	base := time.Now()
	m.Observe("NMEA.GPGGA", base)
	m.Observe("NMEA.GPGGA", base.Add(500*time.Millisecond))

	rates := m.MessageRates(base.Add(10 * time.Second))
	assert.Empty(t, rates, "stale entries should be evicted and key dropped once empty")
}

func TestMeterByteRate(t *testing.T) {
	m := New(DefaultConfig())
	base := time.Now()
	m.ObserveBytes("RTCM3.1077", 1000)
	m.ObserveBytes("RTCM3.1077", 250)

	kbps := m.DataRates(base.Add(time.Second))
	require.Contains(t, kbps, "RTCM3.1077")
	assert.InDelta(t, 10.0, kbps["RTCM3.1077"], 0.01) // 1250 bytes * 8 / 1000 over ~1s

	kbps2 := m.DataRates(base.Add(2 * time.Second))
	assert.Equal(t, 0.0, kbps2["RTCM3.1077"], "accumulator must reset after read")
}
