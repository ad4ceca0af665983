// Command gnssgateway reads UBX/RTCM3/NMEA traffic off a serial GNSS
// receiver, decodes the curated message set, reconciles correction
// status from three competing sources, forwards accepted RTCM3 frames
// to a correction radio, and publishes everything on an in-process
// event bus. Its wiring mirrors the teacher's single main.go that
// builds every collaborator by hand and drives them from one run loop,
// generalized here to the gateway's larger collaborator graph.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zedbridge/gnssgateway/internal/config"
	"github.com/zedbridge/gnssgateway/internal/correction"
	"github.com/zedbridge/gnssgateway/internal/decode"
	"github.com/zedbridge/gnssgateway/internal/demux"
	"github.com/zedbridge/gnssgateway/internal/events"
	"github.com/zedbridge/gnssgateway/internal/eventbus"
	"github.com/zedbridge/gnssgateway/internal/ioadapt"
	"github.com/zedbridge/gnssgateway/internal/ratemeter"
	"github.com/zedbridge/gnssgateway/internal/rtcmrouter"
)

// correctionAdapter satisfies decode.CorrectionSink by fanning writes
// into the store and then nudging the aggregator, keeping
// internal/decode free of a direct dependency on internal/correction.
type correctionAdapter struct {
	store *correction.Store
	agg   *correction.Aggregator
}

func (a *correctionAdapter) PutRxmCor(c events.Correction, at time.Time)        { a.store.PutRxmCor(c, at) }
func (a *correctionAdapter) PutNavSat(s events.SatelliteSnapshot, at time.Time) { a.store.PutNavSat(s, at) }
func (a *correctionAdapter) PutNavPvt(p events.PositionFix, at time.Time)       { a.store.PutNavPvt(p, at) }
func (a *correctionAdapter) OnUpdate(now time.Time)                            { a.agg.OnUpdate(now) }

// rateObserverAdapter lets the dispatcher feed both message-count and
// byte-count observations to the rate meter through the one
// RateObserver interface it expects.
type rateObserverAdapter struct{ meter *ratemeter.Meter }

func (r *rateObserverAdapter) Observe(key string, now time.Time)      { r.meter.Observe(key, now) }
func (r *rateObserverAdapter) ObserveBytes(key string, nbytes int)    { r.meter.ObserveBytes(key, nbytes) }

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "gnssgateway:", err)
		os.Exit(2)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig).Info("shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("gnssgateway exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) error {
	serialCfg := ioadapt.DefaultSerialConfig(cfg.SerialPort)
	serialCfg.BaudRate = cfg.BaudRate

	source, err := ioadapt.NewSerialByteSource(ctx, serialCfg, logger)
	if err != nil {
		ports, listErr := ioadapt.ListSerialPorts()
		if listErr == nil {
			for _, p := range ports {
				logger.WithField("port", p.Name).Info("available serial port")
			}
		}
		return fmt.Errorf("gnssgateway: opening serial port: %w", err)
	}
	defer source.Close()

	var rawLog *ioadapt.RawLogger
	if cfg.RawLogPath != "" {
		f, err := os.OpenFile(cfg.RawLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("gnssgateway: opening raw log: %w", err)
		}
		defer f.Close()
		rawLog = ioadapt.NewRawLogger(f, logger)
	}

	bus := eventbus.New(64, logger)

	meter := ratemeter.New(ratemeter.Config{Window: cfg.RateWindow()})
	rates := &rateObserverAdapter{meter: meter}

	store := correction.NewStore()
	aggCfg := correction.Config{
		MinEmitInterval: cfg.MinEmitInterval(),
		RxmCorStale:     cfg.RxmCorStale(),
		NavSatStale:     cfg.NavSatStale(),
		NavPvtStale:     cfg.NavPvtStale(),
	}
	agg := correction.New(aggCfg, store, bus)
	corrSink := &correctionAdapter{store: store, agg: agg}

	var radio rtcmrouter.RadioSink = ioadapt.LoopbackRadioSink{}
	if cfg.NtripAddr != "" {
		ntripCfg := ioadapt.NtripConfig{
			Addr:        cfg.NtripAddr,
			Mountpoint:  cfg.NtripMountpoint,
			Password:    cfg.NtripPassword,
			DialTimeout: 10 * time.Second,
		}
		sink, err := ioadapt.DialNtripRadioSink(ctx, ntripCfg, logger)
		if err != nil {
			return fmt.Errorf("gnssgateway: dialing NTRIP caster: %w", err)
		}
		defer sink.Close()
		radio = sink
	}
	router := rtcmrouter.New(rtcmrouter.DefaultAcceptRanges, radio, source, rates, logger)

	dispatcher := decode.NewDispatcher(ctx, time.Now(), bus, corrSink, router, rates, nil, logger)

	demuxCfg := demux.Config{
		MaxBufferBytes:    cfg.MaxBufferBytes,
		MaxFramesPerDrain: cfg.MaxFramesPerDrain,
		Limits:            demux.DefaultConfig().Limits,
	}
	demuxCfg.Limits.UbxMaxPayload = cfg.UbxMaxPayload
	demuxCfg.Limits.RtcmMaxPayload = cfg.RtcmMaxPayload
	dx := demux.New(demuxCfg, dispatcher, logger)

	go publishRates(ctx, bus, meter)
	go publishStaleness(ctx, agg)

	readBuf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := source.Read(ctx, readBuf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("gnssgateway: serial read: %w", err)
		}
		if n == 0 {
			continue
		}

		chunk := readBuf[:n]
		if rawLog != nil {
			rawLog.Write(chunk)
		}
		dx.Ingest(chunk)
		if _, err := dx.Drain(ctx); err != nil {
			logger.WithError(err).Warn("drain failed")
		}
	}
}

// publishRates drives C7's periodic MessageRatesUpdate/DataRatesUpdate
// emission on a one-second tick, matching spec.md §4.7.
func publishRates(ctx context.Context, pub events.Publisher, meter *ratemeter.Meter) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			pub.Publish(events.MessageRatesUpdate{Rates: meter.MessageRates(now)})
			pub.Publish(events.DataRatesUpdate{Kbps: meter.DataRates(now)})
		}
	}
}

// publishStaleness drives the aggregator on a timer independent of
// message arrival, so a source going quiet is itself detected and
// demotes the emitted CorrectionStatus (spec.md §4.5).
func publishStaleness(ctx context.Context, agg *correction.Aggregator) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			agg.OnUpdate(time.Now())
		}
	}
}
