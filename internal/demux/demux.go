// Package demux implements the Demultiplexer (C2): it owns the
// InputBuffer, accepts byte chunks through Ingest, drives the FrameFinder
// (C1), drops unrecognizable bytes one at a time, and dispatches
// complete frames to the payload decoders (C3).
package demux

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zedbridge/gnssgateway/internal/frame"
)

// FrameHandler receives complete, checksum-valid frames extracted from
// the stream. Implementations must not block or mutate shared state
// except through their own well-defined sinks (spec.md §4.3); a panic
// or error from HandleFrame is caught and logged per-frame, with the
// loop continuing to the next frame (spec.md §4.2's failure semantics).
type FrameHandler interface {
	HandleFrame(kind frame.Kind, frameBytes []byte) error
}

// Config holds the demultiplexer's tunables, mirroring spec.md §6.5.
type Config struct {
	MaxBufferBytes    int
	MaxFramesPerDrain int
	Limits            frame.Limits
}

// DefaultConfig matches spec.md §6.5's defaults.
func DefaultConfig() Config {
	return Config{
		MaxBufferBytes:    1 << 20,
		MaxFramesPerDrain: 50,
		Limits:            frame.DefaultLimits,
	}
}

// Demux is the Demultiplexer (C2). A single logical actor owns it;
// Drain is not re-entrant.
type Demux struct {
	cfg     Config
	buf     *Buffer
	handler FrameHandler
	logger  logrus.FieldLogger
}

// New constructs a Demux. handler is invoked for every extracted frame.
func New(cfg Config, handler FrameHandler, logger logrus.FieldLogger) *Demux {
	return &Demux{
		cfg:     cfg,
		buf:     NewBuffer(cfg.MaxBufferBytes),
		handler: handler,
		logger:  logger,
	}
}

// Ingest appends newly read bytes to the input buffer. An overflow
// (spec.md's BufferOverflow) is logged as a warning; it is recovered
// automatically by head-drop and never raised as an error.
func (d *Demux) Ingest(chunk []byte) {
	dropped := d.buf.Ingest(chunk)
	if dropped > 0 {
		d.logger.WithFields(logrus.Fields{
			"dropped_bytes": dropped,
			"buffer_len":    d.buf.Len(),
		}).Warn("input buffer overflow, oldest bytes dropped")
	}
}

// Drain extracts every currently recognizable frame from the buffer,
// dispatching each to the handler, until FrameFinder reports Partial,
// the buffer is exhausted, the per-call frame cap is reached, or ctx is
// cancelled. It returns the number of frames dispatched.
func (d *Demux) Drain(ctx context.Context) (int, error) {
	dispatched := 0
	for dispatched < d.cfg.MaxFramesPerDrain {
		select {
		case <-ctx.Done():
			return dispatched, ctx.Err()
		default:
		}

		if d.buf.Len() == 0 {
			return dispatched, nil
		}

		found, partial := frame.Find(d.buf.Bytes(), d.cfg.Limits)
		switch {
		case found != nil:
			if found.StartOffset > 0 {
				d.logger.WithFields(logrus.Fields{
					"frame_kind": found.Kind.String(),
					"dropped":    found.StartOffset,
				}).Debug("dropping pre-frame garbage")
				d.buf.Drop(found.StartOffset)
			}
			frameBytes := append([]byte(nil), d.buf.Bytes()[:found.TotalLen]...)
			d.buf.Drop(found.TotalLen)

			d.dispatch(found.Kind, frameBytes)
			dispatched++

		case partial != nil:
			return dispatched, nil

		default:
			// TransientByteLoss: recovered silently by dropping one byte.
			d.buf.Drop(1)
		}
	}
	return dispatched, nil
}

// dispatch invokes the handler, recovering from panics and logging
// errors so a single bad frame can never stall the ingestion actor.
func (d *Demux) dispatch(kind frame.Kind, frameBytes []byte) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"frame_kind": kind.String(),
				"panic":      r,
			}).Error("decoder panicked, frame discarded")
		}
	}()
	if err := d.handler.HandleFrame(kind, frameBytes); err != nil {
		d.logger.WithFields(logrus.Fields{
			"frame_kind": kind.String(),
			"err":        err,
		}).Warn("decoder error, frame discarded")
	}
}
