// Package rtcmrouter implements the RtcmRouter (C6): a type-gated
// outbound path from extracted RTCM3 frames to a radio sink, and an
// unconditional inbound path from the radio sink back to the receiver's
// byte sink, grounded in the teacher's cmd/rtk2go-test NTRIP relay
// wiring (receiver <-> caster byte forwarding).
package rtcmrouter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zedbridge/gnssgateway/internal/frame"
)

// AcceptRange is an inclusive [Low, High] RTCM message-type range.
type AcceptRange struct{ Low, High int }

// DefaultAcceptRanges matches spec.md §6.5's RTCM_ACCEPT_TYPES.
var DefaultAcceptRanges = []AcceptRange{{1000, 1300}, {4000, 4100}}

// RadioSink is the outbound correction-radio interface (C6, §6.3).
type RadioSink interface {
	Send(ctx context.Context, rtcmFrame []byte) error
	OnReceive(fn func([]byte))
}

// ByteSink is the receiver-facing interface the inbound path writes to
// (the serial port's write half).
type ByteSink interface {
	Write(ctx context.Context, data []byte) error
}

// BytesCounter receives outbound/inbound byte counts for C7.
type BytesCounter interface {
	ObserveBytes(key string, nbytes int)
}

// Router is the RtcmRouter (C6).
type Router struct {
	ranges  []AcceptRange
	radio   RadioSink
	byteOut ByteSink
	counter BytesCounter
	logger  logrus.FieldLogger
}

// New constructs a Router wired to radio (outbound RTCM) and byteOut
// (inbound correction bytes written back to the receiver).
func New(ranges []AcceptRange, radio RadioSink, byteOut ByteSink, counter BytesCounter, logger logrus.FieldLogger) *Router {
	r := &Router{ranges: ranges, radio: radio, byteOut: byteOut, counter: counter, logger: logger}
	radio.OnReceive(r.handleInbound)
	return r
}

// Accepts reports whether msgType falls within an accepted range.
func (r *Router) Accepts(msgType int) bool {
	for _, rg := range r.ranges {
		if msgType >= rg.Low && msgType <= rg.High {
			return true
		}
	}
	return false
}

// ForwardOutbound is called by the dispatcher for every extracted RTCM3
// frame; it forwards accepted types verbatim to the radio sink.
func (r *Router) ForwardOutbound(ctx context.Context, frameBytes []byte) {
	msgType := frame.MessageType(frameBytes)
	if !r.Accepts(msgType) {
		r.logger.WithField("msg_type", msgType).Warn("rtcm message type out of accept range, dropped")
		return
	}
	if err := r.radio.Send(ctx, frameBytes); err != nil {
		r.logger.WithError(err).WithField("msg_type", msgType).Warn("radio send failed")
		return
	}
	if r.counter != nil {
		r.counter.ObserveBytes("rtcm.outbound", len(frameBytes))
	}
}

// handleInbound is invoked by the radio sink as correction bytes arrive;
// it writes them back to the receiver's byte sink unconditionally.
func (r *Router) handleInbound(data []byte) {
	if err := r.byteOut.Write(context.Background(), data); err != nil {
		r.logger.WithError(err).Warn("inbound correction write failed")
		return
	}
	if r.counter != nil {
		r.counter.ObserveBytes("rtcm.inbound", len(data))
	}
}
