package ioadapt

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// NtripConfig configures an outbound NTRIP v1 connection to a caster
// mountpoint carrying RTCM correction data, grounded in the teacher's
// cmd/rtk2go-test NTRIP client dial/handshake sequence.
type NtripConfig struct {
	Addr       string // host:port
	Mountpoint string
	Username   string
	Password   string
	DialTimeout time.Duration
}

// NtripRadioSink is the RadioSink (C6/C12): it streams outbound RTCM3
// frames to an NTRIP caster mountpoint and delivers inbound bytes (a
// caster relaying corrections back, e.g. for a base-station role) to a
// registered callback.
type NtripRadioSink struct {
	cfg    NtripConfig
	logger logrus.FieldLogger

	mu      sync.Mutex
	conn    net.Conn
	onRecv  func([]byte)
}

// DialNtripRadioSink opens the TCP connection and performs the NTRIP v1
// source handshake (an HTTP-like request line followed by caster
// acknowledgement), then starts a background reader delivering inbound
// bytes to OnReceive's callback.
func DialNtripRadioSink(ctx context.Context, cfg NtripConfig, logger logrus.FieldLogger) (*NtripRadioSink, error) {
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("ioadapt: dial ntrip caster: %w", err)
	}

	req := fmt.Sprintf("SOURCE %s /%s\r\nSource-Agent: NTRIP gnssgateway/1.0\r\n\r\n", cfg.Password, cfg.Mountpoint)
	if _, err := conn.Write([]byte(req)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ioadapt: ntrip handshake write: %w", err)
	}

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ioadapt: ntrip handshake read: %w", err)
	}
	logger.WithField("response", line).Debug("ntrip caster handshake response")

	sink := &NtripRadioSink{cfg: cfg, logger: logger, conn: conn}
	go sink.readLoop(reader)
	return sink, nil
}

func (s *NtripRadioSink) readLoop(r *bufio.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.mu.Lock()
			cb := s.onRecv
			s.mu.Unlock()
			if cb != nil {
				cp := append([]byte(nil), buf[:n]...)
				cb(cp)
			}
		}
		if err != nil {
			s.logger.WithError(err).Debug("ntrip inbound stream closed")
			return
		}
	}
}

// Send writes an RTCM3 frame to the caster connection.
func (s *NtripRadioSink) Send(ctx context.Context, rtcmFrame []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
		defer s.conn.SetWriteDeadline(time.Time{})
	}
	_, err := s.conn.Write(rtcmFrame)
	return err
}

// OnReceive registers the callback invoked for every inbound chunk.
func (s *NtripRadioSink) OnReceive(fn func([]byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRecv = fn
}

// Close closes the underlying connection.
func (s *NtripRadioSink) Close() error {
	return s.conn.Close()
}

// LoopbackRadioSink is a no-network RadioSink used when no correction
// radio is configured: outbound frames are discarded and no inbound
// bytes are ever delivered. Useful for standalone deployments that only
// need the telemetry event stream.
type LoopbackRadioSink struct{}

func (LoopbackRadioSink) Send(ctx context.Context, rtcmFrame []byte) error { return nil }
func (LoopbackRadioSink) OnReceive(fn func([]byte))                       {}
func (LoopbackRadioSink) Close() error                                     { return nil }
