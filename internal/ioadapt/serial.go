// Package ioadapt implements the byte-source, radio-sink, and raw-log
// adapters (C10, C12, C13) that connect the gateway core to the outside
// world. The serial adapter is grounded in the teacher's
// hardware/topgnss/top708 connect/retry loop and its abstraction over a
// real go.bug.st/serial port, generalized to a context-aware
// Read/Write/Close byte source and to context-based cancellation.
package ioadapt

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// ListSerialPorts enumerates available serial ports with USB vendor/
// product metadata, used by the entrypoint to print candidates when
// the configured port cannot be opened.
func ListSerialPorts() ([]*enumerator.PortDetails, error) {
	return enumerator.GetDetailedPortsList()
}

// SerialConfig holds the tunables for opening and retrying a serial port.
type SerialConfig struct {
	PortName     string
	BaudRate     int
	ReadTimeout  time.Duration
	RetryBackoff time.Duration
	MaxRetries   int // 0 means retry forever
}

// DefaultSerialConfig provides sane defaults for a u-blox receiver at
// its common factory baud rate.
func DefaultSerialConfig(portName string) SerialConfig {
	return SerialConfig{
		PortName:     portName,
		BaudRate:     38400,
		ReadTimeout:  200 * time.Millisecond,
		RetryBackoff: time.Second,
		MaxRetries:   0,
	}
}

// SerialByteSource adapts a go.bug.st/serial port to the gateway's
// byte-source shape. Opening the port retries with backoff, mirroring
// the teacher's connect-with-retry loop; a later Read or Write error is
// returned to the caller and the port is not reopened.
type SerialByteSource struct {
	cfg    SerialConfig
	logger logrus.FieldLogger
	port   serial.Port
}

// NewSerialByteSource opens the configured port, retrying per cfg until
// ctx is cancelled or MaxRetries is exhausted.
func NewSerialByteSource(ctx context.Context, cfg SerialConfig, logger logrus.FieldLogger) (*SerialByteSource, error) {
	s := &SerialByteSource{cfg: cfg, logger: logger}
	if err := s.connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// serialOpen is overridden in tests, mirroring the teacher's pattern of
// injecting a mock serial port (hardware/topgnss/top708's MockSerialPort)
// rather than hitting a real device.
var serialOpen = serial.Open

func (s *SerialByteSource) connect(ctx context.Context) error {
	mode := &serial.Mode{BaudRate: s.cfg.BaudRate}
	attempt := 0
	for {
		attempt++
		port, err := serialOpen(s.cfg.PortName, mode)
		if err == nil {
			if err := port.SetReadTimeout(s.cfg.ReadTimeout); err != nil {
				port.Close()
				return fmt.Errorf("ioadapt: set read timeout: %w", err)
			}
			s.port = port
			return nil
		}

		s.logger.WithFields(logrus.Fields{
			"port":    s.cfg.PortName,
			"attempt": attempt,
			"err":     err,
		}).Warn("serial port open failed, retrying")

		if s.cfg.MaxRetries > 0 && attempt >= s.cfg.MaxRetries {
			return fmt.Errorf("ioadapt: open %s: %w", s.cfg.PortName, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.RetryBackoff):
		}
	}
}

// Read fills buf from the serial port, respecting ctx cancellation
// between the source's own short read timeouts (spec.md §5's
// "Timeouts" requirement: short reads only permit cancellation checks,
// they never imply framing timeouts).
func (s *SerialByteSource) Read(ctx context.Context, buf []byte) (int, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		n, err := s.port.Read(buf)
		if n > 0 {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		// n == 0, err == nil: read timeout elapsed with no data: loop to
		// re-check cancellation.
	}
}

// Write sends data to the serial port (used for inbound RTCM correction
// injection).
func (s *SerialByteSource) Write(ctx context.Context, data []byte) error {
	_, err := s.port.Write(data)
	return err
}

// Close releases the underlying serial port.
func (s *SerialByteSource) Close() error {
	return s.port.Close()
}
