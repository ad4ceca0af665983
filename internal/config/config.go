// Package config implements the gateway's flag-based configuration
// layer (C8), grounded in the teacher's cmd/ntrip-server main.go flag
// registration style, generalized to the full set of tunables
// enumerated in spec.md §6.5.
package config

import (
	"flag"
	"time"
)

// Config holds every runtime tunable the gateway exposes on its command
// line, with defaults matching spec.md §6.5.
type Config struct {
	SerialPort string
	BaudRate   int

	NtripAddr       string
	NtripMountpoint string
	NtripPassword   string
	RawLogPath      string

	MinEmitIntervalMs int
	RxmCorStaleS      float64
	NavSatStaleS      float64
	NavPvtStaleS      float64

	MaxBufferBytes    int
	MaxFramesPerDrain int

	RateWindowS float64

	UbxMaxPayload  int
	RtcmMaxPayload int

	LogLevel string
}

// Parse registers and parses the gateway's flags from args (typically
// os.Args[1:]), returning the resolved Config.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("gnssgateway", flag.ContinueOnError)
	cfg := Config{}

	fs.StringVar(&cfg.SerialPort, "serial-port", "/dev/ttyACM0", "serial device path for the GNSS receiver")
	fs.IntVar(&cfg.BaudRate, "baud-rate", 38400, "serial baud rate")

	fs.StringVar(&cfg.NtripAddr, "ntrip-addr", "", "NTRIP caster host:port (empty disables the radio sink)")
	fs.StringVar(&cfg.NtripMountpoint, "ntrip-mountpoint", "", "NTRIP caster mountpoint")
	fs.StringVar(&cfg.NtripPassword, "ntrip-password", "", "NTRIP caster source password")
	fs.StringVar(&cfg.RawLogPath, "raw-log", "", "path to append raw inbound bytes to (empty disables raw logging)")

	fs.IntVar(&cfg.MinEmitIntervalMs, "min-emit-interval-ms", 1000, "minimum interval between CorrectionStatusUpdate emissions")
	fs.Float64Var(&cfg.RxmCorStaleS, "rxm-cor-stale-s", 5.0, "RXM-COR staleness threshold in seconds")
	fs.Float64Var(&cfg.NavSatStaleS, "nav-sat-stale-s", 5.0, "NAV-SAT staleness threshold in seconds")
	fs.Float64Var(&cfg.NavPvtStaleS, "nav-pvt-stale-s", 2.0, "NAV-PVT staleness threshold in seconds")

	fs.IntVar(&cfg.MaxBufferBytes, "max-buffer-bytes", 1<<20, "input buffer cap in bytes")
	fs.IntVar(&cfg.MaxFramesPerDrain, "max-frames-per-drain", 50, "max frames dispatched per drain call")

	fs.Float64Var(&cfg.RateWindowS, "rate-window-s", 5.0, "rolling window for message-rate computation, in seconds")

	fs.IntVar(&cfg.UbxMaxPayload, "ubx-max-payload", 1024, "max accepted UBX payload length")
	fs.IntVar(&cfg.RtcmMaxPayload, "rtcm-max-payload", 1024, "max accepted RTCM3 payload length")

	fs.StringVar(&cfg.LogLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MinEmitInterval converts MinEmitIntervalMs to a time.Duration.
func (c Config) MinEmitInterval() time.Duration {
	return time.Duration(c.MinEmitIntervalMs) * time.Millisecond
}

func (c Config) RxmCorStale() time.Duration { return durationFromSeconds(c.RxmCorStaleS) }
func (c Config) NavSatStale() time.Duration { return durationFromSeconds(c.NavSatStaleS) }
func (c Config) NavPvtStale() time.Duration { return durationFromSeconds(c.NavPvtStaleS) }
func (c Config) RateWindow() time.Duration  { return durationFromSeconds(c.RateWindowS) }

func durationFromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
