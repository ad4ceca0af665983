package ioadapt

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// RawLogger is C13: it appends every raw inbound chunk to an underlying
// writer (typically a file), grounded in the teacher's
// pkg/gnssgo/stream/file.go raw-capture sink, generalized to a plain
// io.Writer so tests can substitute an in-memory buffer.
type RawLogger struct {
	mu     sync.Mutex
	w      io.Writer
	logger logrus.FieldLogger
}

// NewRawLogger wraps w (e.g. an os.File opened for append) as a raw
// capture sink.
func NewRawLogger(w io.Writer, logger logrus.FieldLogger) *RawLogger {
	return &RawLogger{w: w, logger: logger}
}

// Write appends chunk to the underlying writer. A write failure is
// logged and non-fatal, per spec.md §7's SinkError policy: raw capture
// is a forensic convenience, never a condition that should interrupt
// ingestion.
func (r *RawLogger) Write(chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(chunk); err != nil {
		r.logger.WithError(err).Warn("raw log write failed")
	}
}
