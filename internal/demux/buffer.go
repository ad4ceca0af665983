package demux

// Buffer is the FIFO InputBuffer of spec.md §3: an ordered byte
// sequence with cheap head-trim, capped at a hard maximum. It is owned
// exclusively by the Demultiplexer (C2); no other actor mutates it.
//
// Grounded in the teacher's pkg/gnssgo/rtcm.RTCMParser buffering
// (p.buffer = append(p.buffer, data...), then reslicing past consumed
// bytes), generalized to enforce the hard cap and to report whether an
// ingest caused an overflow drop.
type Buffer struct {
	data    []byte
	hardCap int
}

// NewBuffer constructs a Buffer with the given overflow cap (bytes).
func NewBuffer(hardCap int) *Buffer {
	return &Buffer{hardCap: hardCap}
}

// Ingest appends chunk to the buffer. It returns the number of oldest
// bytes dropped to enforce the hard cap, if any (BufferOverflow).
func (b *Buffer) Ingest(chunk []byte) (overflowDropped int) {
	b.data = append(b.data, chunk...)
	if len(b.data) > b.hardCap {
		overflowDropped = len(b.data) - b.hardCap
		b.data = b.data[overflowDropped:]
	}
	return overflowDropped
}

// Bytes returns a read-only view of the current buffer contents. The
// slice is only valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len reports the current buffer length.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Drop removes n bytes from the front of the buffer.
func (b *Buffer) Drop(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.data) {
		b.data = b.data[:0]
		return
	}
	b.data = b.data[n:]
}
