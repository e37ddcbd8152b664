package pool

import (
	"io"
	"sync"
)

// Default sizes for pooled buffers.
//
// Snapshots hold three float64 columns, so a 16KiB buffer covers ~680 points
// before growing. Reports are text and rarely exceed a few KiB.
const (
	SnapshotBufferDefaultSize  = 1024 * 16        // 16KiB
	SnapshotBufferMaxThreshold = 1024 * 1024 * 4  // 4MiB
	ReportBufferDefaultSize    = 1024 * 4         // 4KiB
	ReportBufferMaxThreshold   = 1024 * 256       // 256KiB
	growThreshold              = 4 * SnapshotBufferDefaultSize
)

// ByteBuffer is an append-only byte buffer that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

var _ io.Writer = (*ByteBuffer)(nil)

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// ExtendOrGrow extends the buffer by n bytes and returns the newly exposed region.
//
// The region is not zeroed; callers are expected to overwrite it completely.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by SnapshotBufferDefaultSize, larger ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := SnapshotBufferDefaultSize
	if cap(bb.B) > growThreshold {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, requiredBytes)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s to the buffer. It never fails.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put so that one huge
// series does not pin its memory for the life of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
// A maxThreshold of zero keeps every buffer.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	snapshotPool = NewByteBufferPool(SnapshotBufferDefaultSize, SnapshotBufferMaxThreshold)
	reportPool   = NewByteBufferPool(ReportBufferDefaultSize, ReportBufferMaxThreshold)
)

// GetSnapshotBuffer retrieves a ByteBuffer sized for binary series snapshots.
func GetSnapshotBuffer() *ByteBuffer {
	return snapshotPool.Get()
}

// PutSnapshotBuffer returns a ByteBuffer obtained from GetSnapshotBuffer.
func PutSnapshotBuffer(bb *ByteBuffer) {
	snapshotPool.Put(bb)
}

// GetReportBuffer retrieves a ByteBuffer sized for rendered fit reports.
func GetReportBuffer() *ByteBuffer {
	return reportPool.Get()
}

// PutReportBuffer returns a ByteBuffer obtained from GetReportBuffer.
func PutReportBuffer(bb *ByteBuffer) {
	reportPool.Put(bb)
}
