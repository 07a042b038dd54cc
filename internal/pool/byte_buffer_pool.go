// Package pool provides pooled, growable byte buffers for the writer
// path, avoiding repeated allocation when emitting many items' point
// streams into one file. Two tiers: a per-item point stream buffer, and
// a whole-file output buffer.
package pool

import (
	"io"
	"sync"
)

const (
	PointBufferDefaultSize  = 1024 * 2  // 2KiB, typical single airspace point stream
	PointBufferMaxThreshold = 1024 * 64 // 64KiB
	FileBufferDefaultSize   = 1024 * 64 // 64KiB
	FileBufferMaxThreshold  = 1024 * 1024 * 16
)

// ByteBuffer is a growable byte slice with an amortized growth strategy
// tuned to avoid reallocating on every small write.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but retains its allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating.
//
// Growth strategy: small buffers grow by a fixed default increment to
// minimize reallocations early on; larger buffers grow by 25% of current
// capacity to balance memory usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PointBufferDefaultSize
	if cap(bb.B) > 4*PointBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool pools ByteBuffers to minimize allocations, discarding
// buffers that grew past maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded (not recycled) once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
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
	pointBufferPool = NewByteBufferPool(PointBufferDefaultSize, PointBufferMaxThreshold)
	fileBufferPool  = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)
)

// GetPointBuffer retrieves a buffer sized for one item's point stream.
func GetPointBuffer() *ByteBuffer { return pointBufferPool.Get() }

// PutPointBuffer returns a point-stream buffer to its pool.
func PutPointBuffer(bb *ByteBuffer) { pointBufferPool.Put(bb) }

// GetFileBuffer retrieves a buffer sized for a whole-file write.
func GetFileBuffer() *ByteBuffer { return fileBufferPool.Get() }

// PutFileBuffer returns a whole-file buffer to its pool.
func PutFileBuffer(bb *ByteBuffer) { fileBufferPool.Put(bb) }
