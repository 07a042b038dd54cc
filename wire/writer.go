package wire

import (
	"math"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/internal/pool"
)

// Writer accumulates bytes into a pooled buffer using Engine's byte order
// for multi-byte integers. Float32 writes always use little-endian.
//
// Writer is not safe for concurrent use. Call Release after Bytes() has
// been copied out, or after discarding the writer, to return its buffer
// to the pool.
type Writer struct {
	buf    *pool.ByteBuffer
	put    func(*pool.ByteBuffer)
	Engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a pooled point-stream-sized
// buffer, appropriate for building one item's point stream.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{buf: pool.GetPointBuffer(), put: pool.PutPointBuffer, Engine: engine}
}

// NewFileWriter creates a Writer backed by a pooled whole-file-sized
// buffer, appropriate for assembling header + item table + point streams.
func NewFileWriter(engine endian.EndianEngine) *Writer {
	return &Writer{buf: pool.GetFileBuffer(), put: pool.PutFileBuffer, Engine: engine}
}

// Release returns the writer's buffer to its pool. The writer must not be
// used afterward.
func (w *Writer) Release() {
	if w.buf == nil {
		return
	}
	w.put(w.buf)
	w.buf = nil
}

// Bytes returns the accumulated bytes. The returned slice shares storage
// with the writer; copy it before calling Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf.MustWrite([]byte{v})
}

// WriteI16 appends a signed 16-bit integer in Engine's byte order.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v)) //nolint:gosec
}

// WriteU16 appends an unsigned 16-bit integer in Engine's byte order.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	w.Engine.PutUint16(b[:], v)
	w.buf.MustWrite(b[:])
}

// WriteI32 appends a signed 32-bit integer in Engine's byte order.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v)) //nolint:gosec
}

// WriteU32 appends an unsigned 32-bit integer in Engine's byte order.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	w.Engine.PutUint32(b[:], v)
	w.buf.MustWrite(b[:])
}

// WriteU64 appends an unsigned 64-bit integer in Engine's byte order.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	w.Engine.PutUint64(b[:], v)
	w.buf.MustWrite(b[:])
}

// WriteF32 appends a 32-bit float, always little-endian.
func (w *Writer) WriteF32(v float32) {
	bits := math.Float32bits(v)
	b := [4]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	w.buf.MustWrite(b[:])
}

// WriteBytes appends raw bytes without interpretation.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.MustWrite(b)
}

// WriteFixedText writes s, UTF-8 encoded, right-padded with nulls to
// exactly width bytes. If s encodes to more than width bytes it is
// truncated to width bytes, which can cut a multi-byte rune in half;
// callers populating title/name fields should validate length themselves
// to avoid silent truncation.
func (w *Writer) WriteFixedText(s string, width int) {
	enc := EncodeText(s)
	if len(enc) > width {
		enc = enc[:width]
	}

	w.buf.MustWrite(enc)
	if pad := width - len(enc); pad > 0 {
		var zero [64]byte
		for pad > 0 {
			n := pad
			if n > len(zero) {
				n = len(zero)
			}
			w.buf.MustWrite(zero[:n])
			pad -= n
		}
	}
}
