// Package wire is the primitive I/O layer every higher layer of the codec
// flows through: byte-order-selectable integer reads/writes, always-
// little-endian float32, fixed-length byte arrays, length-prefixed byte
// slices, and the dual UTF-8/CP1252 text decode. The reader operates on
// a seekable source rather than an in-memory slice, since lazy point
// access needs random seek.
package wire

import (
	"fmt"
	"io"
	"math"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/errs"
)

// Reader performs positioned, byte-order-aware reads against a seekable
// source. Multi-byte integers use Engine; Engine may be swapped mid-read
// once the header's byte-order flag is known (see Header.Parse, which
// reads allowed_serials provisionally before the flag byte is seen).
// Float32 reads always use little-endian regardless of Engine.
type Reader struct {
	src    io.ReadSeeker
	Engine endian.EndianEngine
}

// NewReader wraps a seekable source. engine may be nil; callers must set
// Engine before reading any multi-byte integer field.
func NewReader(src io.ReadSeeker, engine endian.EndianEngine) *Reader {
	return &Reader{src: src, Engine: engine}
}

// Pos returns the current absolute offset into the source.
func (r *Reader) Pos() (int64, error) {
	pos, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return pos, nil
}

// SeekTo moves the source to an absolute byte offset.
func (r *Reader) SeekTo(offset int64) error {
	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return nil
}

// Skip advances the source by n bytes without interpreting them.
func (r *Reader) Skip(n int64) error {
	if n <= 0 {
		return nil
	}

	if _, err := r.src.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return nil
}

// readFull reads exactly n bytes, translating short reads into
// ErrUnexpectedEOF and any other failure into ErrIO.
func (r *Reader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %v", errs.ErrUnexpectedEOF, err)
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return buf, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.readFull(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadI16 reads a signed 16-bit integer using Engine's byte order.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	if err != nil {
		return 0, err
	}

	return int16(v), nil //nolint:gosec
}

// ReadU16 reads an unsigned 16-bit integer using Engine's byte order.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.readFull(2)
	if err != nil {
		return 0, err
	}

	return r.Engine.Uint16(b), nil
}

// ReadI32 reads a signed 32-bit integer using Engine's byte order.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	return int32(v), nil //nolint:gosec
}

// ReadU32 reads an unsigned 32-bit integer using Engine's byte order.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readFull(4)
	if err != nil {
		return 0, err
	}

	return r.Engine.Uint32(b), nil
}

// ReadU64 reads an unsigned 64-bit integer using Engine's byte order.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.readFull(8)
	if err != nil {
		return 0, err
	}

	return r.Engine.Uint64(b), nil
}

// ReadF32 reads a 32-bit float. Floating fields are always little-endian,
// independent of the header's byte-order selection.
func (r *Reader) ReadF32() (float32, error) {
	b, err := r.readFull(4)
	if err != nil {
		return 0, err
	}

	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24

	return math.Float32frombits(bits), nil
}

// ReadBytes reads n raw bytes without interpretation.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.readFull(n)
}

// ReadFixedText reads an n-byte fixed field, strips trailing nulls, and
// decodes it with the dual UTF-8/CP1252 fallback (see text.go).
func (r *Reader) ReadFixedText(n int) (string, error) {
	b, err := r.readFull(n)
	if err != nil {
		return "", err
	}

	return DecodeText(b), nil
}

// ReadTextAvailable reads up to n text bytes, decoding whatever was
// present. short reports that the source ended before n bytes; the
// decoded prefix is still returned so a lenient caller can keep it.
func (r *Reader) ReadTextAvailable(n int) (text string, short bool, err error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.src, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return DecodeText(buf[:read]), true, nil
		}

		return "", false, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return DecodeText(buf), false, nil
}
