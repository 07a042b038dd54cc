package section

import (
	"fmt"
	"math"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/errs"
	"github.com/Turbo87/seeyou-cub/wire"
)

// Magic is the exact little-endian value every file's header must carry.
const Magic uint32 = 0x425543C2

// Size is the fixed wire size of the header, in bytes.
const Size = 210

// MinSizeOfItem and MinSizeOfPoint are the documented floors for the
// header's declared strides. A file declaring a smaller stride is not
// rejected; the decoder proceeds as if the stride equalled the minimum
// and emits an errs.OversizedRecord warning (see Header.Parse).
const (
	MinSizeOfItem  = 42
	MinSizeOfPoint = 5
)

// Header is the decoded form of the 210-byte file header.
type Header struct {
	Title          string
	AllowedSerials [8]uint16
	PCByteOrder    byte
	IsSecured      byte
	CRC32          uint32
	Key            [16]byte
	SizeOfItem     uint32
	SizeOfPoint    uint32
	ItemCount      uint32
	MaxPoints      uint32

	Left, Top, Right, Bottom        float32
	MaxWidth, MaxHeight, CoordScale float32

	ItemTableOffset uint32
	PointDataOffset uint32
	Alignment       uint32
}

// Engine returns the byte-order engine selected by PCByteOrder. Every
// multi-byte integer field except the magic uses it, including
// allowed_serials ahead of the flag byte; float fields never do.
func (h *Header) Engine() endian.EndianEngine {
	return endian.SelectEngine(h.PCByteOrder)
}

// BoundingBoxDegrees converts the file-wide bounding box from the
// wire's radians to decimal degrees: (left, top, right, bottom).
func (h *Header) BoundingBoxDegrees() (left, top, right, bottom float64) {
	const radToDeg = 180 / math.Pi

	return float64(h.Left) * radToDeg,
		float64(h.Top) * radToDeg,
		float64(h.Right) * radToDeg,
		float64(h.Bottom) * radToDeg
}

// ItemStride returns the effective item-table stride: the declared
// SizeOfItem, or MinSizeOfItem if the declared value falls below it.
func (h *Header) ItemStride() int {
	if int(h.SizeOfItem) < MinSizeOfItem {
		return MinSizeOfItem
	}

	return int(h.SizeOfItem)
}

// PointMinStride returns the effective minimum point-record stride: the
// declared SizeOfPoint, or MinSizeOfPoint if the declared value falls
// below it. Used only to skip unrecognized point-stream records.
func (h *Header) PointMinStride() int {
	if int(h.SizeOfPoint) < MinSizeOfPoint {
		return MinSizeOfPoint
	}

	return int(h.SizeOfPoint)
}

// Parse decodes the header from r, which must be positioned at offset 0.
// It returns accumulated lenient warnings and a hard error for any
// condition that prevents interpreting the rest of the file (bad magic,
// encryption, or a short read).
//
// The byte-order flag (offset 132) is read after AllowedSerials (offset
// 116-131); those sixteen bytes are decoded provisionally as
// little-endian and, if the flag then selects big-endian, re-decoded by
// seeking back to offset 116.
func (h *Header) Parse(r *wire.Reader) ([]errs.Warning, error) {
	var warnings []errs.Warning

	r.Engine = endian.GetLittleEndianEngine()

	magic, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, errs.ErrInvalidMagic
	}

	titleRaw, err := r.ReadBytes(112)
	if err != nil {
		return nil, err
	}
	h.Title = wire.DecodeText(titleRaw)

	serialsOffset, err := r.Pos()
	if err != nil {
		return nil, err
	}

	for i := range h.AllowedSerials {
		if h.AllowedSerials[i], err = r.ReadU16(); err != nil {
			return nil, err
		}
	}

	pcByteOrder, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	h.PCByteOrder = pcByteOrder

	isSecured, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	h.IsSecured = isSecured
	if isSecured != 0 {
		return nil, errs.ErrEncrypted
	}

	engine := endian.SelectEngine(pcByteOrder)
	if !endian.IsLittleEndian(pcByteOrder) {
		afterFlags, posErr := r.Pos()
		if posErr != nil {
			return nil, posErr
		}

		if err = r.SeekTo(serialsOffset); err != nil {
			return nil, err
		}

		r.Engine = engine
		for i := range h.AllowedSerials {
			if h.AllowedSerials[i], err = r.ReadU16(); err != nil {
				return nil, err
			}
		}

		if err = r.SeekTo(afterFlags); err != nil {
			return nil, err
		}
	}
	r.Engine = engine

	if h.CRC32, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.Key, err = readKey(r); err != nil {
		return nil, err
	}
	if h.SizeOfItem, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.SizeOfPoint, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.ItemCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.MaxPoints, err = r.ReadU32(); err != nil {
		return nil, err
	}

	floats := []*float32{&h.Left, &h.Top, &h.Right, &h.Bottom, &h.MaxWidth, &h.MaxHeight, &h.CoordScale}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	if h.ItemTableOffset, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.PointDataOffset, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.Alignment, err = r.ReadU32(); err != nil {
		return nil, err
	}

	if int(h.SizeOfItem) < MinSizeOfItem {
		warnings = append(warnings, errs.OversizedRecord("size_of_item", int64(h.SizeOfItem), MinSizeOfItem))
	}
	if int(h.SizeOfPoint) < MinSizeOfPoint {
		warnings = append(warnings, errs.OversizedRecord("size_of_point", int64(h.SizeOfPoint), MinSizeOfPoint))
	}

	return warnings, nil
}

func readKey(r *wire.Reader) ([16]byte, error) {
	var key [16]byte
	b, err := r.ReadBytes(16)
	if err != nil {
		return key, err
	}
	copy(key[:], b)

	return key, nil
}

// Bytes serializes the header to its 210-byte wire form, preserving the
// declared (possibly sub-minimum) SizeOfItem/SizeOfPoint verbatim. Parse
// also keeps the declared values; only ItemStride and PointMinStride
// substitute the minimum, and Bytes never does.
func (h *Header) Bytes() []byte {
	engine := h.Engine()
	w := wire.NewWriter(engine)
	defer w.Release()

	w.Engine = endian.GetLittleEndianEngine()
	w.WriteU32(Magic)
	w.WriteFixedText(h.Title, 112)
	w.Engine = engine

	for _, s := range h.AllowedSerials {
		w.WriteU16(s)
	}

	w.WriteU8(h.PCByteOrder)
	w.WriteU8(h.IsSecured)

	w.WriteU32(h.CRC32)
	w.WriteBytes(h.Key[:])
	w.WriteU32(h.SizeOfItem)
	w.WriteU32(h.SizeOfPoint)
	w.WriteU32(h.ItemCount)
	w.WriteU32(h.MaxPoints)

	for _, f := range []float32{h.Left, h.Top, h.Right, h.Bottom, h.MaxWidth, h.MaxHeight, h.CoordScale} {
		w.WriteF32(f)
	}

	w.WriteU32(h.ItemTableOffset)
	w.WriteU32(h.PointDataOffset)
	w.WriteU32(h.Alignment)

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	if len(out) != Size {
		panic(fmt.Sprintf("section: header serialized to %d bytes, want %d", len(out), Size))
	}

	return out
}
