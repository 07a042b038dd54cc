package section

import (
	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/wire"
)

// itemPrefixSize is the 42-byte fixed prefix every item carries: bbox(16) +
// type_byte(1) + alt_style_byte(1) + min_alt(2) + max_alt(2) +
// points_offset(4) + time_out(4) + extra_data(4) + active_time(8) = 42.
// extended_type_byte is the 43rd byte: present only when the declared (or
// minimum-substituted) stride leaves room for it.
const itemPrefixSize = 42

// Item is the decoded form of one fixed-stride item table record.
// Bit-packed fields are kept raw here; package format projects
// them into semantic enumerations.
type Item struct {
	Left, Top, Right, Bottom float32

	TypeByte     uint8
	AltStyleByte uint8
	MinAlt       int16
	MaxAlt       int16
	PointsOffset uint32
	TimeOut      uint32
	ExtraData    uint32
	ActiveTime   uint64

	// ExtendedType is zero ("none") when the item's stride is the bare
	// 42-byte minimum; only a stride of 43+ carries this byte on the wire.
	ExtendedType uint8
}

// Parse decodes one item record from r, which must be positioned at the
// record's start. stride is the effective item stride (Header.ItemStride),
// already floored to itemPrefixSize by the caller. Trailing bytes up to
// stride are skipped.
func (it *Item) Parse(r *wire.Reader, stride int) error {
	start, err := r.Pos()
	if err != nil {
		return err
	}

	floats := []*float32{&it.Left, &it.Top, &it.Right, &it.Bottom}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return err
		}
	}

	if it.TypeByte, err = r.ReadU8(); err != nil {
		return err
	}
	if it.AltStyleByte, err = r.ReadU8(); err != nil {
		return err
	}
	if it.MinAlt, err = r.ReadI16(); err != nil {
		return err
	}
	if it.MaxAlt, err = r.ReadI16(); err != nil {
		return err
	}
	if it.PointsOffset, err = r.ReadU32(); err != nil {
		return err
	}
	if it.TimeOut, err = r.ReadU32(); err != nil {
		return err
	}
	if it.ExtraData, err = r.ReadU32(); err != nil {
		return err
	}
	if it.ActiveTime, err = r.ReadU64(); err != nil {
		return err
	}

	it.ExtendedType = 0
	if stride > itemPrefixSize {
		if it.ExtendedType, err = r.ReadU8(); err != nil {
			return err
		}
	}

	return r.SeekTo(start + int64(stride))
}

// Bytes serializes the item to exactly stride bytes: the 42-byte prefix
// (or 43 with ExtendedType, when stride allows it), zero-padded to stride.
// engine selects the byte order for every multi-byte integer field;
// bbox is always little-endian, matching the header's float convention.
func (it *Item) Bytes(engine endian.EndianEngine, stride int) []byte {
	w := wire.NewWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	for _, f := range []float32{it.Left, it.Top, it.Right, it.Bottom} {
		w.WriteF32(f)
	}

	w.WriteU8(it.TypeByte)
	w.WriteU8(it.AltStyleByte)

	w.Engine = engine
	w.WriteI16(it.MinAlt)
	w.WriteI16(it.MaxAlt)
	w.WriteU32(it.PointsOffset)
	w.WriteU32(it.TimeOut)
	w.WriteU32(it.ExtraData)
	w.WriteU64(it.ActiveTime)

	if stride > itemPrefixSize {
		w.WriteU8(it.ExtendedType)
	}

	out := make([]byte, stride)
	copy(out, w.Bytes())

	return out
}
