package points

import (
	"math"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/wire"
)

const (
	int16Min = -32768
	int16Max = 32767
)

// Builder emits one item's point stream, the write-side symmetry of
// Iterator: it tracks origin the same way
// the reader does, inserting origin-shift records whenever a delta would
// overflow signed 16 bits, and emits a point's pending attribute/
// frequency/optional-data records immediately before its geometry record.
type Builder struct {
	w       *wire.Writer
	scale   float64
	originX float64
	originY float64
}

// NewBuilder creates a Builder for one item, starting origin at
// (originX, originY) — the item's (left, bottom) — and scaling deltas by
// scale (the file's coord_scale).
func NewBuilder(engine endian.EndianEngine, originX, originY, scale float64) *Builder {
	return &Builder{
		w:       wire.NewWriter(engine),
		scale:   scale,
		originX: originX,
		originY: originY,
	}
}

// Release returns the builder's underlying buffer to its pool. Call only
// after Bytes() has been copied out.
func (b *Builder) Release() {
	b.w.Release()
}

// Bytes returns the stream bytes accumulated so far, not including the
// terminator until Finish is called.
func (b *Builder) Bytes() []byte {
	return b.w.Bytes()
}

// WritePoint emits pt's pending attribute/frequency/optional-data records
// (if any), any origin-shift records needed to bring the remaining delta
// within signed 16-bit range, and finally the geometry record itself.
func (b *Builder) WritePoint(pt Point) error {
	if pt.HasName {
		b.writeAttribute(pt)
	}

	dx := math.Round((pt.X - b.originX) / b.scale)
	dy := math.Round((pt.Y - b.originY) / b.scale)

	for !fitsInt16(dx) || !fitsInt16(dy) {
		stepX := clampInt16(dx)
		stepY := clampInt16(dy)

		b.w.WriteU8(uint8(format.PointFlagOriginShift))
		b.w.WriteI16(stepX)
		b.w.WriteI16(stepY)

		b.originX += float64(stepX) * b.scale
		b.originY += float64(stepY) * b.scale
		dx -= float64(stepX)
		dy -= float64(stepY)
	}

	b.w.WriteU8(uint8(format.PointFlagGeometry))
	b.w.WriteI16(int16(dx))
	b.w.WriteI16(int16(dy))

	return nil
}

// Finish appends the stream terminator.
func (b *Builder) Finish() {
	b.w.WriteU8(uint8(format.PointFlagTerminator))
}

func (b *Builder) writeAttribute(pt Point) {
	nameLen := len(pt.Name)
	if nameLen > int(format.AttributeFlagMax-format.AttributeFlagMin) {
		nameLen = int(format.AttributeFlagMax - format.AttributeFlagMin)
	}

	b.w.WriteU8(uint8(format.AttributeFlagMin) | uint8(nameLen)) //nolint:gosec
	b.w.WriteFixedText(pt.Name, nameLen)

	if pt.HasFrequency {
		labelLen := len(pt.FrequencyLabel)
		if labelLen > int(format.FrequencyFlagMax-format.FrequencyFlagMin) {
			labelLen = int(format.FrequencyFlagMax - format.FrequencyFlagMin)
		}

		b.w.WriteU8(uint8(format.FrequencyFlagMin) | uint8(labelLen)) //nolint:gosec
		b.w.WriteU32(pt.Frequency)
		b.w.WriteFixedText(pt.FrequencyLabel, labelLen)
	}

	for _, d := range pt.OptionalData {
		b.writeOptionalDatum(d)
	}
}

func (b *Builder) writeOptionalDatum(d OptionalDatum) {
	b.w.WriteU8(uint8(format.PointFlagOptionalData))

	switch d.ID {
	case format.OptionalDataICAO, format.OptionalDataNotamIdentifier:
		n := len(d.Text)
		b.w.WriteU8(uint8(d.ID))
		b.w.WriteU8(0)
		b.w.WriteU8(0)
		b.w.WriteU8(uint8(n)) //nolint:gosec
		b.w.WriteBytes(wire.EncodeText(d.Text))

	case format.OptionalDataSecondaryFreq:
		b.w.WriteU8(uint8(d.ID))
		b.w.WriteU8(uint8(d.SecondaryFreq >> 16))
		b.w.WriteU8(uint8(d.SecondaryFreq >> 8))
		b.w.WriteU8(uint8(d.SecondaryFreq))

	case format.OptionalDataExceptionRules, format.OptionalDataNotamRemarks:
		n := len(d.Text)
		b.w.WriteU8(uint8(d.ID))
		b.w.WriteU8(0)
		b.w.WriteU8(uint8(n >> 8)) //nolint:gosec
		b.w.WriteU8(uint8(n))      //nolint:gosec
		b.w.WriteBytes(wire.EncodeText(d.Text))

	case format.OptionalDataNotamInsertTime:
		v := d.NotamInsertTime
		b.w.WriteU8(uint8(d.ID))
		b.w.WriteU8(uint8(v >> 24))
		b.w.WriteU8(uint8(v >> 16))
		b.w.WriteU8(uint8(v >> 8))
		b.w.WriteU8(uint8(v))
	}
}

func fitsInt16(v float64) bool {
	return v >= int16Min && v <= int16Max
}

func clampInt16(v float64) int16 {
	if v > int16Max {
		return int16Max
	}
	if v < int16Min {
		return int16Min
	}

	return int16(v)
}
