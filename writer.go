package cub

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/errs"
	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/internal/names"
	"github.com/Turbo87/seeyou-cub/internal/options"
	"github.com/Turbo87/seeyou-cub/points"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/Turbo87/seeyou-cub/wire"
)

// Airspace is one in-memory airspace, the writer-side counterpart to
// ItemView: fields a caller sets directly instead of decoding from raw
// bits. Write computes each Airspace's bounding box from Points and the
// shared file-wide coord_scale.
type Airspace struct {
	Style        format.Style
	Class        format.Class
	MinAlt       int16
	MaxAlt       int16
	MinAltRef    format.AltitudeReference
	MaxAltRef    format.AltitudeReference
	ExtendedType format.ExtendedType
	TimeOut      uint32

	// Notam, when non-nil, is encoded into extra_data via
	// section.EncodeExtraData. When nil, ExtraDataRaw is written as-is
	// (the opaque branch).
	Notam        *section.NotamPayload
	ExtraDataRaw uint32

	ActiveTime section.ActiveTime

	// Points is this airspace's geometry and attribute stream, in
	// emission order. A point with HasName set is treated as the
	// airspace's name for duplicate-title detection (see
	// WithDedupeWindow).
	Points []points.Point
}

// WriterConfig holds Write's configuration, built from functional
// options (see internal/options.Option).
type WriterConfig struct {
	Title          string
	AllowedSerials [8]uint16
	LittleEndian   bool
	DedupeWindow   time.Duration
}

// Option configures a Write call.
type Option = options.Option[*WriterConfig]

// WithTitle sets the file header's title field.
func WithTitle(title string) Option {
	return options.NoError(func(c *WriterConfig) { c.Title = title })
}

// WithAllowedSerials sets the header's reserved allowed_serials field.
func WithAllowedSerials(serials [8]uint16) Option {
	return options.NoError(func(c *WriterConfig) { c.AllowedSerials = serials })
}

// WithBigEndian selects big-endian for every multi-byte integer field
// except the header's magic. The default is little-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *WriterConfig) { c.LittleEndian = false })
}

// WithDedupeWindow overrides the duplicate-title detection window (see
// internal/names.Tracker). The default is names.DefaultWindow.
func WithDedupeWindow(d time.Duration) Option {
	return options.NoError(func(c *WriterConfig) { c.DedupeWindow = d })
}

// Write serializes airspaces to dst as a complete file: header, item
// table, then concatenated point streams, in that order. It
// computes each item's bounding box from its points, a shared coord_scale
// across the whole file, and the item/point-data offsets; it returns
// accumulated lenient warnings (currently only DuplicateName) alongside
// any hard I/O error.
func Write(dst io.Writer, airspaces []Airspace, opts ...Option) ([]errs.Warning, error) {
	if len(airspaces) > math.MaxUint32 {
		return nil, errs.ErrInvalidItemCount
	}

	cfg := &WriterConfig{LittleEndian: true, DedupeWindow: names.DefaultWindow}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	pcByteOrder := byte(1)
	if !cfg.LittleEndian {
		engine = endian.GetBigEndianEngine()
		pcByteOrder = 0
	}

	tracker := names.NewTracker(cfg.DedupeWindow)
	var warnings []errs.Warning

	scale := computeScale(airspaces)

	items := make([]section.Item, len(airspaces))
	streams := make([][]byte, len(airspaces))

	haveBBox := false
	var fileLeft, fileTop, fileRight, fileBottom float64
	var maxPoints uint32

	offset := uint32(0)
	for i, a := range airspaces {
		minX, minY, maxX, maxY := pointsBounds(a.Points)

		b := points.NewBuilder(engine, minX, minY, scale)
		for _, p := range a.Points {
			if p.HasName && tracker.Seen(p.Name) {
				warnings = append(warnings, errs.DuplicateName(p.Name))
			}
			if err := b.WritePoint(p); err != nil {
				b.Release()
				return warnings, err
			}
		}
		b.Finish()

		data := make([]byte, len(b.Bytes()))
		copy(data, b.Bytes())
		b.Release()
		streams[i] = data

		extraData := a.ExtraDataRaw
		if a.Notam != nil {
			extraData = section.EncodeExtraData(*a.Notam)
		}

		items[i] = section.Item{
			Left: float32(minX), Top: float32(maxY), Right: float32(maxX), Bottom: float32(minY),
			TypeByte:     format.EncodeTypeByte(a.Style, a.Class),
			AltStyleByte: format.EncodeAltStyleByte(a.MinAltRef, a.MaxAltRef),
			MinAlt:       a.MinAlt,
			MaxAlt:       a.MaxAlt,
			PointsOffset: offset,
			TimeOut:      a.TimeOut,
			ExtraData:    extraData,
			ActiveTime:   a.ActiveTime.Bytes(),
			ExtendedType: uint8(a.ExtendedType),
		}
		offset += uint32(len(data))

		if uint32(len(a.Points)) > maxPoints {
			maxPoints = uint32(len(a.Points))
		}

		if !haveBBox {
			fileLeft, fileTop, fileRight, fileBottom = minX, maxY, maxX, minY
			haveBBox = true

			continue
		}
		fileLeft = math.Min(fileLeft, minX)
		fileRight = math.Max(fileRight, maxX)
		fileTop = math.Max(fileTop, maxY)
		fileBottom = math.Min(fileBottom, minY)
	}

	// The bare 42-byte stride has no room for extended_type_byte; widen
	// to 43 only when some airspace actually carries one.
	itemStride := section.MinSizeOfItem
	for _, a := range airspaces {
		if a.ExtendedType != format.ExtendedTypeNone {
			itemStride++
			break
		}
	}

	header := section.Header{
		Title:           cfg.Title,
		AllowedSerials:  cfg.AllowedSerials,
		PCByteOrder:     pcByteOrder,
		SizeOfItem:      uint32(itemStride),
		SizeOfPoint:     section.MinSizeOfPoint,
		ItemCount:       uint32(len(airspaces)),
		MaxPoints:       maxPoints,
		Left:            float32(fileLeft),
		Top:             float32(fileTop),
		Right:           float32(fileRight),
		Bottom:          float32(fileBottom),
		MaxWidth:        float32(fileRight - fileLeft),
		MaxHeight:       float32(fileTop - fileBottom),
		CoordScale:      float32(scale),
		ItemTableOffset: section.Size,
		PointDataOffset: uint32(section.Size) + uint32(len(airspaces)*itemStride),
	}

	fw := wire.NewFileWriter(engine)
	defer fw.Release()

	fw.WriteBytes(header.Bytes())
	for _, it := range items {
		fw.WriteBytes(it.Bytes(engine, itemStride))
	}
	for _, data := range streams {
		fw.WriteBytes(data)
	}

	if _, err := dst.Write(fw.Bytes()); err != nil {
		return warnings, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return warnings, nil
}

func pointsBounds(pts []points.Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}

	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y

	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	return minX, minY, maxX, maxY
}

// computeScale derives a single coord_scale shared by every item's point
// stream, sized so the worst-case bounding-box span across all supplied
// airspaces maps to 20000 steps. Since each Builder starts at its item's
// (left, bottom), every delta then fits in signed 16 bits and no
// origin-shift record is needed.
func computeScale(airspaces []Airspace) float64 {
	const defaultScale = 1e-4
	const targetSteps = 20000

	maxSpan := 0.0
	for _, a := range airspaces {
		minX, minY, maxX, maxY := pointsBounds(a.Points)
		span := math.Max(maxX-minX, maxY-minY)
		if span > maxSpan {
			maxSpan = span
		}
	}

	if maxSpan == 0 {
		return defaultScale
	}

	return maxSpan / targetSteps
}
