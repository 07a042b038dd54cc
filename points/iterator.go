package points

import (
	"github.com/Turbo87/seeyou-cub/errs"
	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/Turbo87/seeyou-cub/wire"
)

// state is the iterator's position in the Ready/Exhausted machine.
// Ready is the only state from which Next may be called again;
// Exhausted is absorbing.
type state uint8

const (
	stateReady state = iota
	stateExhausted
)

// pending holds the attribute state accumulated since the last emitted
// geometry record: moved onto the next Point and cleared atomically.
type pending struct {
	name    string
	hasName bool

	frequency      uint32
	frequencyLabel string
	hasFrequency   bool

	optional []OptionalDatum
}

func (p *pending) clear() {
	*p = pending{}
}

func (p *pending) attachTo(pt *Point) {
	pt.Name = p.name
	pt.HasName = p.hasName
	pt.Frequency = p.frequency
	pt.FrequencyLabel = p.frequencyLabel
	pt.HasFrequency = p.hasFrequency
	pt.OptionalData = p.optional
}

// Iterator decodes one item's point stream lazily, borrowing its reader
// exclusively for its lifetime. It holds no state beyond
// its position, the scaled origin, and the pending-attribute slots.
type Iterator struct {
	r         *wire.Reader
	scale     float64
	originX   float64
	originY   float64
	minStride int
	context   string

	state    state
	pending  pending
	warnings []errs.Warning
}

// NewIterator seeks r to the item's point stream and prepares an
// Iterator positioned at its first record. context is a free-form label
// (e.g. the item's title or index) attached to any warnings it emits.
func NewIterator(r *wire.Reader, h *section.Header, it *section.Item, context string) (*Iterator, error) {
	offset := int64(h.PointDataOffset) + int64(it.PointsOffset)
	if err := r.SeekTo(offset); err != nil {
		return nil, err
	}

	return &Iterator{
		r:         r,
		scale:     float64(h.CoordScale),
		originX:   float64(it.Left),
		originY:   float64(it.Bottom),
		minStride: h.PointMinStride(),
		context:   context,
		state:     stateReady,
	}, nil
}

// Exhausted reports whether the stream terminator has been reached.
func (it *Iterator) Exhausted() bool {
	return it.state == stateExhausted
}

// Warnings returns the lenient warnings accumulated so far.
func (it *Iterator) Warnings() []errs.Warning {
	return it.warnings
}

// Next decodes and returns the next geometry point, or ok=false once the
// stream terminator is consumed. Non-geometry records (origin shifts,
// attribute/frequency/optional-data records) are consumed internally and
// never surface as a Point on their own; Next only returns when a 0x01
// record is emitted or the stream ends.
func (it *Iterator) Next() (Point, bool, error) {
	if it.state == stateExhausted {
		return Point{}, false, nil
	}

	for {
		rawFlag, err := it.r.ReadU8()
		if err != nil {
			return Point{}, false, err
		}
		flag := format.PointFlag(rawFlag)

		switch {
		case flag == format.PointFlagTerminator:
			it.state = stateExhausted
			return Point{}, false, nil

		case flag == format.PointFlagGeometry:
			dx, dy, err := it.readDelta()
			if err != nil {
				return Point{}, false, err
			}

			pt := Point{
				X: it.originX + dx*it.scale,
				Y: it.originY + dy*it.scale,
			}
			it.pending.attachTo(&pt)
			it.pending.clear()

			return pt, true, nil

		case flag == format.PointFlagOriginShift:
			dx, dy, err := it.readDelta()
			if err != nil {
				return Point{}, false, err
			}
			it.originX += dx * it.scale
			it.originY += dy * it.scale

		case flag.IsAttribute():
			name, err := it.readText(flag.AttributeNameLen(), "attribute name")
			if err != nil {
				return Point{}, false, err
			}
			it.pending.name = name
			it.pending.hasName = true
			if it.state == stateExhausted {
				return Point{}, false, nil
			}

		case flag.IsFrequency():
			freq, err := it.r.ReadU32()
			if err != nil {
				return Point{}, false, err
			}
			label, err := it.readText(flag.FrequencyLabelLen(), "frequency label")
			if err != nil {
				return Point{}, false, err
			}
			it.pending.frequency = freq
			it.pending.frequencyLabel = label
			it.pending.hasFrequency = true
			if it.state == stateExhausted {
				return Point{}, false, nil
			}

		case flag == format.PointFlagOptionalData:
			if err := it.readOptionalData(); err != nil {
				return Point{}, false, err
			}
			if it.state == stateExhausted {
				return Point{}, false, nil
			}

		default:
			it.warnings = append(it.warnings, errs.UnknownRecord(rawFlag, it.context))
			if err := it.r.Skip(int64(it.minStride - 1)); err != nil {
				return Point{}, false, err
			}
		}
	}
}

func (it *Iterator) readDelta() (dx, dy float64, err error) {
	rawX, err := it.r.ReadI16()
	if err != nil {
		return 0, 0, err
	}
	rawY, err := it.r.ReadI16()
	if err != nil {
		return 0, 0, err
	}

	return float64(rawX), float64(rawY), nil
}

// readText reads an n-byte length-prefixed text payload leniently: when
// the declared length overruns the remaining bytes, the decoded prefix
// is kept, a TruncatedData warning is recorded, and the stream is
// treated as exhausted, since no further record boundary exists.
func (it *Iterator) readText(n int, what string) (string, error) {
	text, short, err := it.r.ReadTextAvailable(n)
	if err != nil {
		return "", err
	}
	if short {
		it.warnings = append(it.warnings, errs.TruncatedData(what+" in "+it.context))
		it.state = stateExhausted
	}

	return text, nil
}

// readOptionalData decodes one optional-data record's prefix (data_id
// followed by three bytes) and dispatches on data_id. Unknown ids emit a warning and leave
// the run at the position right after the prefix; the caller's outer
// loop naturally resumes dispatch from there.
func (it *Iterator) readOptionalData() error {
	dataID, err := it.r.ReadU8()
	if err != nil {
		return err
	}
	b1, err := it.r.ReadU8()
	if err != nil {
		return err
	}
	b2, err := it.r.ReadU8()
	if err != nil {
		return err
	}
	b3, err := it.r.ReadU8()
	if err != nil {
		return err
	}

	switch format.OptionalDataID(dataID) {
	case format.OptionalDataICAO:
		text, err := it.readText(int(b3), "icao code")
		if err != nil {
			return err
		}
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataICAO, Text: text})

	case format.OptionalDataSecondaryFreq:
		value := uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataSecondaryFreq, SecondaryFreq: value})

	case format.OptionalDataExceptionRules:
		length := int(b2)<<8 | int(b3)
		text, err := it.readText(length, "exception rules")
		if err != nil {
			return err
		}
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataExceptionRules, Text: text})

	case format.OptionalDataNotamRemarks:
		length := int(b2)<<8 | int(b3)
		text, err := it.readText(length, "notam remarks")
		if err != nil {
			return err
		}
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataNotamRemarks, Text: text})

	case format.OptionalDataNotamIdentifier:
		text, err := it.readText(int(b3), "notam identifier")
		if err != nil {
			return err
		}
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataNotamIdentifier, Text: text})

	case format.OptionalDataNotamInsertTime:
		b4, err := it.r.ReadU8()
		if err != nil {
			return err
		}
		value := (uint32(b1)<<16|uint32(b2)<<8|uint32(b3))<<8 | uint32(b4)
		it.pending.optional = append(it.pending.optional, OptionalDatum{ID: format.OptionalDataNotamInsertTime, NotamInsertTime: value})

	default:
		it.warnings = append(it.warnings, errs.UnknownOptionalData(dataID, it.context))
	}

	return nil
}
