package cub

import (
	"bytes"
	"testing"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/errs"
	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/points"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/Turbo87/seeyou-cub/wire"
	"github.com/stretchr/testify/require"
)

// buildFile assembles a complete file: header, item table, then
// concatenated point streams in item order.
func buildFile(h section.Header, items []section.Item, streams [][]byte) []byte {
	engine := h.Engine()
	stride := h.ItemStride()

	var buf bytes.Buffer
	buf.Write(h.Bytes())
	for _, it := range items {
		buf.Write(it.Bytes(engine, stride))
	}
	for _, s := range streams {
		buf.Write(s)
	}

	return buf.Bytes()
}

// twoPointStream builds a two-geometry-point stream:
// 0x01 100 200, 0x01 150 250, terminator.
func twoPointStream(engine endian.EndianEngine) []byte {
	w := wire.NewWriter(engine)
	defer w.Release()
	w.WriteU8(uint8(format.PointFlagGeometry))
	w.WriteI16(100)
	w.WriteI16(200)
	w.WriteU8(uint8(format.PointFlagGeometry))
	w.WriteI16(150)
	w.WriteI16(250)
	w.WriteU8(uint8(format.PointFlagTerminator))

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

func baseHeader(pcByteOrder byte, itemCount, pointDataOffset uint32) section.Header {
	return section.Header{
		Title:           "Scenario",
		PCByteOrder:     pcByteOrder,
		SizeOfItem:      section.MinSizeOfItem,
		SizeOfPoint:     section.MinSizeOfPoint,
		ItemCount:       itemCount,
		MaxPoints:       100,
		Left:            0,
		Top:             1,
		Right:           1,
		Bottom:          0,
		CoordScale:      0.0001,
		ItemTableOffset: section.Size,
		PointDataOffset: pointDataOffset,
	}
}

func twoItemsWithOffsets(offsets ...uint32) []section.Item {
	items := make([]section.Item, len(offsets))
	for i, off := range offsets {
		items[i] = section.Item{
			Left: 0, Top: 1, Right: 1, Bottom: 0,
			PointsOffset: off,
		}
	}

	return items
}

// Scenario 1: minimal little-endian file, two items, two points each.
func TestOpen_Scenario1_MinimalLittleEndian(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	stream := twoPointStream(engine)

	h := baseHeader(1, 2, uint32(section.Size)+2*section.MinSizeOfItem)
	items := twoItemsWithOffsets(0, uint32(len(stream)))
	data := buildFile(h, items, [][]byte{stream, stream})

	f, warnings, err := Open(bytes.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, f.Items(), 2)

	for _, item := range f.Items() {
		iter, err := f.Points(item, "scenario1")
		require.NoError(t, err)

		p1, ok, err := iter.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.InDelta(t, 0.0100, p1.X, 1e-9)
		require.InDelta(t, 0.0200, p1.Y, 1e-9)

		p2, ok, err := iter.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.InDelta(t, 0.0150, p2.X, 1e-9)
		require.InDelta(t, 0.0250, p2.Y, 1e-9)

		_, ok, err = iter.Next()
		require.NoError(t, err)
		require.False(t, ok)
	}

	require.Empty(t, f.Warnings())
}

// Scenario 2: big-endian variant yields equal logical output.
func TestOpen_Scenario2_BigEndianEquivalence(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	stream := twoPointStream(engine)

	h := baseHeader(0, 1, uint32(section.Size)+section.MinSizeOfItem)
	items := twoItemsWithOffsets(0)
	data := buildFile(h, items, [][]byte{stream})

	f, warnings, err := Open(bytes.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, warnings)

	iter, err := f.Points(f.Items()[0], "scenario2")
	require.NoError(t, err)

	p1, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.0100, p1.X, 1e-9)
	require.InDelta(t, 0.0200, p1.Y, 1e-9)
}

// Scenario 3: bad magic yields ErrInvalidMagic and zero items decoded.
func TestOpen_Scenario3_BadMagic(t *testing.T) {
	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	data := buildFile(h, twoItemsWithOffsets(0), [][]byte{{byte(format.PointFlagTerminator)}})
	data[0] = 0xFF

	f, _, err := Open(bytes.NewReader(data))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
	require.Nil(t, f)
}

// Scenario 4: is_secured != 0 yields ErrEncrypted.
func TestOpen_Scenario4_Encrypted(t *testing.T) {
	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	h.IsSecured = 1
	data := buildFile(h, twoItemsWithOffsets(0), [][]byte{{byte(format.PointFlagTerminator)}})

	f, _, err := Open(bytes.NewReader(data))
	require.ErrorIs(t, err, errs.ErrEncrypted)
	require.Nil(t, f)
}

// Scenario 5: an oversized item stride produces zero warnings and the same
// logical result; trailing padding bytes are skipped.
func TestOpen_Scenario5_OversizedItemStride(t *testing.T) {
	const stride = 48

	engine := endian.GetLittleEndianEngine()
	stream := twoPointStream(engine)

	h := baseHeader(1, 1, uint32(section.Size)+stride)
	h.SizeOfItem = stride

	item := section.Item{Left: 0, Top: 1, Right: 1, Bottom: 0, PointsOffset: 0}
	data := buildFile(h, []section.Item{item}, [][]byte{stream})

	f, warnings, err := Open(bytes.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, f.Items(), 1)

	iter, err := f.Points(f.Items()[0], "scenario5")
	require.NoError(t, err)
	p1, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.0100, p1.X, 1e-9)
}

// Scenario 6: a point carrying name, frequency, and an ICAO optional-data
// record.
func TestOpen_Scenario6_NameFrequencyICAO(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	w := wire.NewWriter(engine)
	defer w.Release()
	w.WriteU8(uint8(format.AttributeFlagMin) | 3) // name length 3
	w.WriteFixedText("ABC", 3)
	w.WriteU8(uint8(format.FrequencyFlagMin) | 4) // label length 4
	w.WriteU32(118525000)
	w.WriteFixedText("TWR ", 4)
	w.WriteU8(uint8(format.PointFlagOptionalData))
	w.WriteU8(0) // data_id = ICAO
	w.WriteU8(0)
	w.WriteU8(0)
	w.WriteU8(4) // length
	w.WriteFixedText("LFMN", 4)
	w.WriteU8(uint8(format.PointFlagGeometry))
	w.WriteI16(10)
	w.WriteI16(20)
	w.WriteU8(uint8(format.PointFlagTerminator))
	stream := w.Bytes()

	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	item := section.Item{Left: 0, Top: 1, Right: 1, Bottom: 0, PointsOffset: 0}
	data := buildFile(h, []section.Item{item}, [][]byte{stream})

	f, _, err := Open(bytes.NewReader(data))
	require.NoError(t, err)

	iter, err := f.Points(f.Items()[0], "scenario6")
	require.NoError(t, err)

	p, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, p.HasName)
	require.Equal(t, "ABC", p.Name)
	require.True(t, p.HasFrequency)
	require.Equal(t, uint32(118525000), p.Frequency)
	require.Equal(t, "TWR ", p.FrequencyLabel)
	require.Len(t, p.OptionalData, 1)
	require.Equal(t, format.OptionalDataICAO, p.OptionalData[0].ID)
	require.Equal(t, "LFMN", p.OptionalData[0].Text)
}

// Scenario 8: an unknown optional-data id emits a single
// UnknownOptionalData warning and the stream continues.
func TestOpen_Scenario8_UnknownOptionalData(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	w := wire.NewWriter(engine)
	defer w.Release()
	w.WriteU8(uint8(format.PointFlagOptionalData))
	w.WriteU8(255)
	w.WriteU8(0)
	w.WriteU8(0)
	w.WriteU8(0)
	w.WriteU8(uint8(format.PointFlagGeometry))
	w.WriteI16(1)
	w.WriteI16(1)
	w.WriteU8(uint8(format.PointFlagTerminator))
	stream := w.Bytes()

	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	item := section.Item{Left: 0, Top: 1, Right: 1, Bottom: 0, PointsOffset: 0}
	data := buildFile(h, []section.Item{item}, [][]byte{stream})

	f, _, err := Open(bytes.NewReader(data))
	require.NoError(t, err)

	iter, err := f.Points(f.Items()[0], "scenario8")
	require.NoError(t, err)

	_, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)

	warnings := iter.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, errs.KindUnknownOptionalData, warnings[0].Kind)
	require.Equal(t, int64(255), warnings[0].Raw)
}

// Scenario 9: active_time with the "no end" sentinel and a populated
// days-active set.
func TestItemView_Scenario9_ActiveTimeNoEnd(t *testing.T) {
	at := section.ActiveTime{
		Days:  section.DayMonday | section.DaySaturday,
		Start: section.EncodedMinuteNoStart,
		End:   section.EncodedMinuteNoEnd,
	}

	item := section.Item{ActiveTime: at.Bytes()}
	view := ItemView{item: &item}

	decoded := view.ActiveTime()
	require.Equal(t, section.EncodedMinuteNoStart, decoded.Start)
	require.Equal(t, section.EncodedMinuteNoEnd, decoded.End)
	require.True(t, decoded.Days.Has(section.DayMonday))
	require.True(t, decoded.Days.Has(section.DaySaturday))
	require.False(t, decoded.Days.Has(section.DaySunday))
}

// Scenario 10: a lone 0xE9 byte, which is not valid UTF-8 on its own,
// falls back to CP1252 and decodes to "é".
func TestOpen_Scenario10_CP1252Fallback(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	w := wire.NewWriter(engine)
	defer w.Release()
	w.WriteU8(uint8(format.AttributeFlagMin) | 1)
	w.WriteU8(0xE9)
	w.WriteU8(uint8(format.PointFlagGeometry))
	w.WriteI16(0)
	w.WriteI16(0)
	w.WriteU8(uint8(format.PointFlagTerminator))
	stream := w.Bytes()

	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	item := section.Item{Left: 0, Top: 1, Right: 1, Bottom: 0, PointsOffset: 0}
	data := buildFile(h, []section.Item{item}, [][]byte{stream})

	f, _, err := Open(bytes.NewReader(data))
	require.NoError(t, err)

	iter, err := f.Points(f.Items()[0], "scenario10")
	require.NoError(t, err)

	p, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "é", p.Name)
}

// Points borrows the file handle exclusively: a second concurrent call
// before the first iterator is drained is rejected.
func TestFile_Points_ExclusiveBorrow(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	stream := twoPointStream(engine)

	h := baseHeader(1, 1, uint32(section.Size)+section.MinSizeOfItem)
	item := section.Item{Left: 0, Top: 1, Right: 1, Bottom: 0, PointsOffset: 0}
	data := buildFile(h, []section.Item{item}, [][]byte{stream})

	f, _, err := Open(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = f.Points(f.Items()[0], "first")
	require.NoError(t, err)

	_, err = f.Points(f.Items()[0], "second")
	require.ErrorIs(t, err, errs.ErrAlreadyStreaming)
}

// Write + Open round-trips a small in-memory airspace list through the
// public API end to end.
func TestWrite_Open_RoundTrip(t *testing.T) {
	airspaces := []Airspace{
		{
			Style:     format.StyleCTR,
			Class:     format.ClassD,
			MinAlt:    0,
			MaxAlt:    3000,
			MinAltRef: format.AltRefAGL,
			MaxAltRef: format.AltRefMSL,
			Points: []points.Point{
				{X: 0, Y: 0, Name: "Alpha", HasName: true},
				{X: 0.01, Y: 0.01},
				{X: 0.02, Y: 0},
			},
		},
		{
			Style:  format.StyleDanger,
			Class:  format.ClassUnknown,
			MinAlt: 500,
			MaxAlt: 1500,
			Points: []points.Point{
				{X: 1, Y: 1},
				{X: 1.01, Y: 1.02},
			},
		},
	}

	var buf bytes.Buffer
	warnings, err := Write(&buf, airspaces, WithTitle("Round Trip"))
	require.NoError(t, err)
	require.Empty(t, warnings)

	f, openWarnings, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Empty(t, openWarnings)
	require.Equal(t, "Round Trip", f.Header().Title)
	require.Len(t, f.Items(), 2)

	first := f.Items()[0]
	require.Equal(t, format.StyleCTR, first.Style())
	require.Equal(t, format.ClassD, first.Class())

	iter, err := f.Points(first, "airspace0")
	require.NoError(t, err)

	p1, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, p1.HasName)
	require.Equal(t, "Alpha", p1.Name)
	require.InDelta(t, 0, p1.X, 1e-6)

	p2, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.01, p2.X, 1e-6)
	require.InDelta(t, 0.01, p2.Y, 1e-6)

	p3, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.02, p3.X, 1e-6)

	_, ok, err = iter.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

// Write surfaces a DuplicateName warning when two points across the batch
// share a name (see internal/names).
func TestWrite_DuplicateNameWarning(t *testing.T) {
	airspaces := []Airspace{
		{Points: []points.Point{{X: 0, Y: 0, Name: "Echo", HasName: true}}},
		{Points: []points.Point{{X: 1, Y: 1, Name: "Echo", HasName: true}}},
	}

	var buf bytes.Buffer
	warnings, err := Write(&buf, airspaces)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, errs.KindDuplicateName, warnings[0].Kind)
}

// An airspace carrying an extended type widens the item stride so the
// extended_type_byte has room on the wire, and survives a round trip.
func TestWrite_ExtendedType_RoundTrip(t *testing.T) {
	airspaces := []Airspace{
		{
			Style:        format.StyleWave,
			ExtendedType: format.ExtendedTypeWaveWindow,
			Points: []points.Point{
				{X: 0, Y: 0},
				{X: 0.01, Y: 0.01},
			},
		},
	}

	var buf bytes.Buffer
	_, err := Write(&buf, airspaces)
	require.NoError(t, err)

	f, _, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, uint32(section.MinSizeOfItem+1), f.Header().SizeOfItem)

	ext, ok := f.Items()[0].ExtendedType()
	require.True(t, ok)
	require.Equal(t, format.ExtendedTypeWaveWindow, ext)

	iter, err := f.Points(f.Items()[0], "ext")
	require.NoError(t, err)
	p, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0, p.X, 1e-6)
}
