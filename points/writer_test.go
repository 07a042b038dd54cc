package points

import (
	"bytes"
	"testing"

	"github.com/Turbo87/seeyou-cub/endian"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/Turbo87/seeyou-cub/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuilder_WritePoint_RoundTripsThroughIterator(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	scale := 0.0001

	b := NewBuilder(engine, 0, 0, scale)
	defer b.Release()

	pts := []Point{
		{X: 0.0100, Y: 0.0200},
		{X: 0.0150, Y: 0.0250, Name: "RWY 18", HasName: true},
	}
	for _, p := range pts {
		require.NoError(t, b.WritePoint(p))
	}
	b.Finish()

	stream := make([]byte, len(b.Bytes()))
	copy(stream, b.Bytes())

	h := &section.Header{PCByteOrder: 1, CoordScale: float32(scale)}
	it := &section.Item{Left: 0, Bottom: 0}

	r := wire.NewReader(bytes.NewReader(stream), engine)
	iter, err := NewIterator(r, h, it, "test")
	require.NoError(t, err)

	p1, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.0100, p1.X, 1e-6)
	require.InDelta(t, 0.0200, p1.Y, 1e-6)

	p2, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 0.0150, p2.X, 1e-6)
	require.InDelta(t, 0.0250, p2.Y, 1e-6)
	require.True(t, p2.HasName)
	require.Equal(t, "RWY 18", p2.Name)

	_, ok, err = iter.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBuilder_OriginShiftOnOverflowingDelta(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	scale := 0.0001

	b := NewBuilder(engine, 0, 0, scale)
	defer b.Release()

	// A delta of 70000 counts overflows signed 16 bits and must be
	// bridged by at least one origin-shift record.
	far := 70000.0 * scale
	require.NoError(t, b.WritePoint(Point{X: far, Y: 0}))
	b.Finish()

	stream := make([]byte, len(b.Bytes()))
	copy(stream, b.Bytes())

	h := &section.Header{PCByteOrder: 1, CoordScale: float32(scale)}
	it := &section.Item{Left: 0, Bottom: 0}

	r := wire.NewReader(bytes.NewReader(stream), engine)
	iter, err := NewIterator(r, h, it, "test")
	require.NoError(t, err)

	p, ok, err := iter.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, far, p.X, 1e-6)
}

// TestBuilder_RoundTripProperty checks the point-stream round trip: an
// arbitrary chain of coordinate deltas, once
// written, decodes back to the same points (up to coord_scale rounding)
// and the stream is exhausted right after the last of them.
func TestBuilder_RoundTripProperty(t *testing.T) {
	const scale = 0.0001

	rapid.Check(t, func(t *rapid.T) {
		engine := endian.GetLittleEndianEngine()

		n := rapid.IntRange(1, 20).Draw(t, "n")
		deltaGen := rapid.IntRange(-30000, 30000)

		originX := rapid.Float64Range(-1, 1).Draw(t, "originX")
		originY := rapid.Float64Range(-1, 1).Draw(t, "originY")

		pts := make([]Point, n)
		for i := range pts {
			dx := float64(deltaGen.Draw(t, "dx"))
			dy := float64(deltaGen.Draw(t, "dy"))
			pts[i] = Point{X: originX + dx*scale, Y: originY + dy*scale}
		}

		b := NewBuilder(engine, originX, originY, scale)
		for _, p := range pts {
			require.NoError(t, b.WritePoint(p))
		}
		b.Finish()

		stream := make([]byte, len(b.Bytes()))
		copy(stream, b.Bytes())
		b.Release()

		h := &section.Header{PCByteOrder: 1, CoordScale: scale}
		it := &section.Item{Left: float32(originX), Bottom: float32(originY)}

		r := wire.NewReader(bytes.NewReader(stream), engine)
		iter, err := NewIterator(r, h, it, "property")
		require.NoError(t, err)

		for _, want := range pts {
			got, ok, err := iter.Next()
			require.NoError(t, err)
			require.True(t, ok)
			assert.InDelta(t, want.X, got.X, scale/2)
			assert.InDelta(t, want.Y, got.Y, scale/2)
		}

		_, ok, err := iter.Next()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, iter.Exhausted())
	})
}
