package cub

import (
	"math"

	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// ItemView projects one decoded item's raw fields into the semantic
// enumerations defined in package format, keeping the raw section.Item
// accessible for round-tripping via the writer.
type ItemView struct {
	item *section.Item
}

// Raw returns the underlying decoded item.
func (v ItemView) Raw() section.Item {
	return *v.item
}

// Style returns the airspace's regulatory style.
func (v ItemView) Style() format.Style {
	return format.StyleFromKey(v.item.TypeByte)
}

// Class returns the ICAO airspace class.
func (v ItemView) Class() format.Class {
	return format.ClassFromTypeByte(v.item.TypeByte)
}

// MinAltitudeReference decodes the low nibble of alt_style_byte. ok is
// false for an undefined nibble value; the caller (typically Open's
// warning aggregation) is responsible for turning that into a warning.
func (v ItemView) MinAltitudeReference() (ref format.AltitudeReference, ok bool) {
	return format.AltitudeReferenceFromNibble(v.item.AltStyleByte & 0x0F)
}

// MaxAltitudeReference decodes the high nibble of alt_style_byte.
func (v ItemView) MaxAltitudeReference() (ref format.AltitudeReference, ok bool) {
	return format.AltitudeReferenceFromNibble((v.item.AltStyleByte >> 4) & 0x0F)
}

// MinAltitude returns the minimum altitude bound in meters.
func (v ItemView) MinAltitude() int16 {
	return v.item.MinAlt
}

// MaxAltitude returns the maximum altitude bound in meters.
func (v ItemView) MaxAltitude() int16 {
	return v.item.MaxAlt
}

// ExtendedType decodes extended_type_byte.
func (v ItemView) ExtendedType() (format.ExtendedType, bool) {
	return format.ExtendedTypeFromByte(v.item.ExtendedType)
}

// ExtraData decodes the overloaded extra_data field into its tagged
// NOTAM-or-opaque view.
func (v ItemView) ExtraData() section.ExtraData {
	return section.DecodeExtraData(v.item.ExtraData)
}

// ActiveTime decodes the overloaded active_time field.
func (v ItemView) ActiveTime() section.ActiveTime {
	return section.DecodeActiveTime(v.item.ActiveTime)
}

// BoundingBoxRadians returns the item's bounding box as stored on the
// wire: (left, top, right, bottom), in radians.
func (v ItemView) BoundingBoxRadians() (left, top, right, bottom float32) {
	return v.item.Left, v.item.Top, v.item.Right, v.item.Bottom
}

// BoundingBoxDegrees converts the item's bounding box to decimal
// degrees, a convenience for callers working with a mapping library or
// display layer that expects degrees rather than the wire's radians.
func (v ItemView) BoundingBoxDegrees() (left, top, right, bottom float64) {
	const radToDeg = 180 / math.Pi

	return float64(v.item.Left) * radToDeg,
		float64(v.item.Top) * radToDeg,
		float64(v.item.Right) * radToDeg,
		float64(v.item.Bottom) * radToDeg
}

// UTMCenter converts the bounding box's center point to UTM
// coordinates via coordconv's geodetic converter, useful for callers
// plotting an airspace against a UTM-gridded chart. zone 0 lets the
// converter pick the UTM zone for the center's longitude.
func (v ItemView) UTMCenter() (coordconv.UTMCoord, error) {
	centerLat := s1.Angle((float64(v.item.Top) + float64(v.item.Bottom)) / 2)
	centerLng := s1.Angle((float64(v.item.Left) + float64(v.item.Right)) / 2)

	return coordconv.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLng{Lat: centerLat, Lng: centerLng}, 0)
}
