// Package points implements the stateful, borrow-exclusive point-stream
// decoder and its writer-side symmetry: a tagged-record sequence of
// geometry, origin-shift, attribute, frequency, and optional-data
// records, decoded one record at a time behind an explicit
// Ready/Exhausted state machine so memory stays bounded to one airspace's
// attribute state regardless of file size.
package points

import "github.com/Turbo87/seeyou-cub/format"

// Point is one emitted geometry record: a coordinate plus whatever
// attribute state was pending when it was emitted.
type Point struct {
	X, Y float64

	// Name is the pending attribute name, if any was pending.
	Name string
	// HasName reports whether Name was carried from a preceding attribute
	// record; an emitted point with no pending attributes has HasName
	// false and Name "".
	HasName bool

	// Frequency and FrequencyLabel are populated only when a frequency
	// record followed the attribute's name record.
	Frequency      uint32
	FrequencyLabel string
	HasFrequency   bool

	// OptionalData holds zero or more optional-data records attached to
	// the pending attribute sequence, in stream order.
	OptionalData []OptionalDatum
}

// OptionalDatum is one decoded optional-data record.
type OptionalDatum struct {
	ID format.OptionalDataID

	// Text holds the decoded string payload for ICAO, ExceptionRules,
	// NotamRemarks, and NotamIdentifier variants.
	Text string

	// SecondaryFreq holds the 24-bit big-packed frequency for the
	// SecondaryFreq variant.
	SecondaryFreq uint32

	// NotamInsertTime holds the encoded-minute value for the
	// NotamInsertTime variant.
	NotamInsertTime uint32
}
