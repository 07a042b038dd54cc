// Package format defines the small closed enumerations carried by the
// wire format: airspace style and ICAO class, altitude references, NOTAM
// sub-fields, and the point-stream record tags. Each type mirrors a raw
// on-disk value and offers a String() for diagnostics; the raw value
// always remains the source of truth for round-tripping.
package format

// Style identifies the regulatory kind of an airspace, decoded from the
// composite key (type_byte & 0x0F) | (type_byte & 0x80).
type Style uint8

const (
	StyleUnknown Style = iota
	StyleRestricted
	StyleDanger
	StyleProhibited
	StyleCTR
	StyleTMZ
	StyleRMZ
	StyleTMA
	StyleClassA
	StyleClassB
	StyleClassC
	StyleClassD
	StyleClassE
	StyleClassF
	StyleClassG
	StyleNoPlanningZone
	// StyleWave and beyond occupy the 0x80-shifted half of the composite key.
	StyleWave
	StyleGliderSector
	StyleTrainingArea
	StyleOther
	StyleMATZ
	StyleATZ
	StyleADIZ
	StyleAirway
	StyleWarningArea
	StyleAlertArea
	StyleMilitaryOperationsArea
	StyleTemporaryReservedArea
	StyleDropZone
	StyleAerialSportingArea
	StyleFISSector
	StyleOverflightRestriction
)

var styleNames = map[Style]string{
	StyleUnknown:        "Unknown",
	StyleRestricted:     "Restricted",
	StyleDanger:         "Danger",
	StyleProhibited:     "Prohibited",
	StyleCTR:            "CTR",
	StyleTMZ:            "TMZ",
	StyleRMZ:            "RMZ",
	StyleTMA:            "TMA",
	StyleClassA:         "ClassAirspaceA",
	StyleClassB:         "ClassAirspaceB",
	StyleClassC:         "ClassAirspaceC",
	StyleClassD:         "ClassAirspaceD",
	StyleClassE:         "ClassAirspaceE",
	StyleClassF:         "ClassAirspaceF",
	StyleClassG:         "ClassAirspaceG",
	StyleNoPlanningZone: "NoPlanningZone",
	StyleWave:           "WaveWindow",
	StyleGliderSector:   "GliderSector",
	StyleTrainingArea:   "TrainingArea",
	StyleOther:          "Other",

	StyleMATZ:                   "MATZ",
	StyleATZ:                    "ATZ",
	StyleADIZ:                   "ADIZ",
	StyleAirway:                 "Airway",
	StyleWarningArea:            "WarningArea",
	StyleAlertArea:              "AlertArea",
	StyleMilitaryOperationsArea: "MilitaryOperationsArea",
	StyleTemporaryReservedArea:  "TemporaryReservedArea",
	StyleDropZone:               "DropZone",
	StyleAerialSportingArea:     "AerialSportingArea",
	StyleFISSector:              "FISSector",
	StyleOverflightRestriction:  "OverflightRestriction",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}

	return "Unknown"
}

// styleKeyTable maps the composite (type_byte & 0x0F) | (type_byte & 0x80)
// key to a Style. Keys 0x00-0x0F and 0x80-0x8F are both valid, and all
// sixteen low-nibble values (bit 3 included) name a style in each half.
var styleKeyTable = map[uint8]Style{
	0x00: StyleUnknown,
	0x01: StyleRestricted,
	0x02: StyleDanger,
	0x03: StyleProhibited,
	0x04: StyleCTR,
	0x05: StyleTMZ,
	0x06: StyleRMZ,
	0x07: StyleTMA,
	0x08: StyleClassA,
	0x09: StyleClassB,
	0x0A: StyleClassC,
	0x0B: StyleClassD,
	0x0C: StyleClassE,
	0x0D: StyleClassF,
	0x0E: StyleClassG,
	0x0F: StyleNoPlanningZone,
	0x80: StyleWave,
	0x81: StyleGliderSector,
	0x82: StyleTrainingArea,
	0x83: StyleOther,
	0x84: StyleMATZ,
	0x85: StyleATZ,
	0x86: StyleADIZ,
	0x87: StyleAirway,
	0x88: StyleWarningArea,
	0x89: StyleAlertArea,
	0x8A: StyleMilitaryOperationsArea,
	0x8B: StyleTemporaryReservedArea,
	0x8C: StyleDropZone,
	0x8D: StyleAerialSportingArea,
	0x8E: StyleFISSector,
	0x8F: StyleOverflightRestriction,
}

// StyleFromKey projects a raw type_byte into its Style via the composite
// key (typeByte & 0x0F) | (typeByte & 0x80). Unmapped keys decode to
// StyleUnknown.
func StyleFromKey(typeByte uint8) Style {
	key := (typeByte & 0x0F) | (typeByte & 0x80)
	if style, ok := styleKeyTable[key]; ok {
		return style
	}

	return StyleUnknown
}

// Key returns s's composite type_byte key, the inverse of StyleFromKey.
func (s Style) Key() uint8 {
	for k, v := range styleKeyTable {
		if v == s {
			return k
		}
	}

	return 0
}

// EncodeTypeByte packs style and class into a single type_byte, the
// inverse of StyleFromKey/ClassFromTypeByte.
func EncodeTypeByte(style Style, class Class) uint8 {
	return style.Key() | (uint8(class&0x07) << 4)
}

// Class is the ICAO airspace class, decoded from bits 4-6 of type_byte.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassA
	ClassB
	ClassC
	ClassD
	ClassE
	ClassF
	ClassG
)

func (c Class) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	case ClassD:
		return "D"
	case ClassE:
		return "E"
	case ClassF:
		return "F"
	case ClassG:
		return "G"
	default:
		return "Unknown"
	}
}

// ClassFromTypeByte extracts the class field from a raw type_byte.
func ClassFromTypeByte(typeByte uint8) Class {
	v := (typeByte >> 4) & 0x07
	if v > uint8(ClassG) {
		return ClassUnknown
	}

	return Class(v)
}

// AltitudeReference is the reference frame for an altitude bound, decoded
// from one nibble of alt_style_byte.
type AltitudeReference uint8

const (
	AltRefUnknown AltitudeReference = iota
	AltRefAGL
	AltRefMSL
	AltRefFlightLevel
	AltRefUnlimited
	AltRefNotam
)

func (a AltitudeReference) String() string {
	switch a {
	case AltRefAGL:
		return "AGL"
	case AltRefMSL:
		return "MSL"
	case AltRefFlightLevel:
		return "FlightLevel"
	case AltRefUnlimited:
		return "Unlimited"
	case AltRefNotam:
		return "Notam"
	default:
		return "Unknown"
	}
}

// AltitudeReferenceFromNibble decodes a 4-bit altitude-reference field.
// Values outside the defined domain decode to AltRefUnknown with ok=false;
// callers treat that as a warning-worthy event (see errs.InvalidEnumValue).
func AltitudeReferenceFromNibble(nibble uint8) (ref AltitudeReference, ok bool) {
	if nibble > uint8(AltRefNotam) {
		return AltRefUnknown, false
	}

	return AltitudeReference(nibble), true
}

// EncodeAltStyleByte packs a minimum and maximum altitude reference into
// a single alt_style_byte, the inverse of AltitudeReferenceFromNibble
// applied to each nibble.
func EncodeAltStyleByte(minRef, maxRef AltitudeReference) uint8 {
	return uint8(minRef&0x0F) | (uint8(maxRef&0x0F) << 4)
}

// ExtendedType is the airspace's extended classification, carried in
// item.extended_type_byte. Zero means "not present".
type ExtendedType uint8

const (
	ExtendedTypeNone ExtendedType = iota
	ExtendedTypeGliderSector
	ExtendedTypeWaveWindow
	ExtendedTypeHangGliderArea
	ExtendedTypeParachuteArea
	ExtendedTypeRadioMandatoryZone
	ExtendedTypeTransponderMandatoryZone
)

func (e ExtendedType) String() string {
	switch e {
	case ExtendedTypeNone:
		return "None"
	case ExtendedTypeGliderSector:
		return "GliderSector"
	case ExtendedTypeWaveWindow:
		return "WaveWindow"
	case ExtendedTypeHangGliderArea:
		return "HangGliderArea"
	case ExtendedTypeParachuteArea:
		return "ParachuteArea"
	case ExtendedTypeRadioMandatoryZone:
		return "RadioMandatoryZone"
	case ExtendedTypeTransponderMandatoryZone:
		return "TransponderMandatoryZone"
	default:
		return "Unknown"
	}
}

// ExtendedTypeFromByte decodes extended_type_byte. Unmapped nonzero
// values decode to ExtendedTypeNone with ok=false.
func ExtendedTypeFromByte(b uint8) (ExtendedType, bool) {
	if b > uint8(ExtendedTypeTransponderMandatoryZone) {
		return ExtendedTypeNone, false
	}

	return ExtendedType(b), true
}

// NotamAction is the action field of a NOTAM-bearing extra_data value
// (bits 28-29).
type NotamAction uint8

const (
	NotamActionNone NotamAction = iota
	NotamActionCancel
	NotamActionNew
	NotamActionReplace
)

func (a NotamAction) String() string {
	switch a {
	case NotamActionCancel:
		return "Cancel"
	case NotamActionNew:
		return "New"
	case NotamActionReplace:
		return "Replace"
	default:
		return "None"
	}
}

// NotamTrafficType is the traffic-type field of extra_data (bits 4-6).
type NotamTrafficType uint8

const (
	NotamTrafficMisc NotamTrafficType = iota
	NotamTrafficIFR
	NotamTrafficVFR
	NotamTrafficIFRAndVFR
	NotamTrafficChecklist
)

func (t NotamTrafficType) String() string {
	switch t {
	case NotamTrafficIFR:
		return "IFR"
	case NotamTrafficVFR:
		return "VFR"
	case NotamTrafficIFRAndVFR:
		return "IFR+VFR"
	case NotamTrafficChecklist:
		return "Checklist"
	default:
		return "Misc"
	}
}

// NotamScope is the scope field of extra_data (bits 0-3).
type NotamScope uint8

const (
	NotamScopeUnknown NotamScope = iota
	NotamScopeAerodrome
	NotamScopeEnRoute
	NotamScopeAeroAndEnRoute
	NotamScopeNavWarning
	NotamScopeAeroAndNavWarning
	NotamScopeChecklist
)

func (s NotamScope) String() string {
	switch s {
	case NotamScopeAerodrome:
		return "Aerodrome"
	case NotamScopeEnRoute:
		return "EnRoute"
	case NotamScopeAeroAndEnRoute:
		return "Aerodrome+EnRoute"
	case NotamScopeNavWarning:
		return "NavWarning"
	case NotamScopeAeroAndNavWarning:
		return "Aerodrome+NavWarning"
	case NotamScopeChecklist:
		return "Checklist"
	default:
		return "Unknown"
	}
}

// PointFlag is the single-byte record tag at the start of every point
// stream record. Flags in 0x40-0x7F carry a name-length payload in their
// low 6 bits, and flags in 0xC0-0xFF carry a label-length payload in
// their low 6 bits, so those ranges are tested with masks rather than
// compared for equality.
type PointFlag uint8

const (
	PointFlagTerminator   PointFlag = 0x00
	PointFlagGeometry     PointFlag = 0x01
	PointFlagOriginShift  PointFlag = 0x81
	PointFlagOptionalData PointFlag = 0xA0

	// AttributeFlagMin/Max bound the 0x40-0x7F attribute-record range.
	AttributeFlagMin PointFlag = 0x40
	AttributeFlagMax PointFlag = 0x7F

	// FrequencyFlagMin/Max bound the 0xC0-0xFF frequency-record range.
	FrequencyFlagMin PointFlag = 0xC0
	FrequencyFlagMax PointFlag = 0xFF

	// attributeLenMask extracts the name/label length from an attribute
	// or frequency flag's low 6 bits.
	attributeLenMask uint8 = 0x3F
)

// IsAttribute reports whether the flag is an attribute-block record.
func (f PointFlag) IsAttribute() bool {
	return f >= AttributeFlagMin && f <= AttributeFlagMax
}

// IsFrequency reports whether the flag is a frequency record.
func (f PointFlag) IsFrequency() bool {
	return f >= FrequencyFlagMin && f <= FrequencyFlagMax
}

// AttributeNameLen returns the name length encoded in an attribute flag's
// low 6 bits.
func (f PointFlag) AttributeNameLen() int {
	return int(uint8(f) & attributeLenMask)
}

// FrequencyLabelLen returns the label length encoded in a frequency
// flag's low 6 bits.
func (f PointFlag) FrequencyLabelLen() int {
	return int(uint8(f) & attributeLenMask)
}

// OptionalDataID selects the variant of an optional-data record (the byte
// immediately following a 0xA0 PointFlag).
type OptionalDataID uint8

const (
	OptionalDataICAO            OptionalDataID = 0
	OptionalDataSecondaryFreq   OptionalDataID = 1
	OptionalDataExceptionRules  OptionalDataID = 2
	OptionalDataNotamRemarks    OptionalDataID = 3
	OptionalDataNotamIdentifier OptionalDataID = 4
	OptionalDataNotamInsertTime OptionalDataID = 5
)

func (id OptionalDataID) String() string {
	switch id {
	case OptionalDataICAO:
		return "ICAO"
	case OptionalDataSecondaryFreq:
		return "SecondaryFrequency"
	case OptionalDataExceptionRules:
		return "ExceptionRules"
	case OptionalDataNotamRemarks:
		return "NotamRemarks"
	case OptionalDataNotamIdentifier:
		return "NotamIdentifier"
	case OptionalDataNotamInsertTime:
		return "NotamInsertTime"
	default:
		return "Unknown"
	}
}
