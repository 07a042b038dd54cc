package section

import "github.com/Turbo87/seeyou-cub/format"

// NotamCodes holds the four five-bit alphabetic codes packed into bits
// 8-27 of a NOTAM-bearing extra_data value, highest bits first: subject
// first/last letter, then action first/last letter. Each field is valid
// only when its raw 5-bit value falls in {1..26}; Valid is false
// otherwise, in which case the individual letter bytes are zero.
type NotamCodes struct {
	SubjectFirst, SubjectLast byte
	ActionFirst, ActionLast   byte
	Valid                     bool
}

// String renders the four codes as a four-character string, or "" when
// any code field fell outside its valid domain.
func (c NotamCodes) String() string {
	if !c.Valid {
		return ""
	}

	return string([]byte{c.SubjectFirst, c.SubjectLast, c.ActionFirst, c.ActionLast})
}

// NotamPayload is the decoded form of extra_data when its top-two-bit
// discriminator (bits 30-31) is zero and the raw field is nonzero.
type NotamPayload struct {
	Action  format.NotamAction
	Codes   NotamCodes
	Traffic format.NotamTrafficType
	Scope   format.NotamScope
}

// ExtraData is the tagged-sum decoding of item.extra_data.
// Exactly one of the two branches applies: IsNotam selects NotamPayload,
// unconditionally set so callers don't need a separate discriminator
// lookup; Raw always carries the untouched wire value for round-trip.
type ExtraData struct {
	IsNotam bool
	Notam   NotamPayload
	Raw     uint32
}

// DecodeExtraData projects a raw extra_data value into its tagged view.
// The NOTAM branch is taken only when bits 30-31 are zero and the field
// is nonzero; otherwise the value is an unrelated payload carried
// opaquely in Raw.
func DecodeExtraData(raw uint32) ExtraData {
	discriminator := (raw >> 30) & 0x3
	if discriminator != 0 || raw == 0 {
		return ExtraData{Raw: raw}
	}

	action := format.NotamAction((raw >> 28) & 0x3)

	codeAt := func(shift uint) (byte, bool) {
		v := (raw >> shift) & 0x1F
		if v < 1 || v > 26 {
			return 0, false
		}

		return byte('A' + v - 1), true
	}

	subjectFirst, ok1 := codeAt(23)
	subjectLast, ok2 := codeAt(18)
	actionFirst, ok3 := codeAt(13)
	actionLast, ok4 := codeAt(8)
	valid := ok1 && ok2 && ok3 && ok4

	codes := NotamCodes{Valid: valid}
	if valid {
		codes.SubjectFirst = subjectFirst
		codes.SubjectLast = subjectLast
		codes.ActionFirst = actionFirst
		codes.ActionLast = actionLast
	}

	traffic := format.NotamTrafficType((raw >> 4) & 0x7)
	scope := format.NotamScope(raw & 0xF)

	return ExtraData{
		IsNotam: true,
		Notam: NotamPayload{
			Action:  action,
			Codes:   codes,
			Traffic: traffic,
			Scope:   scope,
		},
		Raw: raw,
	}
}

// EncodeExtraData is the inverse of DecodeExtraData for the NOTAM branch;
// it reassembles the packed raw value from a NotamPayload's fields. The
// opaque-branch case needs no encoder: Raw is already the wire value.
func EncodeExtraData(p NotamPayload) uint32 {
	var raw uint32

	raw |= uint32(p.Action&0x3) << 28

	letterBits := func(letter byte) uint32 {
		if letter < 'A' || letter > 'Z' {
			return 0
		}

		return uint32(letter-'A') + 1
	}

	if p.Codes.Valid {
		raw |= letterBits(p.Codes.SubjectFirst) << 23
		raw |= letterBits(p.Codes.SubjectLast) << 18
		raw |= letterBits(p.Codes.ActionFirst) << 13
		raw |= letterBits(p.Codes.ActionLast) << 8
	}

	raw |= uint32(p.Traffic&0x7) << 4
	raw |= uint32(p.Scope & 0xF)

	return raw
}

// DaysActive is the 12-bit days-active flag set packed into bits 52-63 of
// item.active_time. The bit above DayByNotam has no named flag; it is
// kept in the DaysActive value as read, so ActiveTime.Bytes re-emits it
// unchanged.
type DaysActive uint16

const (
	DaySunday DaysActive = 1 << iota
	DayMonday
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DayHolidays
	DayAUP
	DayIrregular
	DayByNotam
)

// Has reports whether flag is set.
func (d DaysActive) Has(flag DaysActive) bool {
	return d&flag != 0
}

const (
	activeTimeEndBits   = 26
	activeTimeStartBits = 26
	activeTimeEndMask   = (uint64(1) << activeTimeEndBits) - 1
	activeTimeStartMask = (uint64(1) << activeTimeStartBits) - 1
	activeTimeDaysMask  = uint64(1)<<12 - 1

	// EncodedMinuteNoStart is the sentinel start value meaning "no start".
	EncodedMinuteNoStart uint32 = 0
	// EncodedMinuteNoEnd is the sentinel end value meaning "no end".
	EncodedMinuteNoEnd uint32 = uint32(activeTimeEndMask)
)

// ActiveTime is the decoded form of item.active_time: a set
// of days-active flags plus raw 26-bit encoded start/end timestamps. The
// sentinels (0 for start, 0x3FFFFFF for end) are preserved as-is; callers
// use EncodedMinuteNoStart/EncodedMinuteNoEnd to test for them before
// calling DecodeEncodedMinute.
type ActiveTime struct {
	Days  DaysActive
	Start uint32
	End   uint32
}

// DecodeActiveTime projects a raw active_time value into its overloaded
// fields.
func DecodeActiveTime(raw uint64) ActiveTime {
	return ActiveTime{
		Days:  DaysActive((raw >> 52) & activeTimeDaysMask),
		Start: uint32((raw >> activeTimeEndBits) & activeTimeStartMask),
		End:   uint32(raw & activeTimeEndMask),
	}
}

// Bytes reassembles the raw active_time value from its fields.
func (a ActiveTime) Bytes() uint64 {
	var raw uint64
	raw |= (uint64(a.Days) & activeTimeDaysMask) << 52
	raw |= uint64(a.Start&uint32(activeTimeStartMask)) << activeTimeEndBits
	raw |= uint64(a.End & uint32(activeTimeEndMask))

	return raw
}

// EncodedMinute is the canonical wire shape of a packed 26-bit timestamp:
// mixed-radix minute(60), hour(24), day(31), month(12), year(+2000).
// Day and Month are civil (1-based); the wire form stores them zero-based.
type EncodedMinute struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

// DecodeEncodedMinute peels the mixed-radix value apart in minute, hour,
// day, month, year order. Callers must check the sentinel value (0 for
// start, 0x3FFFFFF for end) themselves before calling this; it has no
// sentinel meaning of its own.
func DecodeEncodedMinute(value uint32) EncodedMinute {
	v := uint64(value)

	minute := v % 60
	v /= 60
	hour := v % 24
	v /= 24
	day := v % 31
	v /= 31
	month := v % 12
	v /= 12
	year := v

	return EncodedMinute{
		Year:   int(year) + 2000,
		Month:  int(month) + 1,
		Day:    int(day) + 1,
		Hour:   int(hour),
		Minute: int(minute),
	}
}

// EncodeEncodedMinute is the inverse of DecodeEncodedMinute.
func EncodeEncodedMinute(t EncodedMinute) uint32 {
	years := uint64(t.Year - 2000)
	month0 := uint64(t.Month - 1)
	day0 := uint64(t.Day - 1)

	v := uint64(t.Minute)
	v += 60 * uint64(t.Hour)
	v += 60 * 24 * day0
	v += 60 * 24 * 31 * month0
	v += 60 * 24 * 31 * 12 * years

	return uint32(v) //nolint:gosec
}
