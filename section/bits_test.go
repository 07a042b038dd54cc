package section

import (
	"testing"

	"github.com/Turbo87/seeyou-cub/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecodeExtraData_Opaque(t *testing.T) {
	raw := uint32(1) << 30 // discriminator nonzero

	ed := DecodeExtraData(raw)

	require.False(t, ed.IsNotam)
	require.Equal(t, raw, ed.Raw)
}

func TestDecodeExtraData_Zero(t *testing.T) {
	ed := DecodeExtraData(0)

	require.False(t, ed.IsNotam)
	require.Equal(t, uint32(0), ed.Raw)
}

func TestExtraData_Notam_RoundTrip(t *testing.T) {
	payload := NotamPayload{
		Action: format.NotamActionReplace,
		Codes: NotamCodes{
			SubjectFirst: 'A',
			SubjectLast:  'Z',
			ActionFirst:  'Q',
			ActionLast:   'M',
			Valid:        true,
		},
		Traffic: format.NotamTrafficIFRAndVFR,
		Scope:   format.NotamScopeAeroAndEnRoute,
	}

	raw := EncodeExtraData(payload)
	ed := DecodeExtraData(raw)

	require.True(t, ed.IsNotam)
	require.Equal(t, payload.Action, ed.Notam.Action)
	require.True(t, ed.Notam.Codes.Valid)
	require.Equal(t, payload.Codes, ed.Notam.Codes)
	require.Equal(t, payload.Traffic, ed.Notam.Traffic)
	require.Equal(t, payload.Scope, ed.Notam.Scope)
}

func TestExtraData_Notam_InvalidCodeFallsBackToInvalid(t *testing.T) {
	// bits 8-27 all zero -> each 5-bit code field is 0, outside {1..26}.
	raw := uint32(0x2) << 28 // action=New, codes all zero, traffic/scope zero

	ed := DecodeExtraData(raw)

	require.True(t, ed.IsNotam)
	require.False(t, ed.Notam.Codes.Valid)
	require.Equal(t, "", ed.Notam.Codes.String())
}

func TestActiveTime_RoundTrip(t *testing.T) {
	at := ActiveTime{
		Days:  DayMonday | DaySaturday | DayByNotam,
		Start: 12345,
		End:   EncodedMinuteNoEnd,
	}

	raw := at.Bytes()
	decoded := DecodeActiveTime(raw)

	require.Equal(t, at.Days, decoded.Days)
	require.Equal(t, at.Start, decoded.Start)
	require.Equal(t, at.End, decoded.End)
}

func TestActiveTime_NoStartSentinel(t *testing.T) {
	decoded := DecodeActiveTime(0)

	require.Equal(t, EncodedMinuteNoStart, decoded.Start)
	require.Equal(t, uint32(0), decoded.End)
}

func TestEncodedMinute_RoundTrip(t *testing.T) {
	in := EncodedMinute{Year: 2024, Month: 3, Day: 17, Hour: 13, Minute: 45}

	value := EncodeEncodedMinute(in)
	out := DecodeEncodedMinute(value)

	require.Equal(t, in, out)
}

func TestEncodedMinute_BoundaryValues(t *testing.T) {
	cases := []EncodedMinute{
		{Year: 2000, Month: 1, Day: 1, Hour: 0, Minute: 0},
		{Year: 2031, Month: 12, Day: 31, Hour: 23, Minute: 59},
	}

	for _, c := range cases {
		value := EncodeEncodedMinute(c)
		out := DecodeEncodedMinute(value)
		require.Equal(t, c, out)
	}
}

// TestEncodedMinute_RoundTripProperty checks decode(encode(t)) == t
// across the representable domain of each field.
func TestEncodedMinute_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := EncodedMinute{
			Year:   rapid.IntRange(2000, 2063).Draw(t, "year"),
			Month:  rapid.IntRange(1, 12).Draw(t, "month"),
			Day:    rapid.IntRange(1, 31).Draw(t, "day"),
			Hour:   rapid.IntRange(0, 23).Draw(t, "hour"),
			Minute: rapid.IntRange(0, 59).Draw(t, "minute"),
		}

		out := DecodeEncodedMinute(EncodeEncodedMinute(in))

		assert.Equal(t, in, out)
	})
}

// TestNotamCodes_RoundTripProperty: every 4-tuple of letters A-Z
// round-trips, and the encoded value's top two bits (the extra_data
// discriminator) stay zero.
func TestNotamCodes_RoundTripProperty(t *testing.T) {
	letter := rapid.Custom(func(t *rapid.T) byte {
		return byte('A' + rapid.IntRange(0, 25).Draw(t, "offset"))
	})

	rapid.Check(t, func(t *rapid.T) {
		codes := NotamCodes{
			SubjectFirst: letter.Draw(t, "subjectFirst"),
			SubjectLast:  letter.Draw(t, "subjectLast"),
			ActionFirst:  letter.Draw(t, "actionFirst"),
			ActionLast:   letter.Draw(t, "actionLast"),
			Valid:        true,
		}
		payload := NotamPayload{Action: format.NotamActionNew, Codes: codes}

		raw := EncodeExtraData(payload)
		assert.Zero(t, raw>>30, "top two discriminator bits must stay zero")

		decoded := DecodeExtraData(raw)
		assert.True(t, decoded.Notam.Codes.Valid)
		assert.Equal(t, codes, decoded.Notam.Codes)
	})
}
