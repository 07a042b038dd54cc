// Package errs defines the two-channel error/warning taxonomy used across
// the codec: sentinel errors for conditions that make a file un-framable,
// and a Warning type for lenient deviations a caller may inspect after a
// successful decode.
//
// The split is strictly "can the decoder still find the next record
// boundary". If yes, it's a Warning; if no, it's an error returned up the
// call stack as a wrapped sentinel.
package errs

import "errors"

// Hard errors terminate decoding immediately.
var (
	// ErrInvalidMagic is returned when the header's magic field does not
	// match the expected value exactly.
	ErrInvalidMagic = errors.New("cub: invalid magic")

	// ErrEncrypted is returned when the header's is_secured byte is
	// nonzero. The encryption scheme is undocumented; such files cannot
	// be read.
	ErrEncrypted = errors.New("cub: file is encrypted")

	// ErrIO wraps an underlying read/write failure or short read.
	ErrIO = errors.New("cub: io error")

	// ErrUnexpectedEOF indicates structural exhaustion, e.g. an item
	// table or point stream truncated mid-record.
	ErrUnexpectedEOF = errors.New("cub: unexpected end of data")

	// ErrInvalidPointFlag is returned for a point-stream record flag
	// whose shape cannot be interpreted enough to know how many bytes to
	// skip, making the remainder of the stream un-framable.
	ErrInvalidPointFlag = errors.New("cub: invalid point record flag")

	// ErrAlreadyStreaming is returned when a caller asks a File handle
	// for a second concurrent Points iterator while one is still active;
	// the shared seek cursor cannot serve two borrowers at once.
	ErrAlreadyStreaming = errors.New("cub: a point iterator already borrows this file handle")

	// ErrInvalidItemCount is returned when a writer is asked to emit a
	// file with more airspaces than the wire format's counters can hold.
	ErrInvalidItemCount = errors.New("cub: item count exceeds encodable range")
)

// WarningKind identifies the shape of a lenient decode deviation.
type WarningKind uint8

const (
	// KindInvalidEnumValue: an enumerable field held a value outside its
	// domain; the decoder substituted the documented default.
	KindInvalidEnumValue WarningKind = iota
	// KindOversizedRecord: a declared stride fell below the known
	// minimum; the decoder used the minimum.
	KindOversizedRecord
	// KindUnknownRecord: an unrecognized point-stream flag was skipped
	// by the declared point stride.
	KindUnknownRecord
	// KindUnknownOptionalData: an unrecognized optional-data tag
	// truncated the optional-data run conservatively.
	KindUnknownOptionalData
	// KindTruncatedData: a declared length overran available bytes but
	// decoding was able to continue.
	KindTruncatedData
	// KindDuplicateName: a writer batch contained two airspaces sharing
	// a title (see internal/names). Writer-side only.
	KindDuplicateName
)

func (k WarningKind) String() string {
	switch k {
	case KindInvalidEnumValue:
		return "InvalidEnumValue"
	case KindOversizedRecord:
		return "OversizedRecord"
	case KindUnknownRecord:
		return "UnknownRecord"
	case KindUnknownOptionalData:
		return "UnknownOptionalData"
	case KindTruncatedData:
		return "TruncatedData"
	case KindDuplicateName:
		return "DuplicateName"
	default:
		return "Unknown"
	}
}

// Warning is a single lenient deviation accumulated during decode (or
// write). The Field/Context carry human-readable context; Raw and
// Fallback carry the offending and substituted values where applicable.
type Warning struct {
	Kind     WarningKind
	Field    string // field or record name the warning concerns
	Context  string // free-form context, e.g. "item 3"
	Raw      int64  // raw value observed, where applicable
	Fallback int64  // substituted value, where applicable
}

func (w Warning) Error() string {
	msg := w.Kind.String()
	if w.Field != "" {
		msg += " field=" + w.Field
	}
	if w.Context != "" {
		msg += " context=" + w.Context
	}

	return msg
}

// InvalidEnumValue builds a KindInvalidEnumValue warning.
func InvalidEnumValue(field string, raw, fallback int64) Warning {
	return Warning{Kind: KindInvalidEnumValue, Field: field, Raw: raw, Fallback: fallback}
}

// OversizedRecord builds a KindOversizedRecord warning.
func OversizedRecord(field string, declared, minimum int64) Warning {
	return Warning{Kind: KindOversizedRecord, Field: field, Raw: declared, Fallback: minimum}
}

// UnknownRecord builds a KindUnknownRecord warning.
func UnknownRecord(flag uint8, context string) Warning {
	return Warning{Kind: KindUnknownRecord, Field: "flag", Context: context, Raw: int64(flag)}
}

// UnknownOptionalData builds a KindUnknownOptionalData warning.
func UnknownOptionalData(id uint8, context string) Warning {
	return Warning{Kind: KindUnknownOptionalData, Field: "data_id", Context: context, Raw: int64(id)}
}

// TruncatedData builds a KindTruncatedData warning.
func TruncatedData(context string) Warning {
	return Warning{Kind: KindTruncatedData, Context: context}
}

// DuplicateName builds a KindDuplicateName warning.
func DuplicateName(title string) Warning {
	return Warning{Kind: KindDuplicateName, Field: "title", Context: title}
}
