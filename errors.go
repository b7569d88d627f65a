package oflib

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsupportedRecordType is returned for a record tag this package
	// cannot encode. List and aggregate records skip such children.
	ErrUnsupportedRecordType = errors.New("oflib: unsupported record type")

	// ErrMissingExtensionHandler is returned when an experimenter record
	// has no handler registered. It aborts the enclosing record.
	ErrMissingExtensionHandler = errors.New("oflib: no experimenter handler")

	// ErrInvariantViolation is returned when the pack pass disagrees with
	// the length pass. errors.IsAssertionFailure reports true for it.
	ErrInvariantViolation = errors.New("oflib: packed length disagrees with computed length")

	// ErrShortBuffer is returned by a pack call whose destination is
	// smaller than the record's length. Nothing is written.
	ErrShortBuffer = errors.New("oflib: destination buffer too short")

	// ErrRecordTooLong is returned by the length and pack passes when a
	// record does not fit its 16 bit length field, or an OXM field does not
	// fit its 8 bit TLV length.
	ErrRecordTooLong = errors.New("oflib: record exceeds its length field")
)

// maxRecordLen is the largest length a 16 bit length field can declare.
const maxRecordLen = 0xffff

func skippable(err error) bool {
	return errors.Is(err, ErrUnsupportedRecordType)
}
