package packet

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes decode and evaluation failures.
type ErrorCode string

const (
	// ErrCodeMalformedHex indicates a non-hex character in the transmission.
	ErrCodeMalformedHex ErrorCode = "MALFORMED_HEX"

	// ErrCodeTruncated indicates a field read past the end of the available bits.
	ErrCodeTruncated ErrorCode = "TRUNCATED_BITSTREAM"

	// ErrCodeInvalidArity indicates an operator with the wrong number of sub-packets.
	ErrCodeInvalidArity ErrorCode = "INVALID_OPERATOR_ARITY"

	// ErrCodeDepthExceeded indicates nesting deeper than the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"

	// ErrCodeFieldOverflow indicates a value too wide for its wire field during encoding.
	ErrCodeFieldOverflow ErrorCode = "FIELD_OVERFLOW"
)

// Error is returned by every fallible operation in this package.
//
// Offset is the absolute bit position where the failure was detected, or the
// character index for MALFORMED_HEX. It is -1 when no position applies
// (evaluation and encoding of hand-built trees).
type Error struct {
	Code   ErrorCode
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset=%d)", e.Code, e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func newError(code ErrorCode, offset int, format string, args ...any) *Error {
	return &Error{Code: code, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsMalformedHex reports whether err is a MALFORMED_HEX error.
func IsMalformedHex(err error) bool { return CodeOf(err) == ErrCodeMalformedHex }

// IsTruncated reports whether err is a TRUNCATED_BITSTREAM error.
func IsTruncated(err error) bool { return CodeOf(err) == ErrCodeTruncated }

// IsInvalidArity reports whether err is an INVALID_OPERATOR_ARITY error.
func IsInvalidArity(err error) bool { return CodeOf(err) == ErrCodeInvalidArity }

// IsDepthExceeded reports whether err is a DEPTH_EXCEEDED error.
func IsDepthExceeded(err error) bool { return CodeOf(err) == ErrCodeDepthExceeded }

// IsFieldOverflow reports whether err is a FIELD_OVERFLOW error.
func IsFieldOverflow(err error) bool { return CodeOf(err) == ErrCodeFieldOverflow }
