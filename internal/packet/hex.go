package packet

import "strings"

// BitsPerHexDigit is the width of one hex character in the bit sequence.
const BitsPerHexDigit = 4

// DecodeHex expands a hex string into a bit sequence, 4 bits per character,
// most-significant bit first. Each element of the result is 0 or 1.
//
// The input is expected to be trimmed already. Both upper and lower case
// digits are accepted; anything else fails with MALFORMED_HEX before any bits
// are produced.
func DecodeHex(s string) ([]byte, error) {
	bits := make([]byte, 0, len(s)*BitsPerHexDigit)
	for i, r := range s {
		nibble, ok := hexValue(r)
		if !ok {
			return nil, newError(ErrCodeMalformedHex, i, "invalid hex digit %q", r)
		}
		for shift := BitsPerHexDigit - 1; shift >= 0; shift-- {
			bits = append(bits, (nibble>>uint(shift))&1)
		}
	}
	return bits, nil
}

func hexValue(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	default:
		return 0, false
	}
}

// EncodeHex packs a bit sequence into uppercase hex, zero-padding the tail to
// the next 4-bit boundary.
func EncodeHex(bits []byte) string {
	var sb strings.Builder
	sb.Grow((len(bits) + BitsPerHexDigit - 1) / BitsPerHexDigit)
	for i := 0; i < len(bits); i += BitsPerHexDigit {
		var nibble byte
		for j := 0; j < BitsPerHexDigit; j++ {
			nibble <<= 1
			if i+j < len(bits) {
				nibble |= bits[i+j] & 1
			}
		}
		sb.WriteByte("0123456789ABCDEF"[nibble])
	}
	return sb.String()
}

// FormatBits renders a bit sequence as a string of '0' and '1'.
func FormatBits(bits []byte) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		buf[i] = '0' + (b & 1)
	}
	return string(buf)
}
