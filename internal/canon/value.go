package canon

import (
	"math/big"
	"slices"
	"unicode/utf16"
)

// Value is the closed set of types that can be serialized canonically.
// There is deliberately no float and no null.
type Value interface {
	canonValue()
}

// String is a JSON string, NFC-normalized on output.
type String string

// Int is an arbitrary-precision JSON integer.
type Int struct{ *big.Int }

// Bool is a JSON boolean.
type Bool bool

// Array is an ordered JSON array.
type Array []Value

// Object is a JSON object. Keys are emitted in RFC 8785 order.
type Object map[string]Value

func (String) canonValue() {}
func (Int) canonValue()    {}
func (Bool) canonValue()   {}
func (Array) canonValue()  {}
func (Object) canonValue() {}

// NewInt wraps an int64 as an Int.
func NewInt(n int64) Int {
	return Int{big.NewInt(n)}
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's string comparison orders by UTF-8 bytes, which differs for
// characters outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
