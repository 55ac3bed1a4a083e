package canon

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsKeys(t *testing.T) {
	data, err := Marshal(Object{
		"zebra": NewInt(1),
		"apple": NewInt(2),
		"mango": Bool(true),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":true,"zebra":1}`, string(data))
}

func TestMarshal_UTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF21
	// in UTF-16 even though its UTF-8 encoding sorts after.
	data, err := Marshal(Object{
		"\uFF21":     NewInt(1),
		"\U0001F600": NewInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uFF21\":1}", string(data))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	data, err := Marshal(String("<a & b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(data))
}

func TestMarshal_LineSeparatorsNotEscaped(t *testing.T) {
	data, err := Marshal(String("a\u2028b\u2029c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(data))
}

func TestMarshal_ControlCharacters(t *testing.T) {
	data, err := Marshal(String("q\"b\\n\n\x01"))
	require.NoError(t, err)
	assert.Equal(t, `"q\"b\\n\n\u0001"`, string(data))
}

func TestMarshal_NFCNormalizes(t *testing.T) {
	decomposed, err := Marshal(String("e\u0301"))
	require.NoError(t, err)
	composed, err := Marshal(String("\u00e9"))
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshal_BigIntegers(t *testing.T) {
	n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	data, err := Marshal(Array{Int{n}, NewInt(-3)})
	require.NoError(t, err)
	assert.Equal(t, `[123456789012345678901234567890,-3]`, string(data))
}

func TestMarshal_RejectsNull(t *testing.T) {
	_, err := Marshal(nil)
	assert.Error(t, err)

	_, err = Marshal(Object{"k": Int{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value for key "k"`)

	_, err = Marshal(Array{String("a"), nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}
