package packet

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Golden(t *testing.T) {
	cases := map[string]string{
		"literal":      "D2FE28",
		"less_than":    "38006F45291200",
		"max_by_count": "EE00D40C823060",
		"nested_min":   "8A004A801A8002F478",
		"nested_sum":   "A0016C880162017C3686B18A3D4780",
		"equal_nested": "9C0141080250320F1802104A08",
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for name, hex := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := Decode(hex)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Render(&buf, p))
			g.Assert(t, "render_"+name, buf.Bytes())
		})
	}
}

func TestPacket_StringMatchesRender(t *testing.T) {
	p, err := Decode("38006F45291200")
	require.NoError(t, err)
	assert.Equal(t, "v1 less_than\n  v6 literal 10\n  v2 literal 20\n", p.String())
}

func TestRender_NilLiteralValue(t *testing.T) {
	p := NewOperator(4, OpSum, NewLiteral(1, nil))
	assert.Equal(t, "v4 sum\n  v1 literal 0\n", p.String())
	assert.True(t, p.Equal(NewOperator(4, OpSum, lit(1, 0))))
}

func TestOpCode_Text(t *testing.T) {
	for op := range opNames {
		text, err := op.MarshalText()
		require.NoError(t, err)

		var back OpCode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, op, back)
	}

	_, err := OpCode(LiteralTypeID).MarshalText()
	assert.Error(t, err)

	var op OpCode
	assert.Error(t, op.UnmarshalText([]byte("modulo")))
}
