package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", Red},
		{"  White ", White},
		{"#fff", White},
		{"#222222", Neutral},
		{"#00000080", color.RGBA{A: 0x80}},
		{"navy", color.RGBA{R: 0, G: 0, B: 0x80, A: 255}},
		{"transparent", Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12", "#ggg", "#1234567"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnknownColor, in)
	}
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll([]string{"black", "#fff"})
	require.NoError(t, err)
	assert.Equal(t, []color.RGBA{Black, White}, got)

	_, err = ParseAll([]string{"black", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#222222", Hex(Neutral))
	assert.Equal(t, "#ff0000", Hex(Red))
	assert.Equal(t, "#00000000", Hex(Transparent))
	assert.Equal(t, "#ffffff80", Hex(color.NRGBA{R: 255, G: 255, B: 255, A: 0x80}))
}

func TestParseTranslucent(t *testing.T) {
	c, err := Parse("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x80, A: 0x80}, c)
	assert.Equal(t, "#ff000080", Hex(c))

	c, err = Parse("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, "#00ff0080", Hex(c))
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, White, MustParse("#fff"))
	assert.Panics(t, func() { MustParse("#12345") })
}
