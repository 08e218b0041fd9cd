package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeColor_UnknownFallsBackToGray(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "grey", "Gray", "YELLOW", "magenta", "  red", "#ff0000"} {
		assert.Equal(t, Gray, DecodeColor(s), "input %q", s)
		assert.Equal(t, "gray", EncodeColor(DecodeColor(s)), "input %q", s)
	}
}

func TestColor_RoundTripPalette(t *testing.T) {
	t.Parallel()
	require.Len(t, PaletteColors, 6)
	for _, c := range PaletteColors {
		assert.Equal(t, c, DecodeColor(EncodeColor(c)))
	}
}

func TestEncodeColor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		color    Color
		expected string
	}{
		{Yellow, "yellow"},
		{Blue, "blue"},
		{Red, "red"},
		{Green, "green"},
		{Purple, "purple"},
		{Orange, "orange"},
		{Gray, "gray"},
		{Color(42), "gray"},
		{Color(-1), "gray"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, EncodeColor(tt.color))
		assert.Equal(t, tt.expected, tt.color.String())
	}
}

func TestColor_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		Color Color `json:"color"`
	}{Purple})
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"purple"}`, string(b))

	var in struct {
		Color Color `json:"color"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"color":"teal"}`), &in))
	assert.Equal(t, Gray, in.Color)

	require.NoError(t, json.Unmarshal([]byte(`{"color":7}`), &in))
	assert.Equal(t, Gray, in.Color)

	require.NoError(t, json.Unmarshal([]byte(`{"color":"orange"}`), &in))
	assert.Equal(t, Orange, in.Color)
}

func TestPost_SameAs(t *testing.T) {
	t.Parallel()
	a := Post{ID: "p1", Likes: 1}
	b := Post{ID: "p1", Likes: 9, Message: "edited view"}
	c := Post{ID: "p2"}
	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
}
