package models

import (
	"encoding/json"
)

// Color is the closed set of mood colors a record or post can carry.
// The zero value is Gray, which is also the fallback for anything unrecognized.
type Color int

const (
	Gray Color = iota
	Yellow
	Blue
	Red
	Green
	Purple
	Orange
)

// PaletteColors lists the colors a user can pick. Gray is only ever a fallback.
var PaletteColors = []Color{Yellow, Blue, Red, Green, Purple, Orange}

var colorNames = map[Color]string{
	Yellow: "yellow",
	Blue:   "blue",
	Red:    "red",
	Green:  "green",
	Purple: "purple",
	Orange: "orange",
}

var colorsByName = map[string]Color{
	"yellow": Yellow,
	"blue":   Blue,
	"red":    Red,
	"green":  Green,
	"purple": Purple,
	"orange": Orange,
}

// EncodeColor returns the stored identifier for c. Anything outside the palette encodes as "gray".
func EncodeColor(c Color) string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "gray"
}

// DecodeColor maps a stored identifier back to a Color. Unknown input silently becomes Gray,
// so decoding then encoding an unknown string yields "gray", not the original.
func DecodeColor(s string) Color {
	if c, ok := colorsByName[s]; ok {
		return c
	}
	return Gray
}

func (c Color) String() string {
	return EncodeColor(c)
}

// MarshalJSON writes the color as its string identifier.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeColor(c))
}

// UnmarshalJSON accepts any string and normalizes unknown values to Gray.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = Gray
		return nil
	}
	*c = DecodeColor(s)
	return nil
}
