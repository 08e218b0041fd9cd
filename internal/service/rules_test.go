package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	t.Parallel()

	fallback := Recommend("")
	tests := []struct {
		label string
		want  string
	}{
		{"happy", "Feel-good music recommendation"},
		{"sad", "Comforting meditation recommendation"},
		{"angry", "Calming breathing exercise"},
		{"행복", "Feel-good music recommendation"},
		{"슬픔", "Comforting meditation recommendation"},
		{"화남", "Calming breathing exercise"},
		{"unknown-label", fallback},
		{"Happy", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.label))
		})
	}
	assert.Equal(t, "Content to help restore your daily routine", fallback)
}

func TestLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{110, 1},
		{199, 1},
		{250, 2},
		{10_000, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.xp), "LevelFor(%d)", tt.xp)
	}
	for xp := 0; xp < 1000; xp += 7 {
		assert.Equal(t, xp/100, LevelFor(xp))
	}
}
