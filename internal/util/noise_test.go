package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_Deterministic(t *testing.T) {
	a := NewPerlinNoise(42)
	b := NewPerlinNoise(42)

	for i := 0; i < 20; i++ {
		x, y := float64(i)*0.13, float64(i)*0.07
		va := a.Noise2D(x, y)
		assert.Equal(t, va, b.Noise2D(x, y), "Одинаковый сид даёт одинаковый шум")
		assert.True(t, va >= 0 && va <= 1, "Шум %v вне [0,1]", va)
	}
	assert.Equal(t, int64(42), a.Seed())
}
