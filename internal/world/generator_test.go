package world

import (
	"testing"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldGenerator_Terrain(t *testing.T) {
	w := newTestWorld(t, 16, 16, 10)
	gen := NewWorldGenerator(42)
	surface := gen.Generate(w)

	require.NotEmpty(t, surface)
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			assert.Equal(t, block.RockBlockID, w.BlockAt(vec.Vec3{X: x, Y: y, Z: 0}), "Дно мира — скала")
			assert.Equal(t, block.AirBlockID, w.BlockAt(vec.Vec3{X: x, Y: y, Z: 9}), "Верх мира свободен")
		}
	}
	for _, pos := range surface {
		assert.True(t, w.IsPassable(pos))
		assert.True(t, w.IsAboveSolid(pos), "Поверхность %v должна стоять на опоре", pos)
	}

	assert.Equal(t, gen.WorkshopCount, w.Count(block.WorkshopBlockID))
	assert.Len(t, w.Items(), gen.ItemCount)
	for _, it := range w.Items() {
		assert.True(t, w.IsAboveSolid(it.Cube()))
	}
}

func TestWorldGenerator_Deterministic(t *testing.T) {
	a := newTestWorld(t, 12, 12, 8)
	b := newTestWorld(t, 12, 12, 8)
	NewWorldGenerator(5).Generate(a)
	NewWorldGenerator(5).Generate(b)

	assert.Equal(t, a.blocks, b.blocks)
	require.Len(t, b.Items(), len(a.Items()))
	for i, it := range a.Items() {
		assert.Equal(t, it.Position(), b.Items()[i].Position())
		assert.Equal(t, it.Weight(), b.Items()[i].Weight())
	}

	c := newTestWorld(t, 12, 12, 8)
	NewWorldGenerator(6).Generate(c)
	assert.NotEqual(t, a.blocks, c.blocks, "Другой сид даёт другой ландшафт")
}

func TestWorldGenerator_TreesOnSurface(t *testing.T) {
	w := newTestWorld(t, 16, 16, 10)
	gen := NewWorldGenerator(3)
	gen.TreeDensity = 1
	gen.WorkshopCount = 0
	gen.ItemCount = 0
	surface := gen.Generate(w)

	assert.Empty(t, surface, "Все поверхностные кубики заняты деревьями")
	assert.Equal(t, 16*16, w.Count(block.TreeBlockID))
}
