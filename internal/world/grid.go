package world

import (
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
)

// Grid хранит блоки прямоугольного мира в одном плоском массиве.
// Индекс: x + sizeX*(y + sizeY*z).
type Grid struct {
	size   vec.Vec3
	blocks []block.BlockID

	// ChangeCounter считает изменения с момента создания
	ChangeCounter int
}

// NewGrid создаёт мир из воздуха указанного размера
func NewGrid(size vec.Vec3) *Grid {
	return &Grid{
		size:   size,
		blocks: make([]block.BlockID, size.X*size.Y*size.Z),
	}
}

func (g *Grid) Size() vec.Vec3 { return g.size }

func (g *Grid) InBounds(pos vec.Vec3) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
		pos.X < g.size.X && pos.Y < g.size.Y && pos.Z < g.size.Z
}

func (g *Grid) index(pos vec.Vec3) int {
	return pos.X + g.size.X*(pos.Y+g.size.Y*pos.Z)
}

// BlockAt возвращает блок; за пределами мира — скала
func (g *Grid) BlockAt(pos vec.Vec3) block.BlockID {
	if !g.InBounds(pos) {
		return block.RockBlockID
	}
	return g.blocks[g.index(pos)]
}

// SetBlock меняет блок; возвращает false за пределами мира
func (g *Grid) SetBlock(pos vec.Vec3, id block.BlockID) bool {
	if !g.InBounds(pos) {
		return false
	}
	g.blocks[g.index(pos)] = id
	g.ChangeCounter++
	return true
}

// IsPassable проверяет, что кубик внутри мира и блок проходим
func (g *Grid) IsPassable(pos vec.Vec3) bool {
	return g.InBounds(pos) && block.IsPassable(g.blocks[g.index(pos)])
}

// IsSolid проверяет, что кубик внутри мира и блок служит опорой
func (g *Grid) IsSolid(pos vec.Vec3) bool {
	return g.InBounds(pos) && block.IsSolid(g.blocks[g.index(pos)])
}

// IsAboveSolid: нижний слой мира всегда стоит на опоре
func (g *Grid) IsAboveSolid(pos vec.Vec3) bool {
	return pos.Z == 0 || g.IsSolid(pos.Below())
}

// Neighbours возвращает соседей, лежащих внутри мира, в порядке vec.Vec3.Neighbours
func (g *Grid) Neighbours(pos vec.Vec3) []vec.Vec3 {
	all := pos.Neighbours()
	result := all[:0]
	for _, nb := range all {
		if g.InBounds(nb) {
			result = append(result, nb)
		}
	}
	return result
}

// IsNeighbouringSolid сообщает, есть ли среди 26 соседей твёрдый блок
func (g *Grid) IsNeighbouringSolid(pos vec.Vec3) bool {
	for _, nb := range pos.Neighbours() {
		if g.IsSolid(nb) {
			return true
		}
	}
	return false
}

// Count считает блоки указанного вида
func (g *Grid) Count(id block.BlockID) int {
	count := 0
	for _, b := range g.blocks {
		if b == id {
			count++
		}
	}
	return count
}
