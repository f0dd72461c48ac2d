package implementations

import (
	"github.com/annel0/nitworld/internal/world/block"
)

// AirBehavior реализует поведение пустого блока (воздуха)
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// Passable: через воздух можно ходить
func (b *AirBehavior) Passable() bool {
	return true
}

// Solid возвращает false, воздух не служит опорой
func (b *AirBehavior) Solid() bool {
	return false
}

// Debris: воздух не обрушивается
func (b *AirBehavior) Debris() block.Debris {
	return block.DebrisNone
}
