package implementations

import (
	"github.com/annel0/nitworld/internal/world/block"
)

// RockBehavior реализует поведение скалы
type RockBehavior struct{}

// ID возвращает идентификатор блока
func (b *RockBehavior) ID() block.BlockID {
	return block.RockBlockID
}

// Name возвращает имя блока
func (b *RockBehavior) Name() string {
	return "Rock"
}

// Passable возвращает false, скала непроходима
func (b *RockBehavior) Passable() bool {
	return false
}

// Solid: скала служит опорой
func (b *RockBehavior) Solid() bool {
	return true
}

// Debris: после обрушения может остаться валун
func (b *RockBehavior) Debris() block.Debris {
	return block.DebrisBoulder
}
