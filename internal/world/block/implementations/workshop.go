package implementations

import (
	"github.com/annel0/nitworld/internal/world/block"
)

// WorkshopBehavior – мастерская. Проходима; работа в ней превращает
// бревно и валун в улучшение снаряжения.
type WorkshopBehavior struct{}

func (b *WorkshopBehavior) ID() block.BlockID    { return block.WorkshopBlockID }
func (b *WorkshopBehavior) Name() string         { return "Workshop" }
func (b *WorkshopBehavior) Passable() bool       { return true }
func (b *WorkshopBehavior) Solid() bool          { return false }
func (b *WorkshopBehavior) Debris() block.Debris { return block.DebrisNone }
