package implementations

import "github.com/annel0/nitworld/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	block.Register(block.AirBlockID, &AirBehavior{})
	block.Register(block.RockBlockID, &RockBehavior{})
	block.Register(block.TreeBlockID, &TreeBehavior{})
	block.Register(block.WorkshopBlockID, &WorkshopBehavior{})
}
