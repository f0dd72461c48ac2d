package block

import (
	"github.com/annel0/nitworld/internal/vec"
)

// Terrain определяет минимальный интерфейс чтения ландшафта.
// Им пользуются предметы (падение) и генератор мира.
type Terrain interface {
	// BlockAt возвращает идентификатор блока в указанной позиции.
	BlockAt(pos vec.Vec3) BlockID

	// InBounds проверяет, что позиция лежит внутри мира.
	InBounds(pos vec.Vec3) bool

	// IsAboveSolid сообщает, стоит ли позиция на твёрдой опоре
	// (нижний слой мира считается опорой).
	IsAboveSolid(pos vec.Vec3) bool
}
