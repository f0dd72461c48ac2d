package nit

import (
	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
)

// World представляет интерфейс мира, которым пользуется движок.
// Нит хранит ссылку на мир, но не владеет им.
type World interface {
	block.Terrain

	// Size возвращает размеры мира по каждой оси
	Size() vec.Vec3

	// IsPassable проверяет, можно ли находиться в кубике
	IsPassable(pos vec.Vec3) bool

	// IsSolid проверяет, является ли кубик твёрдым
	IsSolid(pos vec.Vec3) bool

	// Neighbours возвращает соседей кубика, лежащих внутри мира
	Neighbours(pos vec.Vec3) []vec.Vec3

	// IsNeighbouringSolid сообщает, есть ли среди соседей твёрдый кубик
	IsNeighbouringSolid(pos vec.Vec3) bool

	// Collapse обрушивает твёрдый кубик (может оставить обломки)
	Collapse(pos vec.Vec3) error

	// AddItem кладёт предмет в мир
	AddItem(it *item.Item, pos vec.Vec3) error

	// RemoveItem забирает предмет из мира
	RemoveItem(it *item.Item)

	// ItemsAt возвращает предметы, лежащие в кубике
	ItemsAt(pos vec.Vec3) []*item.Item

	// Nits возвращает всех живых нитов
	Nits() []*Nit

	// RemoveNit убирает нита из мира
	RemoveNit(n *Nit)
}

// Random: источник случайных чисел. *rand.Rand удовлетворяет интерфейсу.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Task: задача, назначенная ниту планировщиком.
// Нит хранит только обратную ссылку; задачей владеет планировщик.
type Task interface {
	// Name возвращает имя задачи для логов
	Name() string

	// Step вызывается раз в тик, когда нит свободен.
	// Ошибка, обёрнутая в TaskError, снимает задачу.
	Step(n *Nit) error

	// Completed сообщает, что задача выполнена
	Completed() bool

	// Interrupt вызывается, когда нит снимает задачу
	Interrupt(n *Nit)
}
