package block

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsPassable сообщает, можно ли находиться внутри блока.
// Незарегистрированные блоки считаются непроходимыми.
func IsPassable(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Passable()
}

// IsSolid сообщает, служит ли блок опорой
func IsSolid(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Solid()
}

// BlockID представляет идентификатор блока
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID      BlockID = iota // 0
	RockBlockID                    // 1
	TreeBlockID                    // 2
	WorkshopBlockID                // 3
)

// Debris описывает вид обломков, которые может оставить обрушившийся блок
type Debris uint8

const (
	DebrisNone Debris = iota
	DebrisLog
	DebrisBoulder
)
