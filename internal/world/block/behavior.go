package block

// BlockBehavior определяет свойства типа блока
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// Passable: можно ли находиться внутри блока
	Passable() bool
	// Solid: служит ли блок опорой для соседей
	Solid() bool
	// Debris: что может остаться после обрушения
	Debris() Debris
}
