package item

import (
	"errors"
	"fmt"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind: вид предмета
type Kind uint8

const (
	KindLog Kind = iota
	KindBoulder
)

// String возвращает имя вида предмета
func (k Kind) String() string {
	switch k {
	case KindLog:
		return "log"
	case KindBoulder:
		return "boulder"
	default:
		return "unknown"
	}
}

const (
	MinWeight = 10
	MaxWeight = 50

	// FallSpeed: скорость падения, кубиков в секунду
	FallSpeed = 3.0
)

var (
	ErrInvalidWeight   = errors.New("item weight out of range")
	ErrInvalidPosition = errors.New("invalid item position")
)

// Item представляет неодушевлённый предмет (бревно или валун).
// Предмет либо лежит в мире, либо переносится нитом; в последнем
// случае мир его не видит.
type Item struct {
	kind     Kind
	weight   int
	position mgl64.Vec3
	falling  bool
}

// New создаёт предмет указанного вида и веса
func New(kind Kind, weight int) (*Item, error) {
	if weight < MinWeight || weight > MaxWeight {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	return &Item{kind: kind, weight: weight}, nil
}

// FromDebris сопоставляет обломки блока с видом предмета
func FromDebris(d block.Debris) (Kind, bool) {
	switch d {
	case block.DebrisLog:
		return KindLog, true
	case block.DebrisBoulder:
		return KindBoulder, true
	default:
		return 0, false
	}
}

func (it *Item) Kind() Kind               { return it.kind }
func (it *Item) Weight() int              { return it.weight }
func (it *Item) Position() mgl64.Vec3     { return it.position }
func (it *Item) Cube() vec.Vec3           { return vec.FromPosition(it.position) }
func (it *Item) IsFalling() bool          { return it.falling }
func (it *Item) IsLog() bool              { return it.kind == KindLog }
func (it *Item) IsBoulder() bool          { return it.kind == KindBoulder }
func (it *Item) String() string           { return fmt.Sprintf("%s(%d)", it.kind, it.weight) }
func (it *Item) setPosition(p mgl64.Vec3) { it.position = p }

// Place ставит предмет в центр кубика
func (it *Item) Place(t block.Terrain, cube vec.Vec3) error {
	if !t.InBounds(cube) || !block.IsPassable(t.BlockAt(cube)) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, cube)
	}
	it.setPosition(cube.Center())
	it.falling = false
	return nil
}

// AdvanceTime обновляет падение предмета.
// Предмет начинает падать, как только под ним нет опоры, и
// останавливается в центре первого кубика, стоящего на опоре.
func (it *Item) AdvanceTime(t block.Terrain, dt float64) {
	cube := it.Cube()
	if !it.falling {
		if t.IsAboveSolid(cube) {
			return
		}
		it.falling = true
	}

	next := it.position.Sub(mgl64.Vec3{0, 0, FallSpeed * dt})
	center := cube.Center()

	// Пересекаем центр кубика, который стоит на опоре — останавливаемся
	if next.Z() <= center.Z() && t.IsAboveSolid(cube) {
		it.setPosition(center)
		it.falling = false
		return
	}

	nextCube := vec.FromPosition(next)
	if nextCube != cube && t.IsAboveSolid(nextCube) && next.Z() <= nextCube.Center().Z() {
		it.setPosition(nextCube.Center())
		it.falling = false
		return
	}
	it.setPosition(next)
}
