package nit

import (
	"math"

	"github.com/annel0/nitworld/internal/vec"
)

// Kind задаёт политику конкретного вида нита. Это единственная ось
// полиморфизма: какие кубики считаются проходимыми при поиске пути,
// как выбирается случайная достижимая цель, как считаются максимумы
// очков и как генерируется имя.
type Kind interface {
	// Name возвращает имя вида ("unit", "enit")
	Name() string

	// CanStand проверяет, может ли нит этого вида находиться в кубике
	CanStand(w World, pos vec.Vec3) bool

	// RandomReachable выбирает случайную цель для блуждания
	RandomReachable(w World, from vec.Vec3, rng Random) (vec.Vec3, bool)

	// MaxPoints возвращает максимум очков здоровья и стамины
	MaxPoints(weight, strength, toughness int) int

	// GenerateName генерирует имя; пустая строка — имя обязательно задаётся явно
	GenerateName(rng Random) string
}

// Unit описывает юнита, который стоит только на кубиках с опорой рядом
// (или на дне мира). Имя юниту задаётся явно.
type Unit struct{}

func (Unit) Name() string { return "unit" }

func (Unit) CanStand(w World, pos vec.Vec3) bool {
	if !w.InBounds(pos) || !w.IsPassable(pos) {
		return false
	}
	return pos.Z == 0 || w.IsNeighbouringSolid(pos)
}

func (u Unit) RandomReachable(w World, from vec.Vec3, rng Random) (vec.Vec3, bool) {
	size := w.Size()
	for i := 0; i < randomSampleAttempts; i++ {
		pos := vec.Vec3{X: rng.Intn(size.X), Y: rng.Intn(size.Y), Z: rng.Intn(size.Z)}
		if pos != from && u.CanStand(w, pos) {
			return pos, true
		}
	}
	return vec.Vec3{}, false
}

// MaxPoints для юнита: ceil(200 * weight/100 * toughness/100)
func (Unit) MaxPoints(weight, strength, toughness int) int {
	return int(math.Ceil(200 * float64(weight) / 100 * float64(toughness) / 100))
}

func (Unit) GenerateName(rng Random) string { return "" }

// Enit описывает энита, который ходит по любым проходимым кубикам
// и блуждает недалеко от себя.
type Enit struct{}

func (Enit) Name() string { return "enit" }

func (Enit) CanStand(w World, pos vec.Vec3) bool {
	return w.InBounds(pos) && w.IsPassable(pos)
}

func (e Enit) RandomReachable(w World, from vec.Vec3, rng Random) (vec.Vec3, bool) {
	span := 2*EnitWanderRadius + 1
	for i := 0; i < randomSampleAttempts; i++ {
		pos := from.Add(vec.Vec3{
			X: rng.Intn(span) - EnitWanderRadius,
			Y: rng.Intn(span) - EnitWanderRadius,
			Z: rng.Intn(span) - EnitWanderRadius,
		})
		if pos != from && e.CanStand(w, pos) {
			return pos, true
		}
	}
	return vec.Vec3{}, false
}

// MaxPoints для энита: weight + strength
func (Enit) MaxPoints(weight, strength, toughness int) int {
	return weight + strength
}

func (Enit) GenerateName(rng Random) string {
	return generateName(rng)
}
