package vec

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 представляет координату кубика (вокселя) в мире.
// Z: вертикальная ось. Сравнение и хеширование по значению, поэтому
// Vec3 можно использовать как ключ карты.
type Vec3 struct {
	X int
	Y int
	Z int
}

// neighbourOffsets: смещения 26-соседства в фиксированном порядке обхода.
var neighbourOffsets = func() []Vec3 {
	offsets := make([]Vec3, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets = append(offsets, Vec3{X: dx, Y: dy, Z: dz})
			}
		}
	}
	return offsets
}()

// String возвращает координату в виде (x,y,z)
func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// DistanceTo возвращает евклидово расстояние до другой координаты
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	dz := float64(v.Z - other.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Neighbours возвращает все 26 соседних координат без проверки границ мира.
func (v Vec3) Neighbours() []Vec3 {
	result := make([]Vec3, 0, len(neighbourOffsets))
	for _, off := range neighbourOffsets {
		result = append(result, v.Add(off))
	}
	return result
}

// IsNeighbour сообщает, является ли other одним из 26 соседей v
func (v Vec3) IsNeighbour(other Vec3) bool {
	return v != other && v.IsAdjacentOrSame(other)
}

// IsAdjacentOrSame сообщает, совпадает ли other с v или соседствует с ним
func (v Vec3) IsAdjacentOrSame(other Vec3) bool {
	d := v.Sub(other)
	return abs(d.X) <= 1 && abs(d.Y) <= 1 && abs(d.Z) <= 1
}

// IsUnitStep проверяет, что каждая компонента лежит в {-1, 0, 1} и вектор ненулевой
func (v Vec3) IsUnitStep() bool {
	return v != (Vec3{}) && v.IsAdjacentOrSame(Vec3{})
}

// Below возвращает координату непосредственно под v
func (v Vec3) Below() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z - 1}
}

// Center возвращает центр кубика в непрерывных координатах
func (v Vec3) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X) + 0.5, float64(v.Y) + 0.5, float64(v.Z) + 0.5}
}

// FromPosition возвращает кубик, содержащий непрерывную позицию (floor по каждой оси)
func FromPosition(p mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(p.X())),
		Y: int(math.Floor(p.Y())),
		Z: int(math.Floor(p.Z())),
	}
}

// Distance вычисляет расстояние между двумя непрерывными позициями
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
