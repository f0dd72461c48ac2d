package nit

import (
	"github.com/annel0/nitworld/internal/vec"
	"github.com/elliotchance/orderedmap/v2"
)

// PathNode описывает узел поиска: кубик и его расстояние до цели
type PathNode struct {
	Cube     vec.Vec3
	Distance int
}

// Frontier хранит множество узлов поиска в порядке их обнаружения.
// Порядок нужен, чтобы равные расстояния разрешались детерминированно.
type Frontier struct {
	nodes *orderedmap.OrderedMap[vec.Vec3, int]
}

func newFrontier() *Frontier {
	return &Frontier{nodes: orderedmap.NewOrderedMap[vec.Vec3, int]()}
}

// Distance возвращает записанное расстояние до цели
func (f *Frontier) Distance(cube vec.Vec3) (int, bool) {
	return f.nodes.Get(cube)
}

// Len возвращает число узлов
func (f *Frontier) Len() int {
	return f.nodes.Len()
}

// Nodes возвращает узлы в порядке обнаружения
func (f *Frontier) Nodes() []PathNode {
	result := make([]PathNode, 0, f.nodes.Len())
	for el := f.nodes.Front(); el != nil; el = el.Next() {
		result = append(result, PathNode{Cube: el.Key, Distance: el.Value})
	}
	return result
}

// Planner ищет путь обратным поиском в ширину от цели к текущему кубику.
// Проходимость определяется политикой вида нита.
type Planner struct {
	world         World
	kind          Kind
	maxIterations int

	// iterations: число раскрытий в последнем поиске
	iterations int
}

// NewPlanner создаёт планировщик с лимитом PathIterationCap
func NewPlanner(w World, kind Kind) *Planner {
	return &Planner{world: w, kind: kind, maxIterations: PathIterationCap}
}

// Iterations возвращает число раскрытий узлов в последнем поиске
func (p *Planner) Iterations() int {
	return p.iterations
}

// Search строит поле расстояний от to, пока в него не попадёт from.
// Возвращает false, если from не найден за maxIterations раскрытий
// или граница поиска исчерпана.
func (p *Planner) Search(from, to vec.Vec3) (*Frontier, bool) {
	frontier := newFrontier()
	p.iterations = 0

	if !p.kind.CanStand(p.world, to) {
		return frontier, false
	}
	frontier.nodes.Set(to, 0)

	for el := frontier.nodes.Front(); el != nil; el = el.Next() {
		if _, found := frontier.nodes.Get(from); found {
			return frontier, true
		}
		if p.iterations >= p.maxIterations {
			return frontier, false
		}
		p.iterations++

		next := el.Value + 1
		for _, nb := range p.world.Neighbours(el.Key) {
			if !p.expandable(nb, from) {
				continue
			}
			if d, ok := frontier.nodes.Get(nb); ok && d <= next {
				continue
			}
			frontier.nodes.Set(nb, next)
		}
	}

	_, found := frontier.nodes.Get(from)
	return frontier, found
}

// expandable: может ли поиск пройти через кубик. Текущий кубик нита
// принимается, даже если опора рядом исчезла.
func (p *Planner) expandable(cube, from vec.Vec3) bool {
	if cube == from {
		return p.world.IsPassable(cube)
	}
	return p.kind.CanStand(p.world, cube)
}

// NextStep выбирает соседа from с наименьшим расстоянием до to.
// При равенстве побеждает сосед, встреченный первым.
func (p *Planner) NextStep(from, to vec.Vec3) (vec.Vec3, bool) {
	frontier, ok := p.Search(from, to)
	if !ok {
		return vec.Vec3{}, false
	}
	return descend(p.world, frontier, from)
}

// Path возвращает полный маршрут от from до to (без from, с to).
func (p *Planner) Path(from, to vec.Vec3) ([]vec.Vec3, bool) {
	if from == to {
		return []vec.Vec3{}, true
	}
	frontier, ok := p.Search(from, to)
	if !ok {
		return nil, false
	}

	var path []vec.Vec3
	current := from
	for current != to {
		next, ok := descend(p.world, frontier, current)
		if !ok {
			return nil, false
		}
		path = append(path, next)
		current = next
	}
	return path, true
}

func descend(w World, frontier *Frontier, from vec.Vec3) (vec.Vec3, bool) {
	current, ok := frontier.Distance(from)
	if !ok {
		return vec.Vec3{}, false
	}

	best := vec.Vec3{}
	bestDistance := current
	found := false
	for _, nb := range w.Neighbours(from) {
		d, ok := frontier.Distance(nb)
		if !ok {
			continue
		}
		if d < bestDistance {
			best, bestDistance, found = nb, d, true
		}
	}
	return best, found
}
