package nit

import (
	"errors"
	"testing"

	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
	_ "github.com/annel0/nitworld/internal/world/block/implementations"
	"github.com/stretchr/testify/require"
)

// testWorld представляет простой мир для тестов движка, по умолчанию всё воздух
type testWorld struct {
	size      vec.Vec3
	blocks    map[vec.Vec3]block.BlockID
	items     map[vec.Vec3][]*item.Item
	nits      []*Nit
	collapsed []vec.Vec3
}

func newTestWorld(x, y, z int) *testWorld {
	return &testWorld{
		size:   vec.Vec3{X: x, Y: y, Z: z},
		blocks: make(map[vec.Vec3]block.BlockID),
		items:  make(map[vec.Vec3][]*item.Item),
	}
}

func (w *testWorld) set(pos vec.Vec3, id block.BlockID) { w.blocks[pos] = id }

func (w *testWorld) BlockAt(pos vec.Vec3) block.BlockID { return w.blocks[pos] }

func (w *testWorld) InBounds(pos vec.Vec3) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
		pos.X < w.size.X && pos.Y < w.size.Y && pos.Z < w.size.Z
}

func (w *testWorld) IsAboveSolid(pos vec.Vec3) bool {
	return pos.Z == 0 || w.IsSolid(pos.Below())
}

func (w *testWorld) Size() vec.Vec3 { return w.size }

func (w *testWorld) IsPassable(pos vec.Vec3) bool {
	return w.InBounds(pos) && block.IsPassable(w.BlockAt(pos))
}

func (w *testWorld) IsSolid(pos vec.Vec3) bool {
	return w.InBounds(pos) && block.IsSolid(w.BlockAt(pos))
}

func (w *testWorld) Neighbours(pos vec.Vec3) []vec.Vec3 {
	var out []vec.Vec3
	for _, nb := range pos.Neighbours() {
		if w.InBounds(nb) {
			out = append(out, nb)
		}
	}
	return out
}

func (w *testWorld) IsNeighbouringSolid(pos vec.Vec3) bool {
	for _, nb := range w.Neighbours(pos) {
		if w.IsSolid(nb) {
			return true
		}
	}
	return false
}

func (w *testWorld) Collapse(pos vec.Vec3) error {
	if !w.IsSolid(pos) {
		return errors.New("not solid")
	}
	w.blocks[pos] = block.AirBlockID
	w.collapsed = append(w.collapsed, pos)
	return nil
}

func (w *testWorld) AddItem(it *item.Item, pos vec.Vec3) error {
	if err := it.Place(w, pos); err != nil {
		return err
	}
	w.items[pos] = append(w.items[pos], it)
	return nil
}

func (w *testWorld) RemoveItem(it *item.Item) {
	pos := it.Cube()
	list := w.items[pos]
	for i, other := range list {
		if other == it {
			w.items[pos] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (w *testWorld) ItemsAt(pos vec.Vec3) []*item.Item { return w.items[pos] }

func (w *testWorld) Nits() []*Nit {
	out := make([]*Nit, len(w.nits))
	copy(out, w.nits)
	return out
}

func (w *testWorld) RemoveNit(n *Nit) {
	for i, other := range w.nits {
		if other == n {
			w.nits = append(w.nits[:i], w.nits[i+1:]...)
			return
		}
	}
}

// scriptedRandom выдаёт заранее заданные значения, затем значения по умолчанию.
// По умолчанию Float64 = 0.99: ни спринта, ни уклонения, ни блока.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// recordingListener запоминает события движка
type recordingListener struct {
	attacks    []Outcome
	skills     []Attribute
	pathFailed []vec.Vec3
	deaths     []string
}

func (l *recordingListener) AttackResolved(attacker, defender *Nit, outcome Outcome) {
	l.attacks = append(l.attacks, outcome)
}

func (l *recordingListener) SkillIncreased(n *Nit, attr Attribute) {
	l.skills = append(l.skills, attr)
}

func (l *recordingListener) PathFailed(n *Nit, destination vec.Vec3) {
	l.pathFailed = append(l.pathFailed, destination)
}

func (l *recordingListener) Died(n *Nit) {
	l.deaths = append(l.deaths, n.Name())
}

var defaultAttrs = Attributes{Weight: 50, Strength: 50, Agility: 50, Toughness: 50}

// spawn создаёт энита и регистрирует его в тестовом мире
func spawn(t *testing.T, w *testWorld, cube vec.Vec3, attrs Attributes, rng Random) *Nit {
	t.Helper()
	n, err := New(w, Enit{}, "Tester", cube, attrs, rng)
	require.NoError(t, err)
	w.nits = append(w.nits, n)
	return n
}

// tickUntil продвигает нита, пока cond не выполнится, не более limit тиков
func tickUntil(t *testing.T, n *Nit, dt float64, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		require.NoError(t, n.AdvanceTime(dt))
		if cond() {
			return i
		}
	}
	t.Fatalf("условие не выполнено за %d тиков", limit)
	return 0
}
