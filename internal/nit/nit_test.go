package nit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MinimalAttributes(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	ones := Attributes{Weight: 1, Strength: 1, Agility: 1, Toughness: 1}

	enit, err := New(w, Enit{}, "Ones", vec.Vec3{X: 1, Y: 1, Z: 1}, ones, &scriptedRandom{})
	require.NoError(t, err)
	assert.Equal(t, 2, enit.MaxHitPoints(), "У энита максимум = вес + сила")
	assert.Equal(t, 2, enit.MaxStaminaPoints())
	assert.Equal(t, 2, enit.HitPoints())
	assert.Equal(t, 2, enit.StaminaPoints())

	unit, err := NewUnit(w, "Ones", vec.Vec3{X: 1, Y: 1, Z: 0}, ones, &scriptedRandom{})
	require.NoError(t, err)
	assert.Equal(t, 1, unit.MaxHitPoints(), "У юнита максимум = ceil(200*w/100*t/100)")
	assert.Equal(t, 1, unit.HitPoints())
}

func TestNew_InitialState(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n, err := NewEnit(w, vec.Vec3{X: 2, Y: 3, Z: 4}, defaultAttrs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.True(t, IsValidName(n.Name()), "Сгенерированное имя %q должно быть допустимым", n.Name())
	assert.Equal(t, StateEmpty, n.State())
	assert.Equal(t, vec.Vec3{X: 2, Y: 3, Z: 4}.Center(), n.Position())
	assert.InDelta(t, math.Pi/2, n.Orientation(), 1e-12)
	assert.True(t, n.IsIdle())
	assert.False(t, n.DefaultBehaviour())
	assert.Equal(t, 100, n.MaxHitPoints())
}

func TestNew_Rejects(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	w.set(vec.Vec3{X: 1, Y: 1, Z: 1}, block.RockBlockID)
	rng := &scriptedRandom{}

	_, err := NewUnit(w, "lowercase", vec.Vec3{}, defaultAttrs, rng)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewUnit(w, "A", vec.Vec3{}, defaultAttrs, rng)
	assert.ErrorIs(t, err, ErrInvalidName, "Имя короче двух символов")

	_, err = NewUnit(w, "Bob", vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, rng)
	assert.ErrorIs(t, err, ErrInvalidPosition, "Нельзя стоять в скале")

	_, err = NewUnit(w, "Bob", vec.Vec3{X: 9, Y: 0, Z: 0}, defaultAttrs, rng)
	assert.ErrorIs(t, err, ErrInvalidPosition, "Вне мира")

	_, err = NewUnit(w, "Bob", vec.Vec3{X: 3, Y: 3, Z: 3}, defaultAttrs, rng)
	assert.ErrorIs(t, err, ErrInvalidPosition, "Юнит не может висеть в воздухе")

	_, err = NewUnit(w, "Bob", vec.Vec3{}, Attributes{Weight: 10, Strength: 50, Agility: 50, Toughness: 50}, rng)
	assert.ErrorIs(t, err, ErrInvalidAttribute, "Вес меньше (сила+ловкость)/2")

	_, err = NewUnit(w, "Bob", vec.Vec3{}, Attributes{Weight: 201, Strength: 50, Agility: 50, Toughness: 50}, rng)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestSetters_RejectAndKeepValue(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	assert.ErrorIs(t, n.SetWeight(0), ErrInvalidAttribute)
	assert.ErrorIs(t, n.SetWeight(40), ErrInvalidAttribute, "Вес нарушил бы инвариант")
	assert.Equal(t, 50, n.Weight())

	assert.ErrorIs(t, n.SetStrength(201), ErrInvalidAttribute)
	assert.ErrorIs(t, n.SetStrength(100), ErrInvalidAttribute, "Сила нарушила бы инвариант веса")
	assert.Equal(t, 50, n.Strength())

	assert.ErrorIs(t, n.SetHitPoints(101), ErrInvalidAttribute)
	assert.ErrorIs(t, n.SetName("x"), ErrInvalidName)
	assert.Equal(t, "Tester", n.Name())

	require.NoError(t, n.SetName(`Ol' "Grim" Bob`))
	require.NoError(t, n.SetToughness(20))
	assert.Equal(t, 100, n.HitPoints(), "Максимум энита не зависит от выносливости")

	require.NoError(t, n.SetStrength(10))
	assert.Equal(t, 60, n.MaxHitPoints())
	assert.Equal(t, 60, n.HitPoints(), "Здоровье урезается до нового максимума")
}

func TestSetHitPoints_ZeroTerminates(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	listener := &recordingListener{}
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})
	n.SetListener(listener)

	faction := NewFaction("Red")
	require.NoError(t, faction.Add(n))

	require.NoError(t, n.SetHitPoints(0))
	assert.True(t, n.IsTerminated())
	assert.Empty(t, w.Nits(), "Мёртвый нит удалён из мира")
	assert.Equal(t, 0, faction.Size(), "Мёртвый нит покинул фракцию")
	assert.Equal(t, []string{"Tester"}, listener.deaths)
	assert.ErrorIs(t, n.AdvanceTime(0.1), ErrTerminated)
	assert.ErrorIs(t, n.MoveTo(vec.Vec3{}), ErrTerminated)
}

func TestAdvanceTime_RejectsInvalidStep(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	for _, dt := range []float64{-0.01, 0.21, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, n.AdvanceTime(dt), ErrInvalidTime, "dt=%v", dt)
	}
	assert.NoError(t, n.AdvanceTime(0))
	assert.NoError(t, n.AdvanceTime(MaxTimeStep))
}

func TestAdvanceTime_ForcedRest(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	ticks := tickUntil(t, n, 0.2, 1000, n.IsResting)
	assert.InDelta(t, 900, ticks, 1, "Отдых начинается через 180 секунд")
	assert.Equal(t, StateRestingInitial, n.State())

	require.NoError(t, n.AdvanceTime(0.2))
	assert.Equal(t, StateEmpty, n.State(), "Всё восстановлено, отдыхать нечего")
}

// Инварианты держатся на протяжении долгой случайной симуляции
func TestInvariants_RandomSimulation(t *testing.T) {
	w := newTestWorld(12, 12, 4)
	for x := 0; x < 12; x += 3 {
		w.set(vec.Vec3{X: x, Y: 5, Z: 0}, block.TreeBlockID)
		w.set(vec.Vec3{X: 5, Y: x, Z: 1}, block.RockBlockID)
	}

	red, blue := NewFaction("Red"), NewFaction("Blue")
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 8; i++ {
		cube := vec.Vec3{X: i, Y: i % 3, Z: 0}
		if i%2 == 1 {
			cube.Y = 11 - cube.Y
		}
		n := spawn(t, w, cube, RandomAttributes(rng), rng)
		n.StartDefaultBehaviour()
		if i%2 == 0 {
			require.NoError(t, red.Add(n))
		} else {
			require.NoError(t, blue.Add(n))
		}
	}

	for tick := 0; tick < 1500; tick++ {
		for _, n := range w.Nits() {
			if n.IsTerminated() {
				continue
			}
			require.NoError(t, n.AdvanceTime(0.1))
			assertInvariants(t, w, n)
		}
	}
}

func assertInvariants(t *testing.T, w *testWorld, n *Nit) {
	t.Helper()
	if n.IsTerminated() {
		return
	}
	require.True(t, n.HitPoints() >= 0 && n.HitPoints() <= n.MaxHitPoints(), "HP %d вне [0,%d]", n.HitPoints(), n.MaxHitPoints())
	require.True(t, n.StaminaPoints() >= 0 && n.StaminaPoints() <= n.MaxStaminaPoints())
	require.GreaterOrEqual(t, 2*n.Weight(), n.Strength()+n.Agility())
	for _, v := range []int{n.Weight(), n.Strength(), n.Agility(), n.Toughness()} {
		require.True(t, validAttribute(v))
	}
	require.True(t, n.Orientation() >= -math.Pi && n.Orientation() <= math.Pi)
	require.True(t, w.IsPassable(n.Cube()), "Нит %s в непроходимом кубике %v", n.Name(), n.Cube())
	require.NotEqual(t, StateFalling, n.State())
}
