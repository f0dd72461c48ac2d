package nit

import (
	"testing"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTo_OwnCube(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	require.NoError(t, n.MoveTo(n.Cube()))
	assert.True(t, n.IsMoving())

	require.NoError(t, n.AdvanceTime(0.1))
	_, reached := n.LongTermDestination()
	assert.True(t, reached)
	assert.Equal(t, StateEmpty, n.State())
	assert.Equal(t, 1, n.Experience(), "Прибытие приносит одно очко опыта")
	assert.Equal(t, vec.Vec3{X: 1, Y: 1, Z: 1}.Center(), n.Position())
}

func TestMoveTo_AdjacentStep(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})
	target := vec.Vec3{X: 2, Y: 1, Z: 1}

	require.NoError(t, n.MoveToAdjacent(1, 0, 0))
	assert.True(t, n.IsMoving())
	assert.Equal(t, target, n.ShortTermDestination())
	assert.InDelta(t, 1.5, n.CurrentSpeed(), 1e-9, "(50+50)/(2*50)*1.5")

	require.NoError(t, n.AdvanceTime(0.2))
	assert.InDelta(t, 1.5, n.Velocity().Len(), 1e-9)
	assert.InDelta(t, 0, n.Orientation(), 1e-9, "Движение вдоль +X")

	ticks := tickUntil(t, n, 0.2, 10, func() bool { return !n.IsMoving() })
	assert.Equal(t, 3, ticks)
	assert.Equal(t, target.Center(), n.Position(), "Позиция совпадает с центром кубика")
	assert.Equal(t, 0.0, n.Velocity().Len())
	assert.Equal(t, 0.0, n.CurrentSpeed())
}

func TestMoveToAdjacent_RejectsNonUnitStep(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	assert.ErrorIs(t, n.MoveToAdjacent(2, 0, 0), ErrInvalidPosition)
	assert.ErrorIs(t, n.MoveToAdjacent(0, 0, 0), ErrInvalidPosition)
	assert.ErrorIs(t, n.MoveTo(vec.Vec3{X: -1}), ErrInvalidPosition)
}

func TestCurrentSpeed_Vertical(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	require.NoError(t, n.MoveToAdjacent(0, 0, 1))
	assert.InDelta(t, 0.75, n.CurrentSpeed(), 1e-9, "Подъём замедляет вдвое")

	n.abandonJourney()
	require.NoError(t, n.MoveToAdjacent(1, 0, -1))
	assert.InDelta(t, 1.8, n.CurrentSpeed(), 1e-9, "Спуск ускоряет в 1.2 раза")
}

func TestMoveTo_LongJourney(t *testing.T) {
	w := newTestWorld(10, 3, 3)
	n := spawn(t, w, vec.Vec3{}, defaultAttrs, &scriptedRandom{})
	dest := vec.Vec3{X: 6, Y: 2, Z: 1}

	require.NoError(t, n.MoveTo(dest))
	tickUntil(t, n, 0.2, 200, n.IsIdle)

	assert.Equal(t, dest, n.Cube())
	assert.Equal(t, dest.Center(), n.Position())
	assert.Equal(t, 6, n.Experience(), "По очку опыта за каждый шаг")
}

func TestSprinting(t *testing.T) {
	w := newTestWorld(10, 3, 3)
	n := spawn(t, w, vec.Vec3{}, defaultAttrs, &scriptedRandom{})

	n.StartSprinting()
	assert.False(t, n.IsSprinting(), "Спринт только во время движения")

	require.NoError(t, n.MoveTo(vec.Vec3{X: 8}))
	n.StartSprinting()
	assert.True(t, n.IsSprinting())
	assert.InDelta(t, 3.0, n.BaseSpeed(), 1e-9)

	stamina := n.StaminaPoints()
	n.updateSprint(0.5)
	n.updateSprint(0.5)
	assert.Equal(t, stamina-1, n.StaminaPoints(), "Секунда спринта стоит одно очко стамины")

	require.NoError(t, n.SetStaminaPoints(1))
	n.updateSprint(1.0)
	assert.Equal(t, 0, n.StaminaPoints())
	assert.False(t, n.IsSprinting(), "Спринт прекращается при нулевой стамине")

	n.StopSprinting()
	assert.InDelta(t, 1.5, n.BaseSpeed(), 1e-9)
}

func TestSprinting_CancelledOnArrival(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})

	require.NoError(t, n.MoveToAdjacent(1, 1, 0))
	n.StartSprinting()
	tickUntil(t, n, 0.2, 10, n.IsIdle)
	assert.False(t, n.IsSprinting())
}

func TestSprinting_DefaultBehaviourChance(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	rng := &scriptedRandom{floats: []float64{0.05}}
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, rng)
	n.StartDefaultBehaviour()

	require.NoError(t, n.MoveToAdjacent(1, 0, 0))
	require.NoError(t, n.AdvanceTime(0.01))
	assert.True(t, n.IsSprinting())
}

func TestBaseSpeed_CarriedWeight(t *testing.T) {
	w := newTestWorld(5, 5, 5)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})
	boulder := newBoulder(t, 50)
	n.carried = boulder

	assert.Equal(t, 100, n.TotalWeight())
	assert.InDelta(t, 0.75, n.BaseSpeed(), 1e-9)
}
