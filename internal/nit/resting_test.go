package nit

import (
	"testing"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRest_Idempotent(t *testing.T) {
	w := newTestWorld(3, 3, 3)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})
	require.NoError(t, n.SetHitPoints(50))

	require.NoError(t, n.Rest())
	assert.Equal(t, StateRestingInitial, n.State())
	require.NoError(t, n.Rest())
	assert.Equal(t, StateRestingInitial, n.State())

	require.NoError(t, n.AdvanceTime(0.1))
	assert.Equal(t, StateRestingHP, n.State())
	require.NoError(t, n.Rest())
	assert.Equal(t, StateRestingHP, n.State(), "Повторный отдых не меняет подсостояние")
}

// Сначала восстанавливается здоровье, потом стамина, никогда одновременно
func TestRest_HitPointsBeforeStamina(t *testing.T) {
	w := newTestWorld(3, 3, 3)
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, defaultAttrs, &scriptedRandom{})
	require.NoError(t, n.SetHitPoints(95))
	require.NoError(t, n.SetStaminaPoints(95))

	require.NoError(t, n.Rest())
	for i := 0; i < 200 && n.IsResting(); i++ {
		require.NoError(t, n.AdvanceTime(0.2))
		if n.HitPoints() < n.MaxHitPoints() {
			assert.Equal(t, 95, n.StaminaPoints(), "Стамина ждёт полного здоровья")
		}
		assert.LessOrEqual(t, n.HitPoints(), n.MaxHitPoints())
		assert.LessOrEqual(t, n.StaminaPoints(), n.MaxStaminaPoints())
	}

	assert.Equal(t, StateEmpty, n.State())
	assert.Equal(t, n.MaxHitPoints(), n.HitPoints())
	assert.Equal(t, n.MaxStaminaPoints(), n.StaminaPoints())
}

func TestRest_Rate(t *testing.T) {
	w := newTestWorld(3, 3, 3)
	attrs := Attributes{Weight: 100, Strength: 100, Agility: 100, Toughness: 80}
	n := spawn(t, w, vec.Vec3{X: 1, Y: 1, Z: 1}, attrs, &scriptedRandom{})
	require.NoError(t, n.SetHitPoints(100))

	require.NoError(t, n.Rest())
	require.NoError(t, n.AdvanceTime(0.1))
	require.Equal(t, StateRestingHP, n.State())

	// 80 / (0.2*200) = 2 очка здоровья в секунду
	for i := 0; i < 25; i++ {
		require.NoError(t, n.AdvanceTime(0.2))
	}
	assert.InDelta(t, 110, n.HitPoints(), 1)
}

func TestRest_InterruptsMovement(t *testing.T) {
	w := newTestWorld(6, 3, 3)
	n := spawn(t, w, vec.Vec3{}, defaultAttrs, &scriptedRandom{})

	require.NoError(t, n.MoveTo(vec.Vec3{X: 5}))
	require.NoError(t, n.Rest())

	_, reached := n.LongTermDestination()
	assert.True(t, reached)
	assert.True(t, n.IsResting())
	assert.Equal(t, 0.0, n.Velocity().Len())
}
