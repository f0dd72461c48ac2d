package observability

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSimMetrics_Listener(t *testing.T) {
	m, err := NewSimMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	w, err := world.New(vec.Vec3{X: 5, Y: 5, Z: 2}, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	w.SetListener(m)
	a, err := w.SpawnNit(nit.Enit{}, "", nil)
	require.NoError(t, err)

	m.AttackResolved(a, a, nit.OutcomeHit)
	m.AttackResolved(a, a, nit.OutcomeHit)
	m.AttackResolved(a, a, nit.OutcomeDodged)
	m.SkillIncreased(a, nit.AttrStrength)
	m.PathFailed(a, vec.Vec3{})
	require.NoError(t, a.SetHitPoints(0))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attacks.WithLabelValues(nit.OutcomeHit.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attacks.WithLabelValues(nit.OutcomeDodged.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skills.WithLabelValues(nit.AttrStrength.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pathFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deaths.WithLabelValues("enit")))
}

func TestSimMetrics_ObserveTick(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewSimMetrics(reg)
	require.NoError(t, err)

	m.ObserveTick(WorldSnapshot{Tick: 42, Nits: 7, Factions: 3, Items: 2}, 3*time.Millisecond)

	assert.Equal(t, 42.0, testutil.ToFloat64(m.tick))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.nits))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.factions))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.items))
	assert.Equal(t, 1, testutil.CollectAndCount(m.tickDuration))

	_, err = NewSimMetrics(reg)
	assert.Error(t, err, "Повторная регистрация отклоняется")
}

func TestProcessMetrics_Sample(t *testing.T) {
	pm, err := NewProcessMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	require.NoError(t, pm.Sample())
	assert.Greater(t, testutil.ToFloat64(pm.goroutines), 0.0)
	assert.Greater(t, testutil.ToFloat64(pm.heapBytes), 0.0)
	assert.Greater(t, testutil.ToFloat64(pm.rssBytes), 0.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(pm.uptime), 0.0)

	pm.StartTime = time.Now().Add(-(26*time.Hour + 3*time.Minute))
	assert.Equal(t, "1д 2ч 3м 0с", pm.GetUptime())
	pm.StartTime = time.Now().Add(-5 * time.Second)
	assert.Equal(t, "5с", pm.GetUptime())
}

func TestInstallProvider_TracesWorldSteps(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	settings := TraceSettings{ServiceName: "nitsim-test", SampleRatio: 1, Seed: 42, WorldSize: [3]int{3, 3, 3}}
	shutdown, err := installProvider(context.Background(), settings, sdktrace.WithSpanProcessor(sr))
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	// Мир берёт трассировщик глобального провайдера при создании
	w, err := world.New(vec.Vec3{X: 3, Y: 3, Z: 3}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, w.Step(context.Background(), 0.1))
	require.Error(t, w.Step(context.Background(), 1))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "world.Step", spans[0].Name())
	assert.Equal(t, "nitsim-test", resourceAttr(spans[0], "service.name").AsString())
	assert.Equal(t, ServiceNamespace, resourceAttr(spans[0], "service.namespace").AsString())
	assert.Equal(t, int64(42), resourceAttr(spans[0], "nitsim.seed").AsInt64())
	assert.Equal(t, []int64{3, 3, 3}, resourceAttr(spans[0], "nitsim.world.size").AsInt64Slice())
	assert.Len(t, spans[1].Events(), 1, "Ошибка шага записывается в спан")
}

func TestInstallProvider_ZeroRatioDropsTicks(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	settings := TraceSettings{ServiceName: "nitsim-test", SampleRatio: 0}
	shutdown, err := installProvider(context.Background(), settings, sdktrace.WithSpanProcessor(sr))
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	w, err := world.New(vec.Vec3{X: 3, Y: 3, Z: 3}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, w.Step(context.Background(), 0.1))

	assert.Empty(t, sr.Ended(), "Несэмплированные тики не записываются")
}

func resourceAttr(s sdktrace.ReadOnlySpan, key attribute.Key) attribute.Value {
	for _, kv := range s.Resource().Attributes() {
		if kv.Key == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}
