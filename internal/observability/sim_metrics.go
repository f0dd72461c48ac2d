package observability

import (
	"time"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
)

// SimMetrics собирает Prometheus-метрики симуляции. Реализует nit.Listener,
// поэтому подключается к миру наравне с издателем событий.
type SimMetrics struct {
	attacks      *prometheus.CounterVec
	skills       *prometheus.CounterVec
	deaths       *prometheus.CounterVec
	pathFailures prometheus.Counter

	tick         prometheus.Gauge
	nits         prometheus.Gauge
	factions     prometheus.Gauge
	items        prometheus.Gauge
	tickDuration prometheus.Histogram
}

var _ nit.Listener = (*SimMetrics)(nil)

// WorldSnapshot содержит показатели мира после тика
type WorldSnapshot struct {
	Tick     uint64
	Nits     int
	Factions int
	Items    int
}

// NewSimMetrics создаёт метрики и регистрирует их в reg
func NewSimMetrics(reg prometheus.Registerer) (*SimMetrics, error) {
	m := &SimMetrics{
		attacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitsim",
			Name:      "attacks_total",
			Help:      "Завершённые атаки по исходу.",
		}, []string{"outcome"}),
		skills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitsim",
			Name:      "skill_increases_total",
			Help:      "Повышения атрибутов.",
		}, []string{"attribute"}),
		deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitsim",
			Name:      "deaths_total",
			Help:      "Погибшие ниты по виду.",
		}, []string{"kind"}),
		pathFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nitsim",
			Name:      "path_failures_total",
			Help:      "Цели, до которых не нашёлся путь.",
		}),
		tick: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nitsim",
			Name:      "tick",
			Help:      "Номер последнего тика.",
		}),
		nits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nitsim",
			Name:      "nits_alive",
			Help:      "Живые ниты.",
		}),
		factions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nitsim",
			Name:      "factions_active",
			Help:      "Фракции, в которых есть ниты.",
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nitsim",
			Name:      "items",
			Help:      "Предметы, лежащие в мире.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nitsim",
			Name:      "tick_duration_seconds",
			Help:      "Длительность обработки тика.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	collectors := []prometheus.Collector{
		m.attacks, m.skills, m.deaths, m.pathFailures,
		m.tick, m.nits, m.factions, m.items, m.tickDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *SimMetrics) AttackResolved(attacker, defender *nit.Nit, outcome nit.Outcome) {
	m.attacks.WithLabelValues(outcome.String()).Inc()
}

func (m *SimMetrics) SkillIncreased(n *nit.Nit, attr nit.Attribute) {
	m.skills.WithLabelValues(attr.String()).Inc()
}

func (m *SimMetrics) PathFailed(n *nit.Nit, destination vec.Vec3) {
	m.pathFailures.Inc()
}

func (m *SimMetrics) Died(n *nit.Nit) {
	m.deaths.WithLabelValues(n.Kind().Name()).Inc()
}

// ObserveTick записывает состояние мира и длительность тика
func (m *SimMetrics) ObserveTick(s WorldSnapshot, took time.Duration) {
	m.tick.Set(float64(s.Tick))
	m.nits.Set(float64(s.Nits))
	m.factions.Set(float64(s.Factions))
	m.items.Set(float64(s.Items))
	m.tickDuration.Observe(took.Seconds())
}
