package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/annel0/nitworld/internal/config"
	"github.com/annel0/nitworld/internal/eventbus"
	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/observability"
	"github.com/annel0/nitworld/internal/storage"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

var log = logging.GetComponentLogger("app")

// processSampleEvery: раз во сколько тиков обновлять метрики процесса
const processSampleEvery = 50

var factionNames = []string{"Amber", "Cobalt", "Moss", "Ash", "Coral"}

var unitNames = []string{
	"Ada", "Brom", "Cyra", "Dorn", "Elsa", "Finn", "Greta", "Hale",
	"Ivo", "Juno", "Kael", "Lira", "Moro", "Nell", "Orin", "Pim",
}

// Simulation собирает мир и его окружение: журнал состава, шину событий и метрики.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	World     *world.World
	Roster    storage.RosterRepo
	Bus       eventbus.EventBus
	Publisher *eventbus.Publisher
	Registry  *prometheus.Registry
	Metrics   *observability.SimMetrics
	Process   *observability.ProcessMetrics
	exporter  *eventbus.MetricsExporter
}

// New создаёт симуляцию по конфигурации: генерирует мир и подключает
// хранилище, шину и метрики. Ниты появляются в Populate.
func New(ctx context.Context, cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Sim.Seed)),
		Registry: prometheus.NewRegistry(),
	}

	size := vec.Vec3{X: cfg.World.SizeX, Y: cfg.World.SizeY, Z: cfg.World.SizeZ}
	w, err := world.New(size, s.rng)
	if err != nil {
		return nil, err
	}
	gen := world.NewWorldGenerator(cfg.Sim.Seed)
	gen.NoiseScale = cfg.World.NoiseScale
	gen.TreeDensity = cfg.World.TreeDensity
	gen.WorkshopCount = cfg.World.WorkshopCount
	gen.ItemCount = cfg.World.ItemCount
	gen.Generate(w)
	s.World = w

	s.Roster, err = storage.Open(ctx, storage.Options{
		Backend:   cfg.Storage.Backend,
		Path:      cfg.Storage.Path,
		RedisAddr: cfg.Storage.RedisAddr,
	})
	if err != nil {
		return nil, fmt.Errorf("журнал состава: %w", err)
	}
	w.SetRoster(s.Roster, cfg.Storage.FlushEvery)

	if cfg.EventBus.URL == "" {
		s.Bus = eventbus.NewMemoryBus(1024)
	} else {
		retention := time.Duration(cfg.EventBus.Retention) * time.Hour
		s.Bus, err = eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, retention)
		if err != nil {
			s.Roster.Close()
			return nil, fmt.Errorf("шина событий: %w", err)
		}
	}
	if _, err := eventbus.StartLoggingListener(ctx, s.Bus); err != nil {
		s.closeBackends()
		return nil, err
	}
	s.Publisher = eventbus.NewPublisher(s.Bus, w)

	if err := s.registerMetrics(); err != nil {
		s.closeBackends()
		return nil, fmt.Errorf("метрики: %w", err)
	}

	w.SetListener(nit.MultiListener{s.Publisher, s.Metrics})
	return s, nil
}

func (s *Simulation) registerMetrics() error {
	var err error
	if s.Metrics, err = observability.NewSimMetrics(s.Registry); err != nil {
		return err
	}
	if s.Process, err = observability.NewProcessMetrics(s.Registry); err != nil {
		return err
	}
	if s.exporter, err = eventbus.NewMetricsExporter(s.Bus, s.Registry); err != nil {
		return err
	}
	s.exporter.Start(time.Second)
	return nil
}

// Populate создаёт фракции и нитов согласно конфигурации
func (s *Simulation) Populate() error {
	pop := s.cfg.Population
	for i := 0; i < pop.Factions; i++ {
		name := factionNames[i%len(factionNames)]
		f, err := s.World.AddFaction(name)
		if err != nil {
			return err
		}

		for j := 0; j < pop.NitsPerFaction; j++ {
			var kind nit.Kind = nit.Unit{}
			name := unitNames[s.rng.Intn(len(unitNames))]
			if s.rng.Float64() < pop.EnitShare {
				kind, name = nit.Enit{}, ""
			}

			n, err := s.World.SpawnNit(kind, name, f)
			if err != nil {
				return fmt.Errorf("фракция %s: %w", f.Name(), err)
			}
			if pop.DefaultBehaviour {
				n.StartDefaultBehaviour()
			}
		}
	}
	log.Info("население: %d нитов в %d фракциях", len(s.World.Nits()), len(s.World.Factions()))
	return nil
}

// Run крутит тики до cfg.Sim.Ticks (0 — до отмены контекста).
// При tick_rate > 0 тики идут в реальном времени.
func (s *Simulation) Run(ctx context.Context) error {
	dt := s.cfg.Sim.TickDT

	var ticker *time.Ticker
	if s.cfg.Sim.TickRate > 0 {
		ticker = time.NewTicker(time.Second / time.Duration(s.cfg.Sim.TickRate))
		defer ticker.Stop()
	}

	for i := uint64(0); s.cfg.Sim.Ticks == 0 || i < s.cfg.Sim.Ticks; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}

		if err := s.tick(ctx, dt); err != nil {
			return err
		}
	}
	log.Info("симуляция завершена на тике %d", s.World.CurrentTick())
	return nil
}

func (s *Simulation) tick(ctx context.Context, dt float64) error {
	started := time.Now()
	err := s.World.Step(ctx, dt)
	if errors.Is(err, nit.ErrInvalidTime) {
		return err
	}
	// Ошибки отдельных нитов уже залогированы миром

	tick := s.World.CurrentTick()
	nits := len(s.World.Nits())
	s.Metrics.ObserveTick(observability.WorldSnapshot{
		Tick:     tick,
		Nits:     nits,
		Factions: len(s.World.Factions()),
		Items:    len(s.World.Items()),
	}, time.Since(started))
	s.Publisher.TickCompleted(tick, nits)

	if tick%processSampleEvery == 0 {
		if err := s.Process.Sample(); err != nil {
			log.Warn("метрики процесса: %v", err)
		}
	}
	return nil
}

// Close сбрасывает журнал состава и освобождает ресурсы
func (s *Simulation) Close(ctx context.Context) error {
	var errs []error
	if err := s.World.FlushRoster(ctx); err != nil {
		errs = append(errs, err)
	}
	s.exporter.Stop()
	errs = append(errs, s.closeBackends())
	return errors.Join(errs...)
}

func (s *Simulation) closeBackends() error {
	var errs []error
	if s.Bus != nil {
		errs = append(errs, s.Bus.Close())
	}
	if s.Roster != nil {
		errs = append(errs, s.Roster.Close())
	}
	return errors.Join(errs...)
}
