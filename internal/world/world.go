package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/storage"
	"github.com/annel0/nitworld/internal/task"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
	_ "github.com/annel0/nitworld/internal/world/block/implementations"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var log = logging.GetWorldLogger()

var (
	ErrNotSolid         = errors.New("block is not solid")
	ErrPopulationFull   = errors.New("world population is full")
	ErrTooManyFactions  = errors.New("too many factions")
	ErrNoSpawnPoint     = errors.New("no free spawn point")
	ErrUnknownFaction   = errors.New("faction does not belong to this world")
	ErrInvalidDimension = errors.New("world dimensions must be positive")
)

const (
	// MaxNits задаёт предел живых нитов в мире
	MaxNits = 100

	// MaxFactions задаёт предел активных фракций
	MaxFactions = 5

	// DebrisChance задаёт вероятность обломков при обрушении
	DebrisChance = 0.25
)

// World представляет мир симуляции: ландшафт, предметы, ниты, фракции и их планировщики.
// Все изменения выполняются последовательно внутри Step.
type World struct {
	*Grid

	rng      *rand.Rand
	listener nit.Listener

	items       []*item.Item
	itemsByCube map[vec.Vec3][]*item.Item

	nits         []*nit.Nit
	ids          map[*nit.Nit]uint64
	nextEntityID uint64

	factions   []*nit.Faction
	factionSeq int
	schedulers map[*nit.Faction]*task.Scheduler

	currentTick uint64
	roster      storage.RosterRepo
	forgotten   []uint64
	flushEvery  uint64
	tracer      trace.Tracer
}

// New создаёт пустой (воздушный) мир заданного размера
func New(size vec.Vec3, rng *rand.Rand) (*World, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimension, size)
	}
	return &World{
		Grid:         NewGrid(size),
		rng:          rng,
		listener:     nit.NopListener{},
		itemsByCube:  make(map[vec.Vec3][]*item.Item),
		ids:          make(map[*nit.Nit]uint64),
		nextEntityID: 1000, // Начинаем с 1000, чтобы ID не путались со счётчиками
		schedulers:   make(map[*nit.Faction]*task.Scheduler),
		tracer:       otel.Tracer("github.com/annel0/nitworld/internal/world"),
	}, nil
}

// Rand возвращает источник случайности мира
func (w *World) Rand() *rand.Rand { return w.rng }

// CurrentTick возвращает номер последнего выполненного тика
func (w *World) CurrentTick() uint64 { return w.currentTick }

// SetListener подключает слушателя ко всем нынешним и будущим нитам
func (w *World) SetListener(l nit.Listener) {
	if l == nil {
		l = nit.NopListener{}
	}
	w.listener = l
	for _, n := range w.nits {
		n.SetListener(l)
	}
}

// SetRoster включает периодический сброс журнала состава каждые every тиков
func (w *World) SetRoster(repo storage.RosterRepo, every uint64) {
	w.roster = repo
	w.flushEvery = every
}

// SetTracer заменяет трассировщик (по умолчанию — глобальный провайдер OTel)
func (w *World) SetTracer(t trace.Tracer) {
	w.tracer = t
}

// Collapse обрушивает твёрдый блок. С вероятностью DebrisChance
// на его месте появляется предмет (бревно или валун).
func (w *World) Collapse(pos vec.Vec3) error {
	if !w.IsSolid(pos) {
		return fmt.Errorf("%w: %v", ErrNotSolid, pos)
	}
	behavior, _ := block.Get(w.BlockAt(pos))
	w.SetBlock(pos, block.AirBlockID)
	log.Debug("блок %s в %v обрушен", behavior.Name(), pos)

	kind, ok := item.FromDebris(behavior.Debris())
	if !ok || w.rng.Float64() >= DebrisChance {
		return nil
	}
	it, err := item.New(kind, item.MinWeight+w.rng.Intn(item.MaxWeight-item.MinWeight+1))
	if err != nil {
		return err
	}
	return w.AddItem(it, pos)
}
