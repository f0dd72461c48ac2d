package world

import (
	"fmt"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/task"
	"github.com/annel0/nitworld/internal/vec"
)

const spawnAttempts = 1000

// Nits возвращает живых нитов в порядке появления
func (w *World) Nits() []*nit.Nit {
	out := make([]*nit.Nit, len(w.nits))
	copy(out, w.nits)
	return out
}

// RemoveNit убирает нита из мира. Вызывается нитом при гибели.
func (w *World) RemoveNit(n *nit.Nit) {
	for i, other := range w.nits {
		if other == n {
			w.nits = append(w.nits[:i], w.nits[i+1:]...)
			break
		}
	}
	// Идентификатор остаётся: слушатели получают Died уже после удаления
	if id, ok := w.ids[n]; ok {
		w.forgetRecord(id)
	}
}

// ID возвращает постоянный идентификатор нита, в том числе погибшего
func (w *World) ID(n *nit.Nit) (uint64, bool) {
	id, ok := w.ids[n]
	return id, ok
}

// Factions возвращает фракции, в которых есть хотя бы один нит
func (w *World) Factions() []*nit.Faction {
	var active []*nit.Faction
	for _, f := range w.factions {
		if f.Size() > 0 {
			active = append(active, f)
		}
	}
	return active
}

// AddFaction создаёт фракцию со своим планировщиком
func (w *World) AddFaction(name string) (*nit.Faction, error) {
	if len(w.factions) >= MaxFactions {
		w.pruneFactions()
	}
	if len(w.factions) >= MaxFactions {
		return nil, fmt.Errorf("%w: %d", ErrTooManyFactions, len(w.factions))
	}
	f := nit.NewFaction(name)
	w.factions = append(w.factions, f)
	w.schedulers[f] = task.NewScheduler(f)
	log.Debug("создана фракция %s", name)
	return f, nil
}

// pruneFactions забывает пустые фракции вместе с их задачами
func (w *World) pruneFactions() {
	kept := w.factions[:0]
	for _, f := range w.factions {
		if f.Size() > 0 {
			kept = append(kept, f)
			continue
		}
		delete(w.schedulers, f)
	}
	w.factions = kept
}

// Scheduler возвращает планировщик фракции
func (w *World) Scheduler(f *nit.Faction) (*task.Scheduler, error) {
	s, ok := w.schedulers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFaction, f.Name())
	}
	return s, nil
}

// AddNit регистрирует созданного нита. Без фракции нит попадает
// в самую маленькую; если фракций нет или все заполнены, создаётся новая.
func (w *World) AddNit(n *nit.Nit, f *nit.Faction) error {
	if len(w.nits) >= MaxNits {
		return fmt.Errorf("%w: %d nits", ErrPopulationFull, len(w.nits))
	}
	if n.World() != nit.World(w) {
		return fmt.Errorf("нит %s создан для другого мира", n.Name())
	}

	if f == nil {
		var err error
		if f, err = w.chooseFaction(); err != nil {
			return err
		}
	} else if _, ok := w.schedulers[f]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFaction, f.Name())
	}
	if err := f.Add(n); err != nil {
		return err
	}

	n.SetListener(w.listener)
	w.nits = append(w.nits, n)
	w.ids[n] = w.nextEntityID
	w.nextEntityID++

	log.Info("нит %s (%s) появился в %v, фракция %s", n.Name(), n.Kind().Name(), n.Cube(), f.Name())
	return nil
}

func (w *World) chooseFaction() (*nit.Faction, error) {
	var smallest *nit.Faction
	for _, f := range w.factions {
		if smallest == nil || f.Size() < smallest.Size() {
			smallest = f
		}
	}
	if smallest != nil && smallest.Size() < nit.MaxFactionMembers {
		return smallest, nil
	}

	w.factionSeq++
	return w.AddFaction(fmt.Sprintf("Faction %d", w.factionSeq))
}

// SpawnNit создаёт нита со случайными атрибутами в случайном кубике.
// Пустое имя допустимо для видов, которые генерируют имена сами.
func (w *World) SpawnNit(kind nit.Kind, name string, f *nit.Faction) (*nit.Nit, error) {
	cube, err := w.RandomSpawnCube(kind)
	if err != nil {
		return nil, err
	}
	n, err := nit.New(w, kind, name, cube, nit.RandomAttributes(w.rng), w.rng)
	if err != nil {
		return nil, err
	}
	if err := w.AddNit(n, f); err != nil {
		return nil, err
	}
	return n, nil
}

// RandomSpawnCube выбирает случайный кубик, где может стоять нит вида kind
func (w *World) RandomSpawnCube(kind nit.Kind) (vec.Vec3, error) {
	size := w.Size()
	for i := 0; i < spawnAttempts; i++ {
		pos := vec.Vec3{X: w.rng.Intn(size.X), Y: w.rng.Intn(size.Y), Z: w.rng.Intn(size.Z)}
		if kind.CanStand(w, pos) {
			return pos, nil
		}
	}
	return vec.Vec3{}, fmt.Errorf("%w for %s", ErrNoSpawnPoint, kind.Name())
}
