package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Step выполняет один тик мира: планировщики раздают задачи,
// каждый живой нит и каждый предмет продвигаются на dt.
// Ошибка отдельного нита логируется и не останавливает тик;
// все такие ошибки возвращаются вместе.
func (w *World) Step(ctx context.Context, dt float64) error {
	ctx, span := w.tracer.Start(ctx, "world.Step")
	defer span.End()

	if err := nit.ValidateTimeStep(dt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	w.currentTick++
	span.SetAttributes(
		attribute.Int64("world.tick", int64(w.currentTick)),
		attribute.Int("world.nits", len(w.nits)),
	)

	for _, f := range w.factions {
		if s, ok := w.schedulers[f]; ok {
			s.Assign()
		}
	}

	var errs []error
	// Ниты могут погибнуть во время тика, поэтому обходим копию
	for _, n := range w.Nits() {
		if n.IsTerminated() {
			continue
		}
		if err := n.AdvanceTime(dt); err != nil {
			log.Warn("тик %d: нит %s: %v", w.currentTick, n.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}

	w.advanceItems(dt)

	if w.roster != nil && w.flushEvery > 0 && w.currentTick%w.flushEvery == 0 {
		if err := w.FlushRoster(ctx); err != nil {
			log.Error("сброс журнала состава на тике %d: %v", w.currentTick, err)
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nit errors")
	}
	return err
}

// Run выполняет ticks тиков (0 — до отмены контекста)
func (w *World) Run(ctx context.Context, dt float64, ticks uint64) error {
	for i := uint64(0); ticks == 0 || i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Step(ctx, dt); err != nil && errors.Is(err, nit.ErrInvalidTime) {
			return err
		}
	}
	return nil
}

// RosterRecord снимает запись журнала для зарегистрированного нита
func (w *World) RosterRecord(n *nit.Nit) (storage.Record, bool) {
	id, ok := w.ids[n]
	if !ok {
		return storage.Record{}, false
	}
	faction := ""
	if f := n.Faction(); f != nil {
		faction = f.Name()
	}
	return storage.Record{
		ID:            id,
		Name:          n.Name(),
		Faction:       faction,
		Kind:          n.Kind().Name(),
		Cube:          n.Cube(),
		State:         n.State().String(),
		Weight:        n.Weight(),
		Strength:      n.Strength(),
		Agility:       n.Agility(),
		Toughness:     n.Toughness(),
		HitPoints:     n.HitPoints(),
		StaminaPoints: n.StaminaPoints(),
		Experience:    n.Experience(),
		Tick:          w.currentTick,
		SavedAt:       time.Now(),
	}, true
}

// FlushRoster сохраняет записи всех живых нитов и удаляет записи погибших
func (w *World) FlushRoster(ctx context.Context) error {
	if w.roster == nil {
		return nil
	}

	records := make([]storage.Record, 0, len(w.nits))
	for _, n := range w.nits {
		if r, ok := w.RosterRecord(n); ok {
			records = append(records, r)
		}
	}
	if err := w.roster.BatchSave(ctx, records); err != nil {
		return fmt.Errorf("batch save: %w", err)
	}

	for len(w.forgotten) > 0 {
		id := w.forgotten[0]
		// Нит мог погибнуть до первого сброса
		if err := w.roster.Delete(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("delete %d: %w", id, err)
		}
		w.forgotten = w.forgotten[1:]
	}

	log.Debug("журнал состава: сохранено %d записей на тике %d", len(records), w.currentTick)
	return nil
}

// forgetRecord откладывает удаление записи до ближайшего сброса
func (w *World) forgetRecord(id uint64) {
	if w.roster != nil {
		w.forgotten = append(w.forgotten, id)
	}
}
