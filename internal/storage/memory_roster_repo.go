package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRosterRepo реализует RosterRepo в памяти.
// Используется по умолчанию и в тестах.
// ВНИМАНИЕ: Данные теряются при перезапуске!
type MemoryRosterRepo struct {
	mu   sync.RWMutex
	data map[uint64]Record
}

// NewMemoryRosterRepo создает новый журнал в памяти.
func NewMemoryRosterRepo() *MemoryRosterRepo {
	return &MemoryRosterRepo{
		data: make(map[uint64]Record),
	}
}

// Save сохраняет запись в памяти.
func (r *MemoryRosterRepo) Save(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[rec.ID] = rec
	return nil
}

// Load загружает запись из памяти.
func (r *MemoryRosterRepo) Load(ctx context.Context, id uint64) (Record, bool, error) {
	if id == 0 {
		return Record{}, false, fmt.Errorf("недействительный ID: %d", id)
	}
	if err := checkContext(ctx); err != nil {
		return Record{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.data[id]
	return rec, exists, nil
}

// Delete удаляет запись из памяти.
func (r *MemoryRosterRepo) Delete(ctx context.Context, id uint64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(r.data, id)
	return nil
}

// BatchSave сохраняет несколько записей. Если хотя бы одна запись
// некорректна, не сохраняется ни одна.
func (r *MemoryRosterRepo) BatchSave(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil // Нечего сохранять
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		r.data[rec.ID] = rec
	}
	return nil
}

// List возвращает копии всех записей по возрастанию ID
func (r *MemoryRosterRepo) List(ctx context.Context) ([]Record, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Record, 0, len(r.data))
	for _, rec := range r.data {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Count возвращает количество записей (для отладки).
func (r *MemoryRosterRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Close ничего не делает: памяти освобождать нечего
func (r *MemoryRosterRepo) Close() error {
	return nil
}
