package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/vec"
)

var log = logging.GetStorageLogger()

// ErrNotFound: записи с таким ID нет
var ErrNotFound = errors.New("roster record not found")

// Record представляет снимок нита для журнала состава.
// ID назначается миром и не меняется за время жизни нита.
type Record struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Faction       string    `json:"faction"`
	Kind          string    `json:"kind"`
	Cube          vec.Vec3  `json:"cube"`
	State         string    `json:"state"`
	Weight        int       `json:"weight"`
	Strength      int       `json:"strength"`
	Agility       int       `json:"agility"`
	Toughness     int       `json:"toughness"`
	HitPoints     int       `json:"hit_points"`
	StaminaPoints int       `json:"stamina_points"`
	Experience    int       `json:"experience"`
	Tick          uint64    `json:"tick"`
	SavedAt       time.Time `json:"saved_at"`
}

// Validate проверяет запись перед сохранением
func (r Record) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("недействительный ID: %d", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("запись %d без имени", r.ID)
	}
	return nil
}

// RosterRepo определяет интерфейс журнала состава мира.
type RosterRepo interface {
	// Save сохраняет запись одного нита
	Save(ctx context.Context, r Record) error

	// Load загружает запись; bool = false, если записи нет
	Load(ctx context.Context, id uint64) (Record, bool, error)

	// Delete удаляет запись (например, после гибели нита)
	Delete(ctx context.Context, id uint64) error

	// BatchSave сохраняет записи нескольких нитов одновременно (для периодического сброса)
	BatchSave(ctx context.Context, records []Record) error

	// List возвращает все записи, упорядоченные по ID
	List(ctx context.Context) ([]Record, error)

	// Close освобождает ресурсы хранилища
	Close() error
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
