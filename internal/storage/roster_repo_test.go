package storage

import (
	"context"
	"os"
	"testing"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id uint64, name string) Record {
	return Record{
		ID:        id,
		Name:      name,
		Faction:   "Red",
		Kind:      "unit",
		Cube:      vec.Vec3{X: 10, Y: 20, Z: 1},
		State:     "EMPTY",
		Weight:    50,
		Strength:  40,
		Agility:   40,
		Toughness: 60,
		HitPoints: 60,
	}
}

// testRosterRepo прогоняет общий сценарий на любой реализации
func testRosterRepo(t *testing.T, repo RosterRepo) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		expected := sampleRecord(123, "Alice")

		require.NoError(t, repo.Save(ctx, expected), "Ошибка сохранения записи")

		actual, found, err := repo.Load(ctx, 123)
		require.NoError(t, err, "Ошибка загрузки записи")
		require.True(t, found, "Запись не найдена")
		assert.Equal(t, expected.Name, actual.Name)
		assert.Equal(t, expected.Cube, actual.Cube)
		assert.Equal(t, expected.Toughness, actual.Toughness)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		rec, found, err := repo.Load(ctx, 999)
		require.NoError(t, err)
		assert.False(t, found, "Запись найдена для несуществующего нита")
		assert.Equal(t, Record{}, rec)
	})

	t.Run("Update Record", func(t *testing.T) {
		rec := sampleRecord(456, "Bob")
		require.NoError(t, repo.Save(ctx, rec))

		rec.Cube = vec.Vec3{X: 3, Y: 4, Z: 0}
		rec.Experience = 42
		require.NoError(t, repo.Save(ctx, rec))

		actual, found, err := repo.Load(ctx, 456)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, rec.Cube, actual.Cube)
		assert.Equal(t, 42, actual.Experience)
	})

	t.Run("Batch Save and List", func(t *testing.T) {
		batch := []Record{sampleRecord(1001, "Carl"), sampleRecord(1000, "Dora"), sampleRecord(1002, "Emil")}
		require.NoError(t, repo.BatchSave(ctx, batch))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		var ids []uint64
		for _, rec := range list {
			ids = append(ids, rec.ID)
		}
		assert.Equal(t, []uint64{123, 456, 1000, 1001, 1002}, ids, "Записи упорядочены по ID")
	})

	t.Run("Invalid Batch", func(t *testing.T) {
		err := repo.BatchSave(ctx, []Record{sampleRecord(2000, "Fred"), {ID: 0, Name: "Zero"}})
		assert.Error(t, err)

		_, found, err := repo.Load(ctx, 2000)
		require.NoError(t, err)
		assert.False(t, found, "Некорректный батч не сохраняется частично")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 123))
		_, found, err := repo.Load(ctx, 123)
		require.NoError(t, err)
		assert.False(t, found)

		assert.ErrorIs(t, repo.Delete(ctx, 123), ErrNotFound)
	})
}

func TestMemoryRosterRepo(t *testing.T) {
	repo := NewMemoryRosterRepo()
	defer repo.Close()
	testRosterRepo(t, repo)

	t.Run("Cancelled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, repo.Save(ctx, sampleRecord(7, "Gus")), context.Canceled)
	})
}

func TestBadgerRosterRepo(t *testing.T) {
	repo, err := NewBadgerRosterRepo(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()
	testRosterRepo(t, repo)
}

func TestBadgerRosterRepo_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewBadgerRosterRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sampleRecord(5, "Hana")))
	require.NoError(t, repo.Close())

	_, _, err = repo.Load(ctx, 5)
	assert.Error(t, err, "Закрытое хранилище не отвечает")

	repo, err = NewBadgerRosterRepo(dir)
	require.NoError(t, err)
	defer repo.Close()

	rec, found, err := repo.Load(ctx, 5)
	require.NoError(t, err)
	require.True(t, found, "Запись переживает переоткрытие")
	assert.Equal(t, "Hana", rec.Name)
}

// Для запуска нужен Redis: NITSIM_TEST_REDIS=localhost:6379
func TestRedisRosterRepo(t *testing.T) {
	addr := os.Getenv("NITSIM_TEST_REDIS")
	if addr == "" {
		t.Skip("NITSIM_TEST_REDIS не задан")
	}

	cfg := DefaultRedisConfig()
	cfg.Addr = addr
	cfg.KeyPrefix = "nitsim:test:" + t.Name() + ":"
	repo, err := NewRedisRosterRepo(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	testRosterRepo(t, repo)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryRosterRepo{}, repo)

	repo, err = Open(ctx, Options{Backend: BackendBadger, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &BadgerRosterRepo{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open(ctx, Options{Backend: "mysql"})
	assert.Error(t, err)
}
