package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRosterRepo хранит журнал состава в Redis: одна JSON-строка на нита
type RedisRosterRepo struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей (0 — бессрочно)
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "nitsim:roster:",
		TTL:       0,
	}
}

// NewRedisRosterRepo подключается к Redis и проверяет соединение
func NewRedisRosterRepo(ctx context.Context, config *RedisConfig) (*RedisRosterRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("журнал состава подключён к Redis %s", config.Addr)
	return &RedisRosterRepo{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (r *RedisRosterRepo) key(id uint64) string {
	return r.keyPrefix + strconv.FormatUint(id, 10)
}

// Save сохраняет запись
func (r *RedisRosterRepo) Save(ctx context.Context, rec Record) error {
	return r.BatchSave(ctx, []Record{rec})
}

// Load загружает запись
func (r *RedisRosterRepo) Load(ctx context.Context, id uint64) (Record, bool, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	} else if err != nil {
		return Record{}, false, fmt.Errorf("failed to get record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, true, nil
}

// Delete удаляет запись
func (r *RedisRosterRepo) Delete(ctx context.Context, id uint64) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// BatchSave записывает все записи одним пайплайном
func (r *RedisRosterRepo) BatchSave(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %d: %w", rec.ID, err)
		}
		pipe.Set(ctx, r.key(rec.ID), data, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// List собирает все записи через SCAN
func (r *RedisRosterRepo) List(ctx context.Context) ([]Record, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	if len(keys) == 0 {
		return []Record{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	result := make([]Record, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // ключ истёк между SCAN и MGET
		}
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			log.Warn("пропускаем повреждённую запись %s: %v", strings.TrimPrefix(keys[i], r.keyPrefix), err)
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Close закрывает соединение с Redis
func (r *RedisRosterRepo) Close() error {
	return r.client.Close()
}
