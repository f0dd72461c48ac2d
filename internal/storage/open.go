package storage

import (
	"context"
	"fmt"
)

// Бэкенды журнала состава
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Options выбирает и настраивает бэкенд
type Options struct {
	Backend   string
	Path      string // каталог BadgerDB
	RedisAddr string
}

// Open создаёт журнал выбранного бэкенда. Пустой бэкенд — память.
func Open(ctx context.Context, opts Options) (RosterRepo, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryRosterRepo(), nil
	case BackendBadger:
		return NewBadgerRosterRepo(opts.Path)
	case BackendRedis:
		cfg := DefaultRedisConfig()
		if opts.RedisAddr != "" {
			cfg.Addr = opts.RedisAddr
		}
		return NewRedisRosterRepo(ctx, cfg)
	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %q", opts.Backend)
	}
}
