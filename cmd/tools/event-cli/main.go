package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/annel0/nitworld/internal/eventbus"
	"github.com/annel0/nitworld/internal/storage"
)

const timeFormat = "15:04:05"

func main() {
	var (
		command    = flag.String("cmd", "tail", "Command: tail, roster")
		natsURL    = flag.String("nats", "nats://127.0.0.1:4222", "NATS server URL")
		stream     = flag.String("stream", "NITSIM_EVENTS", "JetStream stream name")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		limit      = flag.Int("limit", 100, "Maximum number of events (0 — без ограничения)")
		backend    = flag.String("backend", storage.BackendBadger, "Roster backend: badger, redis")
		path       = flag.String("path", "data/roster", "BadgerDB directory")
		redisAddr  = flag.String("redis", "localhost:6379", "Redis address")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *command {
	case "tail":
		if err := tailEvents(ctx, *natsURL, *stream, parseStringList(*eventTypes), *limit); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}

	case "roster":
		opts := storage.Options{Backend: *backend, Path: *path, RedisAddr: *redisAddr}
		if err := showRoster(ctx, opts); err != nil {
			log.Fatalf("❌ Roster failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, roster")
		os.Exit(1)
	}
}

// tailEvents выводит события симуляции в реальном времени
func tailEvents(ctx context.Context, url, stream string, types []string, limit int) error {
	bus, err := eventbus.NewJetStreamBus(url, stream, 24*time.Hour)
	if err != nil {
		return err
	}
	defer bus.Close()

	fmt.Printf("🎬 Tailing events (limit: %d)\n", limit)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	received := make(chan struct{}, 64)

	sub, err := bus.Subscribe(ctx, eventbus.Filter{Types: types}, func(ctx context.Context, ev *eventbus.Envelope) {
		printEvent(ev)
		select {
		case received <- struct{}{}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer sub.Unsubscribe()

	count := 0
	for limit == 0 || count < limit {
		select {
		case <-ctx.Done():
			fmt.Printf("\n📊 Total events: %d\n", count)
			return nil
		case <-received:
			count++
		}
	}
	fmt.Printf("\n📊 Total events: %d\n", count)
	return nil
}

// showRoster выводит журнал состава
func showRoster(ctx context.Context, opts storage.Options) error {
	repo, err := storage.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer repo.Close()

	records, err := repo.List(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("📋 Roster: %d nits\n", len(records))
	for _, r := range records {
		fmt.Printf("%6d %-16s %-5s %-10s %v S%d A%d T%d W%d HP %d ST %d XP %d (tick %d)\n",
			r.ID, r.Name, r.Kind, r.Faction, r.Cube,
			r.Strength, r.Agility, r.Toughness, r.Weight,
			r.HitPoints, r.StaminaPoints, r.Experience, r.Tick)
	}
	return nil
}

// printEvent выводит событие в читаемом формате
func printEvent(ev *eventbus.Envelope) {
	fmt.Printf("[%s] %s [%s] %s\n", ev.Timestamp.Format(timeFormat), ev.Source, ev.EventType, ev.ID)

	// Добавляем детали в зависимости от типа события
	switch ev.EventType {
	case eventbus.EventAttackResolved:
		var p eventbus.AttackPayload
		if ev.Decode(&p) == nil {
			fmt.Printf("  %s → %s: %s\n", p.Attacker.Name, p.Defender.Name, p.Outcome)
		}
	case eventbus.EventNitDied:
		var p eventbus.DeathPayload
		if ev.Decode(&p) == nil {
			fmt.Printf("  %s (%s) погиб в %v\n", p.Nit.Name, p.Nit.Faction, p.Nit.Cube)
		}
	case eventbus.EventSkillIncreased:
		var p eventbus.SkillPayload
		if ev.Decode(&p) == nil {
			fmt.Printf("  %s: %s → %d\n", p.Nit.Name, p.Attribute, p.Value)
		}
	}
}

// parseStringList парсит строку с разделителями-запятыми
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
