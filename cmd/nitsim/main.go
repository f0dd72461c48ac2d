package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/nitworld/internal/app"
	"github.com/annel0/nitworld/internal/config"
	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $NITSIM_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := logging.InitDefaultLogger("nitsim", level, cfg.Log.Dir); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("🌍 Запуск симуляции: мир %dx%dx%d, сид %d",
		cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ, cfg.Sim.Seed)

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, observability.TraceSettings{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.Endpoint,
			SampleRatio: cfg.Telemetry.SampleRatio,
			Seed:        cfg.Sim.Seed,
			WorldSize:   [3]int{cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ},
		})
		if err != nil {
			logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Error("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	sim, err := app.New(ctx, cfg)
	if err != nil {
		logging.Error("❌ Ошибка создания симуляции: %v", err)
		return
	}
	if err := sim.Populate(); err != nil {
		logging.Error("❌ Ошибка заселения мира: %v", err)
		sim.Close(context.Background())
		return
	}

	stopMetrics := observability.StartMetricsServer(cfg.Metrics.GetMetricsPort(), sim.Registry)

	if err := sim.Run(ctx); err != nil {
		logging.Error("❌ Симуляция остановлена с ошибкой: %v", err)
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Debug("Остановка сервисов...")
	if err := stopMetrics(context.Background()); err != nil {
		logging.Error("Ошибка остановки сервера метрик: %v", err)
	}
	if err := sim.Close(context.Background()); err != nil {
		logging.Error("Ошибка при завершении: %v", err)
	}
	logging.Info("👋 Симуляция остановлена на тике %d", sim.World.CurrentTick())
}
