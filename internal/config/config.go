package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации симуляции.
// Незаданные в файле поля получают значения из Default.
type Config struct {
	Sim        SimConfig        `yaml:"sim"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Storage    StorageConfig    `yaml:"storage"`
	EventBus   EventBusConfig   `yaml:"eventbus"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Log        LogConfig        `yaml:"log"`
}

type SimConfig struct {
	Seed     int64   `yaml:"seed"`
	TickDT   float64 `yaml:"tick_dt"`
	TickRate int     `yaml:"tick_rate"` // тиков в секунду реального времени, 0 — без ожидания
	Ticks    uint64  `yaml:"ticks"`     // 0 — до остановки процесса
}

type WorldConfig struct {
	SizeX         int     `yaml:"size_x"`
	SizeY         int     `yaml:"size_y"`
	SizeZ         int     `yaml:"size_z"`
	NoiseScale    float64 `yaml:"noise_scale"`
	TreeDensity   float64 `yaml:"tree_density"`
	WorkshopCount int     `yaml:"workshop_count"`
	ItemCount     int     `yaml:"item_count"`
}

type PopulationConfig struct {
	Factions         int     `yaml:"factions"`
	NitsPerFaction   int     `yaml:"nits_per_faction"`
	EnitShare        float64 `yaml:"enit_share"`
	DefaultBehaviour bool    `yaml:"default_behaviour"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"` // memory | badger | redis
	Path       string `yaml:"path"`
	RedisAddr  string `yaml:"redis_addr"`
	FlushEvery uint64 `yaml:"flush_every_ticks"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // пусто — шина в памяти
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`     // host:port OTLP/HTTP, пусто - переменные OTEL_* или localhost:4318
	SampleRatio float64 `yaml:"sample_ratio"` // доля тиков, попадающих в трассы
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // пусто — только stdout
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			Seed:     1,
			TickDT:   0.1,
			TickRate: 10,
		},
		World: WorldConfig{
			SizeX:         32,
			SizeY:         32,
			SizeZ:         12,
			NoiseScale:    0.08,
			TreeDensity:   0.05,
			WorkshopCount: 2,
			ItemCount:     6,
		},
		Population: PopulationConfig{
			Factions:         3,
			NitsPerFaction:   5,
			EnitShare:        0.5,
			DefaultBehaviour: true,
		},
		Storage: StorageConfig{
			Backend:    "memory",
			RedisAddr:  "localhost:6379",
			FlushEvery: 50,
		},
		EventBus: EventBusConfig{
			Stream:    "NITSIM_EVENTS",
			Retention: 24,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "nitsim",
			SampleRatio: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Sim.TickDT <= 0 || c.Sim.TickDT > 0.2 {
		return fmt.Errorf("sim.tick_dt должен быть в (0, 0.2], получено %v", c.Sim.TickDT)
	}
	if c.Sim.TickRate < 0 {
		return fmt.Errorf("sim.tick_rate не может быть отрицательным: %d", c.Sim.TickRate)
	}
	if c.World.SizeX <= 0 || c.World.SizeY <= 0 || c.World.SizeZ <= 0 {
		return fmt.Errorf("размеры мира должны быть положительными: %dx%dx%d",
			c.World.SizeX, c.World.SizeY, c.World.SizeZ)
	}
	if c.World.TreeDensity < 0 || c.World.TreeDensity > 1 {
		return fmt.Errorf("world.tree_density вне [0, 1]: %v", c.World.TreeDensity)
	}
	if c.Population.EnitShare < 0 || c.Population.EnitShare > 1 {
		return fmt.Errorf("population.enit_share вне [0, 1]: %v", c.Population.EnitShare)
	}
	if c.Population.Factions < 0 || c.Population.NitsPerFaction < 0 {
		return fmt.Errorf("размер населения не может быть отрицательным")
	}
	if c.Population.Factions > 5 || c.Population.NitsPerFaction > 50 || c.Population.Factions*c.Population.NitsPerFaction > 100 {
		return fmt.Errorf("население %d×%d превышает пределы мира (5 фракций по 50, всего 100)",
			c.Population.Factions, c.Population.NitsPerFaction)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio вне [0, 1]: %v", c.Telemetry.SampleRatio)
	}
	switch c.Storage.Backend {
	case "memory", "badger", "redis":
	default:
		return fmt.Errorf("неизвестное хранилище %q", c.Storage.Backend)
	}
	return nil
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "NITSIM_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV NITSIM_CONFIG,
// а без него возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("NITSIM_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
