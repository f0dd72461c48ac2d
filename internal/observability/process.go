package observability

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics содержит метрики процесса симуляции
type ProcessMetrics struct {
	StartTime time.Time

	proc *process.Process

	uptime     prometheus.Gauge
	cpuPercent prometheus.Gauge
	rssBytes   prometheus.Gauge
	heapBytes  prometheus.Gauge
	goroutines prometheus.Gauge
}

// NewProcessMetrics создаёт метрики процесса и регистрирует их в reg
func NewProcessMetrics(reg prometheus.Registerer) (*ProcessMetrics, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", os.Getpid(), err)
	}

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nitsim",
			Subsystem: "process",
			Name:      name,
			Help:      help,
		})
	}
	pm := &ProcessMetrics{
		StartTime:  time.Now(),
		proc:       proc,
		uptime:     gauge("uptime_seconds", "Время работы процесса."),
		cpuPercent: gauge("cpu_percent", "Загрузка CPU процессом в процентах."),
		rssBytes:   gauge("resident_memory_bytes", "Резидентная память процесса."),
		heapBytes:  gauge("heap_alloc_bytes", "Выделенная куча Go."),
		goroutines: gauge("goroutines", "Число горутин."),
	}
	for _, c := range []prometheus.Collector{pm.uptime, pm.cpuPercent, pm.rssBytes, pm.heapBytes, pm.goroutines} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return pm, nil
}

// GetUptime возвращает время работы в читаемом виде
func (pm *ProcessMetrics) GetUptime() string {
	uptime := time.Since(pm.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (pm *ProcessMetrics) GetCPUUsage() (float64, error) {
	cpuPercent, err := pm.proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, попробуем системную
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}
	return cpuPercent, nil
}

// Sample обновляет все метрики процесса
func (pm *ProcessMetrics) Sample() error {
	pm.uptime.Set(time.Since(pm.StartTime).Seconds())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	pm.heapBytes.Set(float64(m.HeapAlloc))
	pm.goroutines.Set(float64(runtime.NumGoroutine()))

	cpuPercent, err := pm.GetCPUUsage()
	if err != nil {
		return fmt.Errorf("cpu: %w", err)
	}
	pm.cpuPercent.Set(cpuPercent)

	mem, err := pm.proc.MemoryInfo()
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	pm.rssBytes.Set(float64(mem.RSS))
	return nil
}
