package telemetry

import (
	"log"

	"barrage/server/logging"
)

// Logger is the minimal printf-style surface server components log through
// when a structured event would be overkill.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts a function into the Logger interface.
type LoggerFunc func(format string, args ...any)

func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// NopLogger discards everything.
func NopLogger() Logger {
	return LoggerFunc(func(string, ...any) {})
}

// WrapLogger adapts a standard library logger.
func WrapLogger(logger *log.Logger) Logger {
	return &loggerAdapter{logger: logger}
}

type loggerAdapter struct {
	logger *log.Logger
}

func (l *loggerAdapter) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}

// Metrics is the counter surface exposed on the diagnostics endpoint.
type Metrics interface {
	Add(key string, delta uint64)
	Store(key string, value uint64)
	Snapshot() map[string]uint64
}

// NopMetrics discards every update and reports an empty snapshot.
func NopMetrics() Metrics {
	return &metricsAdapter{}
}

// WrapMetrics adapts the logging router's counters.
func WrapMetrics(metrics *logging.Metrics) Metrics {
	return &metricsAdapter{metrics: metrics}
}

type metricsAdapter struct {
	metrics *logging.Metrics
}

func (m *metricsAdapter) Add(key string, delta uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryAdd(key, delta)
}

func (m *metricsAdapter) Store(key string, value uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryStore(key, value)
}

func (m *metricsAdapter) Snapshot() map[string]uint64 {
	if m == nil || m.metrics == nil {
		return map[string]uint64{}
	}
	return m.metrics.TelemetrySnapshot()
}
