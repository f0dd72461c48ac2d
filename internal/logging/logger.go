package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации ("debug", "INFO", ...)
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("неизвестный уровень логирования: %q", s)
	}
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case TRACE:
		return logrus.TraceLevel
	case DEBUG:
		return logrus.DebugLevel
	case WARN:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger представляет логгер компонента поверх общего logrus-инстанса
type Logger struct {
	component string
	minLevel  LogLevel
	entry     *logrus.Entry
}

var (
	// base общий для всех компонентов: уровень и вывод настраиваются один раз
	base = newBase()

	defaultLogger = NewLogger("default")
	logFile       *os.File
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// NewLogger создаёт логгер для компонента с уровнем INFO
func NewLogger(component string) *Logger {
	return &Logger{
		component: component,
		minLevel:  INFO,
		entry:     base.WithField("component", component),
	}
}

// InitDefaultLogger настраивает логгер по умолчанию.
// Если logDir не пуст, дополнительно пишет в файл logs/<component>_<время>.log.
func InitDefaultLogger(component string, level LogLevel, logDir string) error {
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", logDir, err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		filename := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", component, timestamp))

		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		logFile = file
		base.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	defaultLogger = NewLogger(component)
	SetLevel(level)
	return nil
}

// CloseDefaultLogger закрывает файл логов, если он был открыт
func CloseDefaultLogger() {
	if logFile != nil {
		base.SetOutput(os.Stdout)
		logFile.Close()
		logFile = nil
	}
}

// SetLevel устанавливает минимальный уровень для логгера по умолчанию и всех компонентов
func SetLevel(level LogLevel) {
	defaultLogger.minLevel = level
	GetLoggerManager().setAll(level)
}

// SetOutput перенаправляет вывод (используется в тестах)
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// Component возвращает имя компонента логгера
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if l == nil || level < l.minLevel {
		return
	}
	l.entry.Logf(level.logrusLevel(), format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) { l.log(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// WithField возвращает копию логгера с дополнительным полем
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		component: l.component,
		minLevel:  l.minLevel,
		entry:     l.entry.WithField(key, value),
	}
}

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) {
	defaultLogger.Trace(format, args...)
}

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}
