// Package logger is a small leveled file logger with structured
// fields. Console output is off by default so log lines do not tear
// the TUI; everything goes to ~/.glow/logs/glow.log with size-based
// rotation.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is log severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the level name.
func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a name to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return INFO
}

// Field is one structured key/value pair on a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config controls where and how much the logger writes.
type Config struct {
	Level      Level
	FilePath   string
	MaxSize    int64 // bytes before rotation
	MaxBackups int
	Console    bool
}

// DefaultConfig logs INFO and above to ~/.glow/logs/glow.log.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Level:      INFO,
		FilePath:   filepath.Join(home, ".glow", "logs", "glow.log"),
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 5,
	}
}

// Logger writes leveled, timestamped lines with fields.
type Logger struct {
	cfg    Config
	mu     sync.Mutex
	file   *os.File
	base   []Field
}

var (
	global *Logger
	once   sync.Once
)

// Init sets up the process-wide logger. Later calls are no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = New(cfg)
	})
	return err
}

// New creates a logger, opening and rotating the log file as needed.
func New(cfg Config) (*Logger, error) {
	l := &Logger{cfg: cfg}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		if err := l.open(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Logger) open() error {
	f, err := os.OpenFile(l.cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return nil
}

// rotate shifts glow.log to glow.log.1 and so on, dropping the oldest
// backup. Caller holds the mutex.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	for i := l.cfg.MaxBackups - 1; i >= 1; i-- {
		os.Rename(
			fmt.Sprintf("%s.%d", l.cfg.FilePath, i),
			fmt.Sprintf("%s.%d", l.cfg.FilePath, i+1),
		)
	}
	if _, err := os.Stat(l.cfg.FilePath); err == nil {
		if err := os.Rename(l.cfg.FilePath, l.cfg.FilePath+".1"); err != nil {
			return err
		}
	}
	return l.open()
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	if level < l.cfg.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil && l.cfg.MaxSize > 0 {
		if info, err := l.file.Stat(); err == nil && info.Size() >= l.cfg.MaxSize {
			if err := l.rotate(); err != nil {
				fmt.Fprintf(os.Stderr, "glow: log rotation failed: %v\n", err)
			}
		}
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString(" ")
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range append(l.base, fields...) {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteString("\n")

	line := []byte(b.String())
	if l.file != nil {
		l.file.Write(line)
	}
	if l.cfg.Console {
		os.Stderr.Write(line)
	}
}

// With returns a logger that adds the given fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	child := &Logger{cfg: l.cfg, file: l.file, base: append(append([]Field(nil), l.base...), fields...)}
	return child
}

// Debug logs at DEBUG.
func (l *Logger) Debug(msg string, fields ...Field) { l.write(DEBUG, msg, fields) }

// Info logs at INFO.
func (l *Logger) Info(msg string, fields ...Field) { l.write(INFO, msg, fields) }

// Warn logs at WARN.
func (l *Logger) Warn(msg string, fields ...Field) { l.write(WARN, msg, fields) }

// Error logs at ERROR.
func (l *Logger) Error(msg string, fields ...Field) { l.write(ERROR, msg, fields) }

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package-level functions log through the global logger and are
// no-ops before Init, so library code can log unconditionally.

func Debug(msg string, fields ...Field) {
	if global != nil {
		global.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...Field) {
	if global != nil {
		global.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...Field) {
	if global != nil {
		global.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...Field) {
	if global != nil {
		global.Error(msg, fields...)
	}
}

func Close() error {
	if global != nil {
		return global.Close()
	}
	return nil
}
