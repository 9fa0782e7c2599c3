package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level represents the severity of a log message
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO ",
	WARN:  "WARN ",
	ERROR: "ERROR",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
}

// ParseLevel converts a level name to a Level. Unknown names map to INFO.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a leveled logger that prefixes every line with the time, level and caller.
// It satisfies core.Logger, so it can be handed to the tracer and renderer directly.
type Logger struct {
	level     Level
	out       *log.Logger
	file      *os.File
	useColors bool
	timestamp func() time.Time
}

// New creates a logger writing to stdout at the given level
func New(levelName string) *Logger {
	l := &Logger{
		level:     ParseLevel(levelName),
		out:       log.New(os.Stdout, "", 0),
		timestamp: time.Now,
	}

	// Colors only on a terminal, and never when NO_COLOR is set
	info, err := os.Stdout.Stat()
	isTerminal := err == nil && info.Mode()&os.ModeCharDevice != 0
	l.EnableColors(isTerminal && os.Getenv("NO_COLOR") == "")
	return l
}

// NewWriter creates a logger writing uncolored lines to w
func NewWriter(levelName string, w io.Writer) *Logger {
	return &Logger{
		level:     ParseLevel(levelName),
		out:       log.New(w, "", 0),
		timestamp: time.Now,
	}
}

// NewFileLogger creates a logger that writes to both stdout and the file at path
func NewFileLogger(levelName, path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := New(levelName)
	l.out.SetOutput(io.MultiWriter(os.Stdout, file))
	l.file = file
	l.EnableColors(false)
	return l, nil
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	// Skip logf and the exported wrapper
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	prefix := fmt.Sprintf("%s [%s] %s:%d:",
		l.timestamp().Format("2006/01/02 15:04:05"), levelNames[level], filepath.Base(file), line)
	if l.useColors {
		prefix = levelColors[level] + prefix + "\033[0m"
	}
	l.out.Println(prefix, fmt.Sprintf(format, v...))
}

// Printf logs at INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(DEBUG, format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(WARN, format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(ERROR, format, v...)
}

// Level returns the current minimum level
func (l *Logger) Level() Level {
	return l.level
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(levelName string) {
	l.level = ParseLevel(levelName)
}

// SetOutput redirects output to w
func (l *Logger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

// EnableColors enables or disables ANSI colors
func (l *Logger) EnableColors(enable bool) {
	l.useColors = enable
}

// Close closes the log file if there is one
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
