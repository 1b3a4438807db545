// Package logger is a small leveled logger with a colored console sink and an
// optional rotating file sink.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG: ",
	LevelInfo:  "INFO:  ",
	LevelWarn:  "WARN:  ",
	LevelError: "ERROR: ",
	LevelFatal: "FATAL: ",
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgBlue),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelFatal: color.New(color.FgRed, color.Bold),
}

// Options configures a Logger.
type Options struct {
	Debug bool

	// Console receives colored output. Defaults to os.Stderr so that command
	// output on stdout stays clean.
	Console io.Writer

	// File enables a rotating log file when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger writes leveled messages to the console and, optionally, a file.
//
// The console only shows warnings and errors unless Debug is set; the file
// records everything from INFO up.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *lumberjack.Logger
	debug   bool // fixed at New; read without mu
	flags   int
	exit    func(int)
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	l := &Logger{
		console: opts.Console,
		debug:   opts.Debug,
		flags:   log.Ldate | log.Ltime,
		exit:    os.Exit,
	}
	if l.console == nil {
		l.console = os.Stderr
	}
	if opts.Debug {
		l.flags |= log.Lmicroseconds
	}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10), // megabytes
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28), // days
			Compress:   true,
		}
	}
	return l
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (l *Logger) consoleMin() Level {
	if l.debug {
		return LevelDebug
	}
	return LevelWarn
}

func (l *Logger) fileMin() Level {
	if l.debug {
		return LevelDebug
	}
	return LevelInfo
}

func (l *Logger) output(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level >= l.consoleMin() {
		prefix := levelColors[level].Sprint(levelNames[level])
		log.New(l.console, prefix, l.flags).Println(msg)
	}
	if l.file != nil && level >= l.fileMin() {
		log.New(l.file, levelNames[level], l.flags).Println(msg)
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.debug {
		l.output(LevelDebug, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Infof(format string, v ...any)  { l.output(LevelInfo, fmt.Sprintf(format, v...)) }
func (l *Logger) Warnf(format string, v ...any)  { l.output(LevelWarn, fmt.Sprintf(format, v...)) }
func (l *Logger) Errorf(format string, v ...any) { l.output(LevelError, fmt.Sprintf(format, v...)) }

// Fatalf logs at FATAL, closes the file sink and exits with status 1.
func (l *Logger) Fatalf(format string, v ...any) {
	l.output(LevelFatal, fmt.Sprintf(format, v...))
	_ = l.Close()
	l.exit(1)
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

var (
	stdMu sync.RWMutex
	std   = New(Options{})
)

// Init replaces the process-wide logger returned by Default.
func Init(opts Options) *Logger {
	l := New(opts)
	stdMu.Lock()
	old := std
	std = l
	stdMu.Unlock()
	_ = old.Close()
	return l
}

// Default returns the process-wide logger.
func Default() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}
