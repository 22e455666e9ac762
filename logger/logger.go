// Package logger
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Init(path string)
	InitConsole(w io.Writer)
	InitMultiWriter(path string, w io.Writer)

	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Debug(msg string)

	WithStr(key, value string) Logger
	WithInt(key string, value int) Logger
	WithErr(err error) Logger
	WithAny(key string, value any) Logger
}

type logger struct {
	base zerolog.Logger
	path string
}

// New returns a logger that discards everything until one of the Init
// methods is called.
func New() Logger {
	return &logger{
		base: zerolog.Nop(),
		path: "./logs/mithril.log",
	}
}

func (l *logger) fileWriter(path string) io.Writer {
	if path != "" {
		l.path = path
	}

	return &lumberjack.Logger{
		Filename:   l.path,
		MaxSize:    5,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
}

func (l *logger) Init(path string) {
	l.base = zerolog.New(l.fileWriter(path)).
		With().
		Timestamp().
		Logger()
}

func (l *logger) InitConsole(w io.Writer) {
	l.base = zerolog.New(console(w)).
		With().
		Timestamp().
		Logger()
}

func (l *logger) InitMultiWriter(path string, w io.Writer) {
	multi := zerolog.MultiLevelWriter(console(w), l.fileWriter(path))

	l.base = zerolog.New(multi).
		With().
		Timestamp().
		Logger()
}

func console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
}

func (l *logger) Info(msg string) {
	l.base.Info().Msg(msg)
}

func (l *logger) Warn(msg string) {
	l.base.Warn().Msg(msg)
}

func (l *logger) Error(msg string) {
	l.base.Error().Msg(msg)
}

func (l *logger) Debug(msg string) {
	l.base.Debug().Msg(msg)
}

func (l *logger) WithStr(key, value string) Logger {
	return l.with(l.base.With().Str(key, value))
}

func (l *logger) WithInt(key string, value int) Logger {
	return l.with(l.base.With().Int(key, value))
}

func (l *logger) WithErr(err error) Logger {
	return l.with(l.base.With().Err(err))
}

func (l *logger) WithAny(key string, value any) Logger {
	return l.with(l.base.With().Interface(key, value))
}

func (l *logger) with(ctx zerolog.Context) Logger {
	return &logger{
		base: ctx.Logger(),
		path: l.path,
	}
}

// LogPath returns the default log file location, creating its directory.
func LogPath(path string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, "mithril", path)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "mithril.log")
	return logPath, nil
}
