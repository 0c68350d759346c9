// Package logger builds zerolog loggers from YAML-friendly configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents logger configuration.
type Config struct {
	Level         string `yaml:"level"`
	ConsoleOutput bool   `yaml:"console_output"`
	ConsoleColor  bool   `yaml:"console_color"`
	FileOutput    bool   `yaml:"file_output"`
	FileName      string `yaml:"file_name"`
	FileMaxSize   string `yaml:"file_max_size"`
}

// DefaultConfig logs info and above to stderr without color.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		ConsoleOutput: true,
	}
}

// New creates a logger writing to the configured outputs.
func New(cfg Config) (zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with console output sent to console instead of stderr.
func NewWithWriter(cfg Config, console io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	var writers []io.Writer
	if cfg.ConsoleOutput {
		if cfg.ConsoleColor {
			writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
		} else {
			writers = append(writers, console)
		}
	}

	// File writer with rotation
	if cfg.FileOutput {
		if cfg.FileName == "" {
			return zerolog.Nop(), fmt.Errorf("file_name is required when file_output is enabled")
		}
		maxSizeMB, err := parseMaxSize(cfg.FileMaxSize)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid file_max_size: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename: cfg.FileName,
			MaxSize:  maxSizeMB, // megabytes
			Compress: true,
		})
	}

	if len(writers) == 0 {
		writers = append(writers, console)
	}

	var w io.Writer = writers[0]
	if len(writers) > 1 {
		w = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// ParseLevel converts a level name to a zerolog level. The empty string
// means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// parseMaxSize converts a size string (e.g., "10MB") to megabytes.
func parseMaxSize(s string) (int, error) {
	if s == "" {
		return 10, nil
	}
	s = strings.TrimSuffix(strings.ToUpper(s), "MB")
	size, err := strconv.Atoi(s)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}
	return size, nil
}
