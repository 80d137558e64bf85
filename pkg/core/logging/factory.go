// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating Foundation loggers from
//              command line and configuration settings
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

// Configuration keys read by FromConfig
const (
	KeyLevel  = "log.level"
	KeyFormat = "log.format"
	KeyFile   = "log.file"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: console)
	Format string

	// File receives a copy of every entry when set
	File string

	// Output defaults to stderr; stdout belongs to parse results
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
	}
}

// FromConfig reads the log section of a configuration
func FromConfig(name string, cfg *mdwconfig.Config) LoggerConfig {
	def := DefaultLoggerConfig(name)
	if cfg == nil {
		return def
	}
	return LoggerConfig{
		Name:   name,
		Level:  cfg.GetString(KeyLevel, def.Level),
		Format: cfg.GetString(KeyFormat, def.Format),
		File:   cfg.GetString(KeyFile),
	}
}

// NewLogger creates a Foundation logger. The returned closer releases the
// log file, if one was opened.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = io.MultiWriter(output, f)
		closer = f
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return mdwlog.NewNop()
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
