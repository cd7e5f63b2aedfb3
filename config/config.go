/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the settings of the route service. Defaults bind the service to
// 0.0.0.0:8080; a YAML file and command-line flags override them.
package config

import (
	"bytes"
	"io"
	"net"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Log formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is a zerolog level name such as "debug" or "info".
	Level string `yaml:"level"`

	// Format is either "json" or "console".
	Format string `yaml:"format"`
}

// Config contains the settings of the route service.
type Config struct {
	// Addr is the TCP address the HTTP server listens on.
	Addr string `yaml:"addr"`

	// MaxBodySize limits the size of a GraphQL request body in bytes.
	MaxBodySize uint `yaml:"max_body_size"`

	// OperationCacheSize is the number of prepared operations kept in the LRU cache.
	OperationCacheSize uint `yaml:"operation_cache_size"`

	// MaxConcurrency bounds the number of query root fields executed at the same time. Zero means
	// no limit.
	MaxConcurrency int `yaml:"max_concurrency"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Log LogConfig `yaml:"log"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Addr:               "0.0.0.0:8080",
		MaxBodySize:        10 << 20,
		OperationCacheSize: 512,
		MaxConcurrency:     8,
		ShutdownTimeout:    10 * time.Second,
		Log: LogConfig{
			Level:  zerolog.LevelInfoValue,
			Format: LogFormatJSON,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config file %q", path)
	}

	config, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config file %q", path)
	}
	return config, nil
}

// Parse decodes YAML data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parse config")
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks that the configuration can be used to start the service.
func (config Config) Validate() error {
	if _, _, err := net.SplitHostPort(config.Addr); err != nil {
		return errors.Wrapf(err, "invalid addr %q", config.Addr)
	}
	if config.MaxBodySize == 0 {
		return errors.New("max_body_size must be positive")
	}
	if config.OperationCacheSize == 0 {
		return errors.New("operation_cache_size must be positive")
	}
	if config.MaxConcurrency < 0 {
		return errors.Newf("max_concurrency must not be negative, got %d", config.MaxConcurrency)
	}
	if config.ShutdownTimeout <= 0 {
		return errors.Newf("shutdown_timeout must be positive, got %s", config.ShutdownTimeout)
	}
	return config.Log.Validate()
}

// Validate checks the log level and format.
func (config LogConfig) Validate() error {
	// ParseLevel accepts "" as zerolog.NoLevel.
	if len(config.Level) == 0 {
		return errors.New("log level must not be empty")
	}
	if _, err := zerolog.ParseLevel(config.Level); err != nil {
		return errors.Wrapf(err, "invalid log level")
	}
	switch config.Format {
	case LogFormatJSON, LogFormatConsole:
		return nil
	}
	return errors.Newf("invalid log format %q, want %q or %q", config.Format, LogFormatJSON, LogFormatConsole)
}

// NewLogger creates the process logger writing to w.
func (config LogConfig) NewLogger(w io.Writer) (zerolog.Logger, error) {
	if err := config.Validate(); err != nil {
		return zerolog.Nop(), err
	}

	level, _ := zerolog.ParseLevel(config.Level)
	if config.Format == LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
