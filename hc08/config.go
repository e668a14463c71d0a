package hc08

import (
	"log/slog"
	"time"
)

// Config holds the collaborators and settings of a driver. Build it with
// NewConfigBuilder.
type Config struct {
	dialer      Dialer
	delayer     Delayer
	logger      *slog.Logger
	readTimeout time.Duration
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.delayer == nil {
		c.delayer = SleepDelayer{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets how the transport is opened. Required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithDelayer replaces the time.Sleep based settle delay.
func (b *ConfigBuilder) WithDelayer(d Delayer) *ConfigBuilder {
	b.config.delayer = d
	return b
}

// WithLogger sets the logger commands and replies are traced to.
func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithReadTimeout bounds how long the driver waits for each reply byte.
// The module protocol has no timeout of its own; with the default of zero a
// silent module blocks the caller indefinitely.
func (b *ConfigBuilder) WithReadTimeout(d time.Duration) *ConfigBuilder {
	b.config.readTimeout = d
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	config.setDefaults()
	return config, nil
}
