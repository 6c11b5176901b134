/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tochemey/gomailbox/internal/validation"
	"github.com/tochemey/gomailbox/log"
	"github.com/tochemey/gomailbox/mailbox"
)

// Config holds the benchmark settings
type Config struct {
	// Producers is the number of goroutines posting messages
	Producers int `mapstructure:"producers"`
	// Consumers is the number of goroutines receiving messages
	Consumers int `mapstructure:"consumers"`
	// Messages is the number of messages posted by each producer
	Messages int `mapstructure:"messages"`
	// ReceiveTimeout bounds every single receive
	ReceiveTimeout time.Duration `mapstructure:"receive_timeout"`
	// Retries is the number of times a timed out receive is attempted
	Retries int `mapstructure:"retries"`
	// Monitor selects the pending receive monitor: timer or sweep
	Monitor string `mapstructure:"monitor"`
	// SweepInterval is the interval of the sweep monitor
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	// LogLevel is the log level of the benchmark
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Producers:      4,
		Consumers:      4,
		Messages:       10_000,
		ReceiveTimeout: 100 * time.Millisecond,
		Retries:        5,
		Monitor:        mailbox.TimerStrategy.String(),
		SweepInterval:  mailbox.DefaultSweepInterval,
		LogLevel:       log.InfoLevel.String(),
	}
}

// SetDefaults registers the default configuration values with viper
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("producers", defaults.Producers)
	v.SetDefault("consumers", defaults.Consumers)
	v.SetDefault("messages", defaults.Messages)
	v.SetDefault("receive_timeout", defaults.ReceiveTimeout)
	v.SetDefault("retries", defaults.Retries)
	v.SetDefault("monitor", defaults.Monitor)
	v.SetDefault("sweep_interval", defaults.SweepInterval)
	v.SetDefault("log_level", defaults.LogLevel)
}

// Load reads the configuration from viper and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	return validation.New().
		Add(validation.NewPositiveValidator("producers", c.Producers)).
		Add(validation.NewPositiveValidator("consumers", c.Consumers)).
		Add(validation.NewPositiveValidator("messages", c.Messages)).
		Add(validation.NewDurationValidator("receive_timeout", c.ReceiveTimeout)).
		Add(validation.NewPositiveValidator("retries", c.Retries)).
		Add(validation.NewOneOfValidator("monitor", c.Monitor, mailbox.TimerStrategy.String(), mailbox.SweepStrategy.String())).
		Assert(log.ParseLevel(c.LogLevel) != log.InvalidLevel, fmt.Errorf("log_level=(%s) is not supported", c.LogLevel)).
		Validate()
}

// Total returns the number of messages posted during a run
func (c *Config) Total() int {
	return c.Producers * c.Messages
}

// mailboxOptions returns the mailbox options matching the configuration
func (c *Config) mailboxOptions(logger log.Logger) []mailbox.Option {
	opts := []mailbox.Option{
		mailbox.WithName("mailbench"),
		mailbox.WithLogger(logger),
	}

	if strings.EqualFold(c.Monitor, mailbox.SweepStrategy.String()) {
		return append(opts, mailbox.WithSweepMonitor(c.SweepInterval))
	}
	return append(opts, mailbox.WithTimerMonitor())
}
