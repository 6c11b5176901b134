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

package mailbox

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/gomailbox/errors"
	"github.com/tochemey/gomailbox/internal/validation"
	"github.com/tochemey/gomailbox/log"
)

// DefaultSweepInterval is the sweep interval used by WithSweepMonitor
// when given a zero interval.
const DefaultSweepInterval = 100 * time.Millisecond

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(cfg *config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

// Apply applies the option to the config
func (f OptionFunc) Apply(c *config) {
	f(c)
}

// WithName sets the mailbox name used in logs and metric attributes.
func WithName(name string) Option {
	return OptionFunc(func(c *config) {
		c.name = name
	})
}

// WithLogger sets the mailbox logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *config) {
		c.logger = logger
	})
}

// WithMeterProvider sets the meter provider used to create the mailbox instruments.
// If none is specified, the global provider is used.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(c *config) {
		c.meterProvider = provider
	})
}

// WithTimerMonitor resolves pending receives with one timer per receive.
// This is the default.
func WithTimerMonitor() Option {
	return OptionFunc(func(c *config) {
		c.strategy = TimerStrategy
	})
}

// WithSweepMonitor resolves pending receives lazily on post and from a
// background sweep running every interval. A zero interval selects
// DefaultSweepInterval.
func WithSweepMonitor(interval time.Duration) Option {
	return OptionFunc(func(c *config) {
		c.strategy = SweepStrategy
		if interval == 0 {
			interval = DefaultSweepInterval
		}
		c.sweepInterval = interval
	})
}

// config holds the mailbox settings
type config struct {
	name          string
	logger        log.Logger
	meterProvider metric.MeterProvider
	strategy      MonitorStrategy
	sweepInterval time.Duration
}

// newConfig creates the default config and applies the given options
func newConfig(opts ...Option) *config {
	cfg := &config{
		name:          uuid.NewString(),
		logger:        log.DefaultLogger,
		meterProvider: otel.GetMeterProvider(),
		strategy:      TimerStrategy,
		sweepInterval: DefaultSweepInterval,
	}

	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Validate checks the config
func (c *config) Validate() error {
	return validation.New().
		Assert(c.name != "", gerrors.ErrInvalidMailboxName).
		Assert(c.strategy != SweepStrategy || c.sweepInterval > 0, gerrors.ErrInvalidSweepInterval).
		Validate()
}

// ReceiveOption configures a single Receive call.
type ReceiveOption func(*receiveConfig)

// WithTimeout sets how long the receive waits for a message before it fails
// with ErrReceiveTimeout. A zero timeout fails immediately. Without this option
// the receive waits until a message arrives or its context is done.
func WithTimeout(timeout time.Duration) ReceiveOption {
	return func(c *receiveConfig) {
		c.timeout = timeout
		c.timeoutSet = true
	}
}

type receiveConfig struct {
	timeout    time.Duration
	timeoutSet bool
}

func newReceiveConfig(opts ...ReceiveOption) *receiveConfig {
	cfg := new(receiveConfig)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks the receive config
func (c *receiveConfig) Validate() error {
	if c.timeoutSet && c.timeout < 0 {
		return gerrors.NewErrInvalidTimeout(c.timeout)
	}
	return nil
}

// waitFor returns the timeout to apply; a negative value means no timeout
func (c *receiveConfig) waitFor() time.Duration {
	if !c.timeoutSet {
		return -1
	}
	return c.timeout
}
