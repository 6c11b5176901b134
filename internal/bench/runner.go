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
	"context"
	"errors"
	"fmt"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/gomailbox/errors"
	"github.com/tochemey/gomailbox/log"
	"github.com/tochemey/gomailbox/mailbox"
)

// Report is the outcome of a benchmark run
type Report struct {
	// Posted is the number of messages posted
	Posted int
	// Delivered is the number of messages received
	Delivered int
	// Timeouts is the number of receives that timed out and were retried
	Timeouts int64
	// Elapsed is the wall time of the run
	Elapsed time.Duration
}

// Throughput returns the delivered messages per second
func (r *Report) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Delivered) / r.Elapsed.Seconds()
}

// String returns a human-readable summary of the report
func (r *Report) String() string {
	return fmt.Sprintf("posted=%d delivered=%d timeouts=%d elapsed=%s throughput=%.0f msg/s",
		r.Posted, r.Delivered, r.Timeouts, r.Elapsed, r.Throughput())
}

// message is posted by the producers
type message struct {
	producer int
	sequence int
}

func (m message) String() string {
	return fmt.Sprintf("%d-%d", m.producer, m.sequence)
}

// Runner drives producers and consumers against a single mailbox and
// checks that every message is delivered exactly once.
type Runner struct {
	config *Config
	logger log.Logger
}

// NewRunner creates an instance of Runner
func NewRunner(config *Config, logger log.Logger) *Runner {
	return &Runner{
		config: config,
		logger: logger,
	}
}

// Run executes the benchmark
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	mb, err := mailbox.New[message](r.config.mailboxOptions(r.logger)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox: %w", err)
	}
	defer mb.Dispose()

	var (
		total     = r.config.Total()
		remaining = atomic.NewInt64(int64(total))
		timeouts  = atomic.NewInt64(0)
		received  = goset.NewSet[message]()
	)

	r.logger.Infof("starting run with %d producer(s), %d consumer(s) and %d message(s)",
		r.config.Producers, r.config.Consumers, total)

	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	for consumer := 0; consumer < r.config.Consumers; consumer++ {
		eg.Go(func() error {
			// each consumer claims receive slots until every message is accounted for
			for remaining.Dec() >= 0 {
				msg, err := r.receive(ctx, mb, timeouts)
				if err != nil {
					return fmt.Errorf("consumer=(%d) failed to receive: %w", consumer, err)
				}

				if !received.Add(msg) {
					return fmt.Errorf("message=(%s) delivered more than once", msg)
				}
			}
			return nil
		})
	}

	for producer := 0; producer < r.config.Producers; producer++ {
		eg.Go(func() error {
			for sequence := 0; sequence < r.config.Messages; sequence++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				mb.Post(message{producer: producer, sequence: sequence})
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Posted:    total,
		Delivered: received.Cardinality(),
		Timeouts:  timeouts.Load(),
		Elapsed:   time.Since(start),
	}

	if report.Delivered != total {
		return report, fmt.Errorf("delivered %d message(s) out of %d", report.Delivered, total)
	}

	if left := mb.MessageCount(); left > 0 {
		return report, fmt.Errorf("%d message(s) left in the mailbox", left)
	}

	r.logger.Infof("run completed: %s", report)
	return report, nil
}

// receive waits for the next message, retrying receives that timed out
func (r *Runner) receive(ctx context.Context, mb *mailbox.Mailbox[message], timeouts *atomic.Int64) (message, error) {
	var msg message
	retrier := retry.NewRetrier(r.config.Retries, time.Millisecond, r.config.ReceiveTimeout)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		fut, err := mb.Receive(ctx, mailbox.WithTimeout(r.config.ReceiveTimeout))
		if err != nil {
			return err
		}

		value, err := fut.Await(ctx)
		if err != nil {
			if errors.Is(err, gerrors.ErrReceiveTimeout) {
				timeouts.Inc()
				r.logger.Debugf("receive timed out after %s, retrying", r.config.ReceiveTimeout)
			}
			return err
		}

		msg = value
		return nil
	})
	return msg, err
}
