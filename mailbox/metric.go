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
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tochemey/gomailbox"

// metrics defines the mailbox instrumentation
type metrics struct {
	// Specifies the total number of messages posted
	postedCount metric.Int64Counter
	// Specifies the total number of messages handed to a receiver
	deliveredCount metric.Int64Counter
	// Specifies the total number of receives that timed out
	timeoutCount metric.Int64Counter
	// Specifies the total number of receives that were canceled
	canceledCount metric.Int64Counter
	// Specifies the number of buffered messages at a point in time
	bufferedGauge metric.Int64ObservableGauge
	// Specifies the number of registered receives at a point in time
	pendingGauge metric.Int64ObservableGauge

	attributes   metric.MeasurementOption
	registration metric.Registration
}

// newMetrics creates the mailbox instruments. observe reports the
// buffered messages and pending receives counts for the gauges.
func newMetrics(meter metric.Meter, name string, observe func() (buffered, pending int64)) (*metrics, error) {
	m := &metrics{
		attributes: metric.WithAttributes(attribute.String("mailbox.name", name)),
	}

	var err error
	if m.postedCount, err = meter.Int64Counter(
		"mailbox_posted_count",
		metric.WithDescription("Total number of messages posted to the mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create postedCount instrument, %w", err)
	}

	if m.deliveredCount, err = meter.Int64Counter(
		"mailbox_delivered_count",
		metric.WithDescription("Total number of messages handed to a receiver"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deliveredCount instrument, %w", err)
	}

	if m.timeoutCount, err = meter.Int64Counter(
		"mailbox_receive_timeout_count",
		metric.WithDescription("Total number of receives that timed out"),
	); err != nil {
		return nil, fmt.Errorf("failed to create timeoutCount instrument, %w", err)
	}

	if m.canceledCount, err = meter.Int64Counter(
		"mailbox_receive_canceled_count",
		metric.WithDescription("Total number of receives that were canceled"),
	); err != nil {
		return nil, fmt.Errorf("failed to create canceledCount instrument, %w", err)
	}

	if m.bufferedGauge, err = meter.Int64ObservableGauge(
		"mailbox_buffered_messages",
		metric.WithDescription("Number of messages waiting for a receiver"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bufferedGauge instrument, %w", err)
	}

	if m.pendingGauge, err = meter.Int64ObservableGauge(
		"mailbox_pending_receives",
		metric.WithDescription("Number of receives waiting for a message"),
	); err != nil {
		return nil, fmt.Errorf("failed to create pendingGauge instrument, %w", err)
	}

	observeOpt := metric.WithAttributes(attribute.String("mailbox.name", name))
	if m.registration, err = meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		buffered, pending := observe()
		observer.ObserveInt64(m.bufferedGauge, buffered, observeOpt)
		observer.ObserveInt64(m.pendingGauge, pending, observeOpt)
		return nil
	}, m.bufferedGauge, m.pendingGauge); err != nil {
		return nil, fmt.Errorf("failed to register mailbox gauges callback, %w", err)
	}

	return m, nil
}

func (m *metrics) posted() {
	m.postedCount.Add(context.Background(), 1, m.attributes)
}

// resolved records the outcome of a receive
func (m *metrics) resolved(state waiterState) {
	ctx := context.Background()
	switch state {
	case fulfilled:
		m.deliveredCount.Add(ctx, 1, m.attributes)
	case timedOut:
		m.timeoutCount.Add(ctx, 1, m.attributes)
	case canceled:
		m.canceledCount.Add(ctx, 1, m.attributes)
	default:
	}
}

// unregister removes the gauges callback
func (m *metrics) unregister() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
