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
	"time"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/gomailbox/internal/ticker"
	"github.com/tochemey/gomailbox/log"
)

// MonitorStrategy defines how pending receives are resolved when their
// deadline passes or their cancellation signal fires.
type MonitorStrategy int

const (
	// TimerStrategy arms one timer and one context callback per pending receive.
	// Timeouts and cancellations are delivered as soon as they happen.
	TimerStrategy MonitorStrategy = iota
	// SweepStrategy checks pending receives lazily whenever a message is posted
	// and periodically from a single background sweeper. Timeouts and
	// cancellations are delivered at most one sweep interval late.
	SweepStrategy
)

// String returns the strategy name
func (s MonitorStrategy) String() string {
	switch s {
	case TimerStrategy:
		return "timer"
	case SweepStrategy:
		return "sweep"
	default:
		return "unknown"
	}
}

// monitor resolves pending receives on timeout or cancellation.
type monitor interface {
	// watch starts monitoring the given waiter until it is resolved
	watch(w watchable)
	// stop releases the resources held by the monitor
	stop()
}

// timerMonitor implements the timer-driven strategy
type timerMonitor struct{}

// enforce compilation error
var _ monitor = timerMonitor{}

func (timerMonitor) watch(w watchable) {
	if deadline, ok := w.expiry(); ok {
		timer := time.AfterFunc(time.Until(deadline), func() {
			w.expire()
		})
		w.onRelease(func() {
			timer.Stop()
		})
	}

	if ctx := w.signal(); ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			w.cancel()
		})
		w.onRelease(func() {
			stop()
		})
	}
}

func (timerMonitor) stop() {}

// sweepMonitor implements the lazy-check strategy backed by a periodic sweep
type sweepMonitor struct {
	watched goset.Set[watchable]
	ticker  *ticker.Ticker
	logger  log.Logger
}

// enforce compilation error
var _ monitor = (*sweepMonitor)(nil)

// newSweepMonitor creates and starts a sweepMonitor
func newSweepMonitor(interval time.Duration, logger log.Logger) (*sweepMonitor, error) {
	tk, err := ticker.New(interval)
	if err != nil {
		return nil, err
	}

	m := &sweepMonitor{
		watched: goset.NewSet[watchable](),
		ticker:  tk,
		logger:  logger,
	}

	m.ticker.Start(m.sweep)
	return m, nil
}

func (m *sweepMonitor) watch(w watchable) {
	m.watched.Add(w)
	w.onRelease(func() {
		m.watched.Remove(w)
	})
}

func (m *sweepMonitor) stop() {
	m.ticker.Stop()
}

// sweep resolves every watched waiter whose deadline passed or whose signal fired.
// Resolved waiters leave the watched set through their release hook.
func (m *sweepMonitor) sweep(now time.Time) {
	var settled int
	for _, w := range m.watched.ToSlice() {
		if w.settle(now) {
			settled++
		}
	}

	if settled > 0 {
		m.logger.Debugf("sweep settled %d pending receive(s)", settled)
	}
}
