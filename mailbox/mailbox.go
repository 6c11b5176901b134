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
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/gomailbox/future"
	"github.com/tochemey/gomailbox/internal/queue"
	"github.com/tochemey/gomailbox/log"
)

// Mailbox is an unbounded asynchronous mailbox of messages of type T.
//
// Post never blocks and always succeeds. Receive never blocks either: it returns
// a future that completes with the next message, or fails with
// errors.ErrReceiveTimeout when its timeout elapses first, or with
// errors.ErrReceiveCanceled when its context is done first.
// Every posted message is delivered to exactly one receive.
//
// Messages are handed out in the order they were posted and pending receives
// are served in the order they were registered.
//
// Both queues are paired through a signed balance: a positive balance is the
// number of buffered messages owed to receives, a negative balance the number
// of registered receives owed a message. A post and a receive racing on an
// empty mailbox always meet through the balance.
//
// Receives that time out or are canceled while registered are dropped from
// the head of the registry as soon as they resolve, so an idle mailbox polled
// with timeouts does not accumulate them.
type Mailbox[T any] struct {
	name     string
	messages *queue.Unbounded[T]
	waiters  *queue.Linked[*waiter[T]]
	balance  atomic.Int64
	// pending counts the registered receives not yet resolved
	pending atomic.Int64
	// claimMu serializes the consumers of the registry
	claimMu  sync.Mutex
	monitor  monitor
	logger   log.Logger
	metrics  *metrics
	disposed atomic.Bool
}

// New creates an instance of Mailbox
func New[T any](opts ...Option) (*Mailbox[T], error) {
	cfg := newConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mailbox[T]{
		name:     cfg.name,
		messages: queue.NewUnbounded[T](),
		waiters:  queue.NewLinked[*waiter[T]](),
		logger:   cfg.logger.With("mailbox", cfg.name),
	}

	instruments, err := newMetrics(cfg.meterProvider.Meter(instrumentationName), cfg.name, func() (int64, int64) {
		return int64(m.MessageCount()), int64(m.PendingCount())
	})
	if err != nil {
		return nil, err
	}
	m.metrics = instruments

	switch cfg.strategy {
	case SweepStrategy:
		sweeper, err := newSweepMonitor(cfg.sweepInterval, m.logger)
		if err != nil {
			_ = m.metrics.unregister()
			return nil, err
		}
		m.monitor = sweeper
	default:
		m.monitor = timerMonitor{}
	}

	m.logger.Infof("mailbox=(%s) started with %s monitor", m.name, cfg.strategy)
	return m, nil
}

// Name returns the mailbox name
func (m *Mailbox[T]) Name() string {
	return m.name
}

// Post adds a message to the mailbox. When receives are pending, the oldest
// live one is completed with the message; otherwise the message is buffered.
// Post is safe for concurrent use and never blocks: callbacks registered with
// future.Future.Then run on their own goroutine.
func (m *Mailbox[T]) Post(message T) {
	m.metrics.posted()
	m.post(message)
}

func (m *Mailbox[T]) post(message T) {
	for {
		if m.balance.Inc() > 0 {
			m.messages.Push(message)
			return
		}

		// a registered receive is owed this message. Waiters that reached their
		// deadline or whose context is done are settled and dropped here.
		w := m.claimWaiter()
		if w.settle(time.Now()) {
			continue
		}

		if w.fulfill(message) {
			return
		}
	}
}

// Receive registers a request for the next message and returns a future
// completed with that message. Receive returns errors.ErrInvalidTimeout when
// WithTimeout is given a negative duration; the mailbox is left untouched.
//
// The future fails with errors.ErrReceiveTimeout when the timeout elapses before
// a message arrives, and with errors.ErrReceiveCanceled, joined with the context
// cause, when ctx is done first. A nil ctx is treated as context.Background.
func (m *Mailbox[T]) Receive(ctx context.Context, opts ...ReceiveOption) (future.Future[T], error) {
	cfg := newReceiveConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	w := newWaiter(ctx, cfg.waitFor(), m.observe)
	if w.settle(w.created) {
		return w.future(), nil
	}

	if m.balance.Dec() >= 0 {
		// nothing else holds the waiter yet, so the fulfillment cannot lose
		w.fulfill(m.claimMessage())
		return w.future(), nil
	}

	m.pending.Inc()
	w.registered.Store(true)
	m.waiters.Push(w)
	m.monitor.watch(w)
	return w.future(), nil
}

// TryReceive returns the oldest buffered message without registering a receive.
// It returns false when no message is buffered.
func (m *Mailbox[T]) TryReceive() (T, bool) {
	for {
		balance := m.balance.Load()
		if balance <= 0 {
			var zero T
			return zero, false
		}

		if m.balance.CompareAndSwap(balance, balance-1) {
			message := m.claimMessage()
			m.metrics.resolved(fulfilled)
			return message, true
		}
	}
}

// MessageCount returns the number of buffered messages.
// The value is a snapshot and may be stale under concurrent use.
func (m *Mailbox[T]) MessageCount() int {
	return m.messages.Len()
}

// PendingCount returns the number of registered receives still waiting for a message.
// The value is a snapshot and may be stale under concurrent use.
func (m *Mailbox[T]) PendingCount() int {
	if n := m.pending.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Dispose stops the background monitoring and unregisters the mailbox
// instruments. Pending receives are not resolved. The mailbox must not be
// used after Dispose.
func (m *Mailbox[T]) Dispose() {
	if !m.disposed.CompareAndSwap(false, true) {
		return
	}

	m.monitor.stop()
	if err := m.metrics.unregister(); err != nil {
		m.logger.Warnf("mailbox=(%s) failed to unregister instruments: %v", m.name, err)
	}

	m.logger.Infof("mailbox=(%s) disposed with %d buffered message(s) and %d pending receive(s)",
		m.name, m.MessageCount(), m.PendingCount())
}

// claimWaiter pops the waiter owed to the caller by the balance.
// The registering receive may still be pushing it.
func (m *Mailbox[T]) claimWaiter() *waiter[T] {
	m.claimMu.Lock()
	defer m.claimMu.Unlock()
	for {
		if w, ok := m.waiters.Pop(); ok {
			return w
		}
		runtime.Gosched()
	}
}

// compact drops resolved waiters from the head of the registry and gives
// their balance units back. It stops at the first live waiter, or when every
// remaining waiter is already owed to a concurrent Post.
func (m *Mailbox[T]) compact() {
	m.claimMu.Lock()
	defer m.claimMu.Unlock()
	for {
		head, ok := m.waiters.Peek()
		if !ok || !head.done() {
			return
		}

		balance := m.balance.Load()
		if balance >= 0 {
			return
		}

		if m.balance.CompareAndSwap(balance, balance+1) {
			m.waiters.Pop()
		}
	}
}

// claimMessage pops the message owed to the caller by the balance.
// The posting goroutine may still be pushing it.
func (m *Mailbox[T]) claimMessage() T {
	for {
		if message, ok := m.messages.Pop(); ok {
			return message
		}
		runtime.Gosched()
	}
}

// observe is invoked once per receive with its terminal state
func (m *Mailbox[T]) observe(w *waiter[T], state waiterState) {
	m.metrics.resolved(state)
	if w.registered.Load() {
		live := m.pending.Dec()
		// a fulfilled waiter already left the registry, resolved ones behind it may remain
		if state != fulfilled || int64(m.waiters.Len()) > live {
			m.compact()
		}
	}

	switch state {
	case timedOut:
		m.logger.Debugf("receive=(%s) timed out after %s", w.id, time.Since(w.created))
	case canceled:
		m.logger.Debugf("receive=(%s) canceled: %v", w.id, context.Cause(w.ctx))
	default:
	}
}
