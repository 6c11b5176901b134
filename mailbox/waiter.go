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
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/gomailbox/errors"
	"github.com/tochemey/gomailbox/future"
)

// waiterState is the lifecycle of a pending receive.
// pending is the only non-terminal state.
type waiterState int32

const (
	pending waiterState = iota
	fulfilled
	timedOut
	canceled
)

// String returns the state name
func (s waiterState) String() string {
	switch s {
	case pending:
		return "pending"
	case fulfilled:
		return "fulfilled"
	case timedOut:
		return "timed-out"
	case canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// watchable is what a monitor needs from a waiter, independent of the
// mailbox element type.
type watchable interface {
	// expiry returns the absolute deadline and false when the waiter never expires.
	expiry() (time.Time, bool)
	// signal returns the cancellation signal of the waiter.
	signal() context.Context
	// settle resolves the waiter when its deadline passed or its signal fired
	// and reports whether the waiter is terminal.
	settle(now time.Time) bool
	// expire resolves the waiter with a timeout error.
	expire() bool
	// cancel resolves the waiter with a cancellation error.
	cancel() bool
	// onRelease registers a hook run once the waiter is resolved.
	onRelease(hook func())
}

// waiter is a pending Receive call.
type waiter[T any] struct {
	id        string
	created   time.Time
	deadline  time.Time
	ctx       context.Context
	state     atomic.Int32
	completer future.Completer[T]
	notify    func(*waiter[T], waiterState)
	// registered is set once the waiter enters the registry
	registered atomic.Bool

	mu       sync.Mutex
	released bool
	hooks    []func()
}

// enforce compilation error
var _ watchable = (*waiter[any])(nil)

// newWaiter creates a pending waiter. A negative timeout means the waiter never expires.
func newWaiter[T any](ctx context.Context, timeout time.Duration, notify func(*waiter[T], waiterState)) *waiter[T] {
	w := &waiter[T]{
		id:        uuid.NewString(),
		created:   time.Now(),
		ctx:       ctx,
		completer: future.NewCompleter[T](),
		notify:    notify,
	}

	if timeout >= 0 {
		w.deadline = w.created.Add(timeout)
	}
	return w
}

// future returns the completion handle of the waiter
func (w *waiter[T]) future() future.Future[T] {
	return w.completer.Future()
}

func (w *waiter[T]) expiry() (time.Time, bool) {
	return w.deadline, !w.deadline.IsZero()
}

func (w *waiter[T]) signal() context.Context {
	return w.ctx
}

// expired reports whether the deadline is reached at the given time
func (w *waiter[T]) expired(now time.Time) bool {
	return !w.deadline.IsZero() && !now.Before(w.deadline)
}

// cancelRequested reports whether the cancellation signal fired
func (w *waiter[T]) cancelRequested() bool {
	return w.ctx.Err() != nil
}

// done reports whether the waiter reached a terminal state
func (w *waiter[T]) done() bool {
	return waiterState(w.state.Load()) != pending
}

func (w *waiter[T]) settle(now time.Time) bool {
	if w.done() {
		return true
	}

	switch {
	case w.expired(now):
		w.expire()
	case w.cancelRequested():
		w.cancel()
	default:
		return false
	}

	// another party may have won the race, either way the waiter is terminal
	return true
}

// fulfill hands the message to the waiter. It returns false when the
// waiter was already resolved, in which case the caller keeps the message.
func (w *waiter[T]) fulfill(message T) bool {
	return w.resolve(fulfilled, message, nil)
}

func (w *waiter[T]) expire() bool {
	var zero T
	return w.resolve(timedOut, zero, gerrors.ErrReceiveTimeout)
}

func (w *waiter[T]) cancel() bool {
	var zero T
	return w.resolve(canceled, zero, gerrors.NewErrReceiveCanceled(context.Cause(w.ctx)))
}

func (w *waiter[T]) onRelease(hook func()) {
	w.mu.Lock()
	if !w.released {
		w.hooks = append(w.hooks, hook)
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	hook()
}

// resolve moves the waiter out of pending. Only one caller can win;
// the winner runs the release hooks, notifies the mailbox and completes the future.
func (w *waiter[T]) resolve(target waiterState, message T, err error) bool {
	if !w.state.CompareAndSwap(int32(pending), int32(target)) {
		return false
	}

	w.mu.Lock()
	w.released = true
	hooks := w.hooks
	w.hooks = nil
	w.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	// the mailbox bookkeeping is settled before the caller observes the outcome
	if w.notify != nil {
		w.notify(w, target)
	}

	if err != nil {
		w.completer.Failure(err)
	} else {
		w.completer.Success(message)
	}
	return true
}
