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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/gomailbox/errors"
)

func TestWaiter(t *testing.T) {
	t.Run("With fulfill", func(t *testing.T) {
		var notified waiterState = pending
		w := newWaiter[string](context.Background(), -1, func(_ *waiter[string], state waiterState) {
			notified = state
		})

		_, ok := w.expiry()
		assert.False(t, ok)
		assert.False(t, w.settle(time.Now()))

		require.True(t, w.fulfill("A"))
		assert.Equal(t, fulfilled, notified)
		assert.True(t, w.done())

		// terminal waiters are never resolved twice
		assert.False(t, w.fulfill("B"))
		assert.False(t, w.expire())
		assert.False(t, w.cancel())
		assert.True(t, w.settle(time.Now()))

		result, done := w.future().Poll()
		require.True(t, done)
		assert.Equal(t, "A", result.Success())
	})
	t.Run("With settle on deadline", func(t *testing.T) {
		w := newWaiter[int](context.Background(), 10*time.Millisecond, nil)
		deadline, ok := w.expiry()
		require.True(t, ok)
		assert.Equal(t, w.created.Add(10*time.Millisecond), deadline)

		assert.False(t, w.settle(deadline.Add(-time.Nanosecond)))
		assert.True(t, w.settle(deadline))
		assert.Equal(t, timedOut, waiterState(w.state.Load()))

		result, done := w.future().Poll()
		require.True(t, done)
		assert.ErrorIs(t, result.Failure(), gerrors.ErrReceiveTimeout)
	})
	t.Run("With settle on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		w := newWaiter[int](ctx, time.Hour, nil)
		assert.False(t, w.settle(time.Now()))

		cancel()
		assert.True(t, w.settle(time.Now()))
		assert.Equal(t, canceled, waiterState(w.state.Load()))

		result, done := w.future().Poll()
		require.True(t, done)
		assert.ErrorIs(t, result.Failure(), gerrors.ErrReceiveCanceled)
		assert.ErrorIs(t, result.Failure(), context.Canceled)
	})
	t.Run("With timeout taking precedence over cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := newWaiter[int](ctx, 0, nil)
		assert.True(t, w.settle(w.created))
		assert.Equal(t, timedOut, waiterState(w.state.Load()))
	})
	t.Run("With release hooks run once", func(t *testing.T) {
		w := newWaiter[int](context.Background(), -1, nil)
		var calls atomic.Int32
		w.onRelease(func() { calls.Inc() })
		w.onRelease(func() { calls.Inc() })
		assert.Zero(t, calls.Load())

		require.True(t, w.expire())
		assert.EqualValues(t, 2, calls.Load())

		// hooks registered after the release run immediately
		w.onRelease(func() { calls.Inc() })
		assert.EqualValues(t, 3, calls.Load())
	})
	t.Run("With concurrent resolution", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			var notifications atomic.Int32
			w := newWaiter[int](context.Background(), -1, func(*waiter[int], waiterState) {
				notifications.Inc()
			})

			var (
				wg   sync.WaitGroup
				wins atomic.Int32
			)
			wg.Add(3)
			go func() {
				defer wg.Done()
				if w.fulfill(i) {
					wins.Inc()
				}
			}()
			go func() {
				defer wg.Done()
				if w.expire() {
					wins.Inc()
				}
			}()
			go func() {
				defer wg.Done()
				if w.cancel() {
					wins.Inc()
				}
			}()
			wg.Wait()

			assert.EqualValues(t, 1, wins.Load())
			assert.EqualValues(t, 1, notifications.Load())
		}
	})
	t.Run("With state names", func(t *testing.T) {
		assert.Equal(t, "pending", pending.String())
		assert.Equal(t, "fulfilled", fulfilled.String())
		assert.Equal(t, "timed-out", timedOut.String())
		assert.Equal(t, "canceled", canceled.String())
		assert.Equal(t, "unknown", waiterState(42).String())
	})
}
