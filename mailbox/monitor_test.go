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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/gomailbox/errors"
	"github.com/tochemey/gomailbox/internal/ticker"
	"github.com/tochemey/gomailbox/log"
)

func TestTimerMonitor(t *testing.T) {
	t.Run("With deadline reached", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		w := newWaiter[int](context.Background(), 10*time.Millisecond, nil)
		timerMonitor{}.watch(w)

		select {
		case <-w.future().Done():
		case <-time.After(time.Second):
			t.Fatal("waiter not expired")
		}
		assert.Equal(t, timedOut, waiterState(w.state.Load()))
	})
	t.Run("With context canceled", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx, cancel := context.WithCancel(context.Background())
		w := newWaiter[int](ctx, time.Hour, nil)
		timerMonitor{}.watch(w)
		cancel()

		_, err := w.future().Await(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrReceiveCanceled)
	})
	t.Run("With waiter fulfilled before the deadline", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx, cancel := context.WithCancel(context.Background())
		w := newWaiter[int](ctx, 20*time.Millisecond, nil)
		timerMonitor{}.watch(w)

		require.True(t, w.fulfill(1))
		// the timer and the context callback are released with the waiter
		cancel()
		time.Sleep(40 * time.Millisecond)
		assert.Equal(t, fulfilled, waiterState(w.state.Load()))
	})
}

func TestSweepMonitorSweep(t *testing.T) {
	t.Run("With expired and canceled waiters", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		m, err := newSweepMonitor(time.Hour, log.DiscardLogger)
		require.NoError(t, err)
		defer m.stop()

		ctx, cancel := context.WithCancel(context.Background())
		expiring := newWaiter[int](context.Background(), time.Minute, nil)
		canceling := newWaiter[int](ctx, -1, nil)
		idle := newWaiter[int](context.Background(), -1, nil)

		m.watch(expiring)
		m.watch(canceling)
		m.watch(idle)
		require.Equal(t, 3, m.watched.Cardinality())

		m.sweep(time.Now())
		assert.Equal(t, 3, m.watched.Cardinality())

		cancel()
		m.sweep(time.Now().Add(2 * time.Minute))
		assert.Equal(t, timedOut, waiterState(expiring.state.Load()))
		assert.Equal(t, canceled, waiterState(canceling.state.Load()))
		assert.Equal(t, pending, waiterState(idle.state.Load()))
		assert.Equal(t, 1, m.watched.Cardinality())

		require.True(t, idle.fulfill(1))
		assert.Zero(t, m.watched.Cardinality())
	})
	t.Run("With stop called twice", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		m, err := newSweepMonitor(time.Millisecond, log.DiscardLogger)
		require.NoError(t, err)
		assert.True(t, m.ticker.Running())
		m.stop()
		m.stop()
		assert.False(t, m.ticker.Running())
	})
}

func TestSweepMonitorInvalidInterval(t *testing.T) {
	m, err := newSweepMonitor(0, log.DiscardLogger)
	require.ErrorIs(t, err, ticker.ErrInvalidInterval)
	assert.Nil(t, m)
}
