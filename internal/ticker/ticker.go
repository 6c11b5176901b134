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

package ticker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidInterval is returned when a Ticker is created with a non-positive interval
var ErrInvalidInterval = errors.New("ticker interval must be greater than zero")

// Ticker runs a function at a fixed interval on a dedicated goroutine.
// Ticks that fire while the function is still running are dropped.
type Ticker struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an instance of Ticker
func New(interval time.Duration) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Ticker{interval: interval}, nil
}

// Interval returns the ticker interval
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start runs fn every interval until Stop is called.
// It returns false when the ticker is already running.
func (t *Ticker) Start(fn func(now time.Time)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(ctx, fn, t.done)
	return true
}

// Stop stops the ticker and waits for a running fn to return.
// The ticker can be started again afterwards. Stop must not be called from fn.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return
	}

	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
}

// Running reports whether the ticker is started
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Ticker) run(ctx context.Context, fn func(time.Time), done chan<- struct{}) {
	defer close(done)
	clock := time.NewTicker(t.interval)
	defer clock.Stop()
	for {
		select {
		case now := <-clock.C:
			// stop wins over a tick that fired concurrently
			if ctx.Err() != nil {
				return
			}
			fn(now)
		case <-ctx.Done():
			return
		}
	}
}
