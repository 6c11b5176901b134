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

package future

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that value
// could not be made available.
//
// A Future is completed exactly once through its Completer. Any number of
// goroutines may observe it:
//
//	comp := future.NewCompleter[string]()
//	go func() { comp.Success("pong") }()
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	value, err := comp.Future().Await(ctx)
type Future[T any] interface {
	// Await blocks until the Future is completed or the context is canceled.
	// A canceled context returns the context error without affecting the Future:
	// a later Await still observes the completion.
	Await(ctx context.Context) (T, error)
	// Done returns a channel that is closed once the Future is completed.
	Done() <-chan struct{}
	// Poll returns the result when the Future is completed and false otherwise.
	// It never blocks.
	Poll() (*Result[T], bool)
	// Then registers a callback invoked with the outcome once the Future is
	// completed. Callbacks never run on the goroutine that completes the Future:
	// the ones registered before completion run in registration order on a
	// dedicated goroutine, and a callback registered after completion runs on
	// its own goroutine.
	Then(callback func(T, error))
}

// Completer is a writable, single-assignment container which completes a Future.
// Only the first call to Success or Failure takes effect; later calls are no-ops
// and report false.
type Completer[T any] interface {
	// Success completes the underlying Future with a value.
	Success(value T) bool
	// Failure fails the underlying Future with an error.
	Failure(err error) bool
	// Future returns the underlying Future.
	Future() Future[T]
}

// Result represents the outcome of a completed Future.
type Result[T any] struct {
	success T
	failure error
}

// Success returns the successful result of the Future.
// The zero value is returned when the Future failed.
func (x *Result[T]) Success() T {
	return x.success
}

// Failure returns the error the Future failed with, if any.
func (x *Result[T]) Failure() error {
	return x.failure
}

// New creates a Future completed with the outcome of the given task.
// The task runs on its own goroutine; a panic in the task fails the Future.
func New[T any](task func() (T, error)) Future[T] {
	comp := NewCompleter[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				comp.Failure(fmt.Errorf("task panicked: %v", r))
			}
		}()

		value, err := task()
		if err != nil {
			comp.Failure(err)
			return
		}
		comp.Success(value)
	}()
	return comp.Future()
}

// NewCompleter returns a Completer for a new pending Future.
func NewCompleter[T any]() Completer[T] {
	return &completer[T]{
		future: &future[T]{
			done: make(chan struct{}),
		},
	}
}

type future[T any] struct {
	completed atomic.Bool
	done      chan struct{}
	result    Result[T]

	mu        sync.Mutex
	notified  bool
	callbacks []func(T, error)
}

// enforce compilation error
var _ Future[any] = (*future[any])(nil)

// Await blocks until the Future is completed or the context is canceled.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.result.success, x.result.failure
	default:
	}

	select {
	case <-x.done:
		return x.result.success, x.result.failure
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the Future is completed.
func (x *future[T]) Done() <-chan struct{} {
	return x.done
}

// Poll returns the result without blocking.
func (x *future[T]) Poll() (*Result[T], bool) {
	select {
	case <-x.done:
		return &Result[T]{success: x.result.success, failure: x.result.failure}, true
	default:
		return nil, false
	}
}

// Then registers a completion callback.
func (x *future[T]) Then(callback func(T, error)) {
	if callback == nil {
		return
	}

	x.mu.Lock()
	if !x.notified {
		x.callbacks = append(x.callbacks, callback)
		x.mu.Unlock()
		return
	}
	x.mu.Unlock()
	go callback(x.result.success, x.result.failure)
}

// complete sets the outcome once. It reports whether this call won.
func (x *future[T]) complete(value T, err error) bool {
	if !x.completed.CompareAndSwap(false, true) {
		return false
	}

	x.result = Result[T]{success: value, failure: err}
	close(x.done)

	x.mu.Lock()
	x.notified = true
	callbacks := x.callbacks
	x.callbacks = nil
	x.mu.Unlock()

	if len(callbacks) > 0 {
		go func() {
			for _, callback := range callbacks {
				callback(value, err)
			}
		}()
	}
	return true
}

type completer[T any] struct {
	future *future[T]
}

// enforce compilation error
var _ Completer[any] = (*completer[any])(nil)

// Success completes the underlying Future with a given value.
func (p *completer[T]) Success(value T) bool {
	return p.future.complete(value, nil)
}

// Failure fails the underlying Future with a given error.
func (p *completer[T]) Failure(err error) bool {
	var zero T
	return p.future.complete(zero, err)
}

// Future returns the underlying Future.
func (p *completer[T]) Future() Future[T] {
	return p.future
}
