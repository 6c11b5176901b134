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

package queue

import (
	"sync"

	"github.com/eapache/queue"
)

// Unbounded is a mutex-guarded FIFO queue without capacity limit.
// Storage is a ring buffer that grows and shrinks with the number of values.
type Unbounded[T any] struct {
	mu    sync.Mutex
	nodes *queue.Queue
}

// NewUnbounded creates an instance of Unbounded
func NewUnbounded[T any]() *Unbounded[T] {
	return &Unbounded[T]{
		nodes: queue.New(),
	}
}

// Push adds a value to the back of the queue.
// It can be safely called from multiple goroutines.
func (q *Unbounded[T]) Push(value T) {
	q.mu.Lock()
	q.nodes.Add(value)
	q.mu.Unlock()
}

// Pop removes the value at the front of the queue.
// It returns false when the queue is empty.
func (q *Unbounded[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.nodes.Length() == 0 {
		var zero T
		return zero, false
	}
	// comma-ok keeps nil interface values from panicking
	value, _ := q.nodes.Remove().(T)
	return value, true
}

// Len returns the current length of the queue.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	l := q.nodes.Length()
	q.mu.Unlock()
	return l
}

// IsEmpty returns true when the queue is empty
func (q *Unbounded[T]) IsEmpty() bool {
	return q.Len() == 0
}
