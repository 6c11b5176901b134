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
	"sync/atomic"

	uatomic "go.uber.org/atomic"
)

type linkedNode[T any] struct {
	value T
	next  atomic.Pointer[linkedNode[T]]
}

// Linked is a concurrent non-blocking FIFO queue (Michael-Scott).
// It is safe for any number of concurrent producers and consumers.
type Linked[T any] struct {
	head, tail atomic.Pointer[linkedNode[T]]
	length     uatomic.Int64
}

// NewLinked creates an instance of Linked
func NewLinked[T any]() *Linked[T] {
	empty := new(linkedNode[T])
	lnk := new(Linked[T])
	lnk.head.Store(empty)
	lnk.tail.Store(empty)
	return lnk
}

// Push places the given value at the tail of the queue.
func (q *Linked[T]) Push(value T) {
	node := &linkedNode[T]{value: value}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}

		if next != nil {
			// tail is lagging behind, help move it forward
			q.tail.CompareAndSwap(tail, next)
			continue
		}

		if tail.next.CompareAndSwap(nil, node) {
			q.tail.CompareAndSwap(tail, node)
			q.length.Inc()
			return
		}
	}
}

// Pop removes the value at the head of the queue.
// It returns false when the queue is empty.
func (q *Linked[T]) Pop() (T, bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}

		if next == nil {
			var zero T
			return zero, false
		}

		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}

		if q.head.CompareAndSwap(head, next) {
			value := next.value
			// next is the new sentinel, drop its reference to the value
			var zero T
			next.value = zero
			q.length.Dec()
			return value, true
		}
	}
}

// Peek returns the value at the head of the queue without removing it.
// It returns false when the queue is empty. The result is only stable
// when the caller is the single consumer of the queue.
func (q *Linked[T]) Peek() (T, bool) {
	next := q.head.Load().next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	return next.value, true
}

// Len returns a best-effort snapshot of the number of values in the queue.
func (q *Linked[T]) Len() int {
	if n := q.length.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// IsEmpty returns true when the queue is empty
func (q *Linked[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}
