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

package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeout is returned synchronously by Receive when the given timeout
	// is negative.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrReceiveTimeout indicates that a pending receive reached its deadline before
	// a message was delivered to it.
	ErrReceiveTimeout = errors.New("receive timed out")

	// ErrReceiveCanceled indicates that the cancellation signal of a pending receive
	// fired before a message was delivered to it.
	ErrReceiveCanceled = errors.New("receive canceled")

	// ErrInvalidSweepInterval is returned when the sweep monitor is configured with an
	// interval less than or equal to zero.
	ErrInvalidSweepInterval = errors.New("invalid sweep interval, must be greater than zero")

	// ErrInvalidMailboxName is returned when a mailbox is configured with an empty name.
	ErrInvalidMailboxName = errors.New("mailbox name is required")
)

// NewErrInvalidTimeout formats an ErrInvalidTimeout with the given timeout.
func NewErrInvalidTimeout(timeout time.Duration) error {
	return fmt.Errorf("timeout=(%s) %w", timeout, ErrInvalidTimeout)
}

// NewErrReceiveCanceled joins ErrReceiveCanceled with the cause of the cancellation.
// A nil cause yields ErrReceiveCanceled.
func NewErrReceiveCanceled(cause error) error {
	if cause == nil {
		return ErrReceiveCanceled
	}
	return errors.Join(ErrReceiveCanceled, cause)
}
