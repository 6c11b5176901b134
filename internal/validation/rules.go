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

package validation

import (
	"fmt"
	"strings"
	"time"
)

// Number is the set of values accepted by NewPositiveValidator
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// NewBooleanValidator returns a Validator that reports err when condition is false
func NewBooleanValidator(condition bool, err error) Validator {
	return ValidatorFunc(func() error {
		if !condition {
			return err
		}
		return nil
	})
}

// NewPositiveValidator returns a Validator that requires value to be greater than zero
func NewPositiveValidator[N Number](name string, value N) Validator {
	return ValidatorFunc(func() error {
		if value <= 0 {
			return fmt.Errorf("%s must be greater than zero", name)
		}
		return nil
	})
}

// NewDurationValidator returns a Validator that requires a positive duration
func NewDurationValidator(name string, value time.Duration) Validator {
	return NewPositiveValidator(name, value)
}

// NewOneOfValidator returns a Validator that requires value to be one of allowed.
// The comparison is case-insensitive.
func NewOneOfValidator(name, value string, allowed ...string) Validator {
	return ValidatorFunc(func() error {
		for _, candidate := range allowed {
			if strings.EqualFold(candidate, value) {
				return nil
			}
		}
		return fmt.Errorf("%s=(%s) is not supported, expected one of [%s]", name, value, strings.Join(allowed, ", "))
	})
}
