// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package errorchain

import (
	"errors"
	"fmt"
	"strings"
)

type element struct {
	err  error
	msg  string
	next *element
}

// ErrorChain links a classifying error (usually a sentinel) with an optional message
// and the errors which caused it. errors.Is and errors.As walk the whole chain.
type ErrorChain struct { // nolint: errname
	head *element
	tail *element
}

func New(err error) *ErrorChain {
	chain := &ErrorChain{}

	return chain.causedBy(err, "")
}

func NewWithMessage(err error, message string) *ErrorChain {
	chain := &ErrorChain{}

	return chain.causedBy(err, message)
}

func NewWithMessagef(err error, format string, a ...any) *ErrorChain {
	chain := &ErrorChain{}

	return chain.causedBy(err, fmt.Sprintf(format, a...))
}

func (ec *ErrorChain) Error() string {
	errs := make([]string, 0, 2) //nolint:mnd

	for c := ec.head; c != nil; c = c.next {
		if len(c.msg) == 0 {
			errs = append(errs, c.err.Error())
		} else {
			errs = append(errs, fmt.Sprintf("%s: %s", c.err.Error(), c.msg))
		}
	}

	return strings.Join(errs, ": ")
}

func (ec *ErrorChain) CausedBy(err error) *ErrorChain {
	return ec.causedBy(err, "")
}

func (ec *ErrorChain) Unwrap() error {
	if ec.head == nil || ec.head.next == nil {
		return nil
	}

	return &ErrorChain{head: ec.head.next, tail: ec.tail}
}

func (ec *ErrorChain) Is(target error) bool {
	if ec.head == nil {
		return false
	}

	return errors.Is(ec.head.err, target)
}

func (ec *ErrorChain) As(target any) bool {
	if ec.head == nil {
		return false
	}

	return errors.As(ec.head.err, target)
}

// Message returns the message attached to the head of the chain.
func (ec *ErrorChain) Message() string {
	if ec.head == nil {
		return ""
	}

	return ec.head.msg
}

func (ec *ErrorChain) Errors() []error {
	var errs []error

	for c := ec.head; c != nil; c = c.next {
		errs = append(errs, c.err)
	}

	return errs
}

func (ec *ErrorChain) causedBy(err error, msg string) *ErrorChain {
	if err == nil {
		return ec
	}

	wrappedError := &element{err: err, msg: msg}

	if ec.head == nil {
		ec.head = wrappedError
		ec.tail = wrappedError

		return ec
	}

	ec.tail.next = wrappedError
	ec.tail = wrappedError

	return ec
}
