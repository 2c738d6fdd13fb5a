// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package errors

import (
	"errors"
	"fmt"
)

// Error annotates an underlying error with the operation that produced it.
type Error struct {
	Op  string
	err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Wrap returns nil if err is nil
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, err: err}
}

// Wrapf is Wrap with a formatted operation name
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Op: fmt.Sprintf(format, args...), err: err}
}

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Contains reports whether err or any error it wraps has the given message.
// v can be a string or an error.
func Contains(err error, v interface{}) bool {
	var s string
	if v == nil {
		return err == nil
	}
	if err == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		s = t
	case error:
		s = t.Error()
	default:
		return false
	}
	for ; err != nil; err = Unwrap(err) {
		if err.Error() == s {
			return true
		}
	}
	return false
}
