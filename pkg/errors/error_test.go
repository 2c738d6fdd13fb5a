// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	err1 := fmt.Errorf("my new error")
	err2 := Wrap("read table 1", err1)
	assert.Equal(t, "read table 1: my new error", err2.Error())
	assert.Equal(t, err1, Unwrap(err2))
	assert.Nil(t, Wrap("noop", nil))

	err3 := Wrapf(io.ErrUnexpectedEOF, "read table %d", 2)
	assert.Equal(t, "read table 2: unexpected EOF", err3.Error())
	assert.True(t, Is(err3, io.ErrUnexpectedEOF))
	var e *Error
	assert.True(t, As(err3, &e))
	assert.Equal(t, "read table 2", e.Op)
}

func TestContains(t *testing.T) {
	err1 := fmt.Errorf("my new error")
	err2 := Wrap("err 2", err1)
	err3 := fmt.Errorf("another error")
	assert.True(t, Contains(err1, err1))
	assert.True(t, Contains(err2, err1))
	assert.True(t, Contains(err2, err1.Error()))
	assert.False(t, Contains(err3, err1))
	assert.False(t, Contains(err1, 123))
	assert.True(t, Contains(nil, nil))
	assert.False(t, Contains(nil, ""))
	assert.False(t, Contains(err1, nil))
}
