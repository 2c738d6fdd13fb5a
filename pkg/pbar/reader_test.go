// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBar struct {
	noopBar
	n       int
	done    bool
	aborted bool
}

func (b *countingBar) IncrBy(n int) { b.n += n }
func (b *countingBar) Done()        { b.done = true }
func (b *countingBar) Abort()       { b.aborted = true }

func TestReader(t *testing.T) {
	b := &countingBar{}
	content := []byte("url,score\na,1\nb,2\n")
	out, err := io.ReadAll(NewReader(b, bytes.NewReader(content)))
	require.NoError(t, err)
	assert.Equal(t, content, out)
	assert.Equal(t, len(content), b.n)
	assert.True(t, b.done)
	assert.False(t, b.aborted)
}

func TestNoopContainer(t *testing.T) {
	c := NewNoopContainer()
	bar := c.NewBar(-1, "Reading rows", 0)
	bar.Incr()
	bar.SetTotal(10)
	bar.Done()
	c.Wait()
}
