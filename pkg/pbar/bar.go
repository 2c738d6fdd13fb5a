// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"github.com/vbauerster/mpb/v8"
)

type Bar interface {
	Incr()
	IncrBy(n int)
	SetTotal(total int64)
	Done()
	Abort()
}

type noopBar struct{}

func (b *noopBar) Incr()                {}
func (b *noopBar) IncrBy(n int)         {}
func (b *noopBar) SetTotal(total int64) {}
func (b *noopBar) Done()                {}
func (b *noopBar) Abort()               {}

func NewNoopBar() Bar {
	return &noopBar{}
}

type bar struct {
	b     *mpb.Bar
	total int64
}

func (b *bar) Incr() {
	b.IncrBy(1)
}

func (b *bar) IncrBy(n int) {
	b.b.IncrBy(n)
	if b.total <= 0 {
		// keep an unknown total growing with the current count
		b.b.SetTotal(-1, false)
	}
}

func (b *bar) SetTotal(total int64) {
	b.total = total
	b.b.SetTotal(total, false)
}

func (b *bar) Done() {
	if b.b.IsRunning() {
		b.b.SetTotal(-1, true)
	}
	b.b.Wait()
}

func (b *bar) Abort() {
	if b.b.IsRunning() {
		b.b.Abort(true)
	}
	b.b.Wait()
}
