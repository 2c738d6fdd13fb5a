// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const UnitKiB int = decor.UnitKiB

type Container interface {
	NewBar(total int64, name string, unit int) Bar
	Wait()
}

type noopContainer struct{}

func (c *noopContainer) NewBar(total int64, name string, unit int) Bar {
	return &noopBar{}
}

func (c *noopContainer) Wait() {}

// NewNoopContainer returns a container whose bars render nothing
func NewNoopContainer() Container {
	return &noopContainer{}
}

type container struct {
	p   *mpb.Progress
	out io.Writer
}

func NewContainer(out io.Writer) Container {
	return &container{out: out}
}

func (c *container) NewBar(total int64, name string, unit int) Bar {
	if c.p == nil {
		c.p = mpb.New(mpb.WithOutput(c.out))
	}
	pairFmt := "%d / %d"
	if unit != 0 {
		pairFmt = "% .2f / % .2f"
	}
	options := []mpb.BarOption{
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DidentRight}),
			decor.Counters(unit, pairFmt),
		),
		mpb.BarRemoveOnComplete(),
	}
	if total > 0 {
		options = append(options, mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5, C: decor.DidentRight}),
			decor.Elapsed(decor.ET_STYLE_GO),
		))
	} else {
		options = append(options, mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)))
	}
	b := c.p.New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		options...,
	)
	b.EnableTriggerComplete()
	return &bar{b: b, total: total}
}

func (c *container) Wait() {
	if c.p == nil {
		return
	}
	c.p.Wait()
	c.p = nil
}
