// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// globCache keeps the compiled form of the last seen upload.allowedFiles
type globCache struct {
	mu    sync.Mutex
	key   string
	globs []glob.Glob
}

func (c *globCache) get(patterns []string) ([]glob.Glob, error) {
	key := strings.Join(patterns, "\x00")
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.globs != nil && c.key == key {
		return c.globs, nil
	}
	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		globs[i] = g
	}
	c.key = key
	c.globs = globs
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
