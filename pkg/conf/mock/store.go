// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package confmock

import "github.com/wrgl/csvdedup/pkg/conf"

type Store struct {
	c conf.Config
}

func NewStore(c *conf.Config) *Store {
	s := &Store{}
	if c != nil {
		s.c = *c
	}
	return s
}

func (s *Store) Open() (*conf.Config, error) {
	c := s.c
	return &c, nil
}
