// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/wrgl/csvdedup/pkg/conf"
	"gopkg.in/yaml.v3"
)

// Store reads config from an optional YAML file and merges it over
// conf.Default. The last successfully read config is kept so that readers
// never observe a partial reload.
type Store struct {
	fp      string
	logger  logr.Logger
	current atomic.Pointer[conf.Config]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a store reading from fp. An empty fp means defaults only.
func NewStore(fp string, logger logr.Logger) *Store {
	if fp != "" {
		fp = filepath.Clean(fp)
	}
	return &Store{
		fp:     fp,
		logger: logger.WithName("conffs"),
	}
}

func (s *Store) readConfig() (*conf.Config, error) {
	c := &conf.Config{}
	if s.fp == "" {
		return c, nil
	}
	f, err := os.Open(s.fp)
	if err == nil {
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// Open reads the config file and makes the result current
func (s *Store) Open() (*conf.Config, error) {
	c, err := s.readConfig()
	if err != nil {
		return nil, err
	}
	c, err = mergeOverDefaults(c)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	s.current.Store(c)
	return c, nil
}

// Current returns the last config returned by Open. It opens the store on
// first use.
func (s *Store) Current() *conf.Config {
	if c := s.current.Load(); c != nil {
		return c
	}
	c, err := s.Open()
	if err != nil {
		s.logger.Error(err, "error reading config, falling back to defaults")
		c = conf.Default()
		s.current.Store(c)
	}
	return c
}

// Watch reloads the config whenever the file is written or created.
// onReload, if not nil, receives every successfully reloaded config. A
// reload that fails keeps the previous config.
func (s *Store) Watch(onReload func(c *conf.Config)) (err error) {
	if s.fp == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}
	s.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err = s.watcher.Add(filepath.Dir(s.fp)); err != nil {
		s.watcher.Close()
		s.watcher = nil
		return err
	}
	s.done = make(chan struct{})
	go s.watch(s.watcher, s.done, onReload)
	return nil
}

func (s *Store) watch(w *fsnotify.Watcher, done chan struct{}, onReload func(c *conf.Config)) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if filepath.Clean(event.Name) != s.fp {
					continue
				}
				c, err := s.Open()
				if err != nil {
					s.logger.Error(err, "error reloading config", "file", s.fp)
					continue
				}
				s.logger.V(1).Info("config reloaded", "file", s.fp)
				if onReload != nil {
					onReload(c)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Error(err, "config watcher error")
		}
	}
}

// Close stops watching and waits for the watch goroutine to exit
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	<-s.done
	s.watcher = nil
	return err
}
