// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package results

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/klauspost/compress/s2"
)

var ErrNotFound = errors.New("result not found")

// Entry is a deduplicated CSV kept between preview and download
type Entry struct {
	// FileName is the name offered to the downloading client
	FileName string

	// CSV is the serialized result, header included
	CSV []byte
}

// Store keeps entries in an in-memory badger instance. Every entry expires
// after the store's TTL.
type Store struct {
	db  *badger.DB
	ttl atomic.Int64
}

// NewStore opens an in-memory store whose entries live for ttl
func NewStore(ttl time.Duration, logger logr.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(&badgerLogger{logger: logger.WithName("badger")}).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening result store: %v", err)
	}
	s := &Store{db: db}
	s.SetTTL(ttl)
	return s, nil
}

// SetTTL changes the TTL of entries saved from now on
func (s *Store) SetTTL(ttl time.Duration) {
	s.ttl.Store(int64(ttl))
}

func (s *Store) TTL() time.Duration {
	return time.Duration(s.ttl.Load())
}

func encodeEntry(e *Entry) []byte {
	b := make([]byte, 0, binary.MaxVarintLen64+len(e.FileName)+len(e.CSV))
	b = binary.AppendUvarint(b, uint64(len(e.FileName)))
	b = append(b, e.FileName...)
	b = append(b, e.CSV...)
	return s2.Encode(nil, b)
}

func decodeEntry(v []byte) (*Entry, error) {
	b, err := s2.Decode(nil, v)
	if err != nil {
		return nil, err
	}
	n, k := binary.Uvarint(b)
	if k <= 0 || uint64(len(b)-k) < n {
		return nil, fmt.Errorf("corrupted result entry")
	}
	b = b[k:]
	return &Entry{
		FileName: string(b[:n]),
		CSV:      b[n:],
	}, nil
}

// Save stores e under a new random id
func (s *Store) Save(e *Entry) (uuid.UUID, error) {
	id := uuid.New()
	v := encodeEntry(e)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(id[:], v).WithTTL(s.TTL()))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Get returns the entry saved under id, or ErrNotFound once it expired
func (s *Store) Get(id uuid.UUID) (e *Entry, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(id[:])
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			e, err = decodeEntry(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(id[:])
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
