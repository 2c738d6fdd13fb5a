// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package results

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/pkg/testutils"
	"go.uber.org/goleak"
)

func newStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(ttl, logr.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestSaveGetDelete(t *testing.T) {
	s := newStore(t, time.Minute)
	e := &Entry{
		FileName: "output_without_duplicates.csv",
		CSV:      testutils.CSVBytes(t, testutils.BuildRawCSV(4, 100)),
	}
	id, err := s.Save(e)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	e2, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, e, e2)

	id2, err := s.Save(&Entry{FileName: "output_without_duplicates_single.csv"})
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
	e3, err := s.Get(id2)
	require.NoError(t, err)
	assert.Equal(t, "output_without_duplicates_single.csv", e3.FileName)
	assert.Empty(t, e3.CSV)

	require.NoError(t, s.Delete(id))
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiredEntry(t *testing.T) {
	s := newStore(t, time.Second)
	assert.Equal(t, time.Second, s.TTL())
	id, err := s.Save(&Entry{FileName: "a.csv", CSV: []byte("a\n1\n")})
	require.NoError(t, err)
	_, err = s.Get(id)
	require.NoError(t, err)

	testutils.Retry(t, 200*time.Millisecond, 20, func() bool {
		_, err := s.Get(id)
		return err == ErrNotFound
	}, "entry did not expire")

	s.SetTTL(time.Hour)
	id, err = s.Save(&Entry{FileName: "b.csv"})
	require.NoError(t, err)
	time.Sleep(1500 * time.Millisecond)
	_, err = s.Get(id)
	assert.NoError(t, err)
}

func TestDecodeCorruptedEntry(t *testing.T) {
	_, err := decodeEntry([]byte("not s2"))
	assert.Error(t, err)
}

func TestBadgerLogger(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	stdr.SetVerbosity(1)
	defer stdr.SetVerbosity(0)
	l := &badgerLogger{logger: stdr.New(log.New(buf, "", 0))}
	l.Infof("opened %d tables\n", 3)
	l.Debugf("hidden")
	assert.Contains(t, buf.String(), `"msg"="opened 3 tables"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestCloseLeavesNoGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreCurrent(),
	)
	s, err := NewStore(time.Minute, logr.Discard())
	require.NoError(t, err)
	_, err = s.Save(&Entry{FileName: "a.csv", CSV: []byte("a\n")})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
