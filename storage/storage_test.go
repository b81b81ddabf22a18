// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func index(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

func openMemory(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	return db
}

func TestPoolsAreSeparate(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Transfers.Put([]byte("k"), []byte("transfer"))
	db.Pool.Meta.Put([]byte("k"), []byte("meta"))
	db.Pool.Counter.PutN([]byte("count"), 42)
	assert.Nil(t, db.Commit(), "commit error")

	v, err := db.Pool.Transfers.Get([]byte("k"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("transfer"), v, "wrong transfer value")

	v, err = db.Pool.Meta.Get([]byte("k"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("meta"), v, "wrong meta value")

	n, found, err := db.Pool.Counter.GetN([]byte("count"))
	assert.Nil(t, err, "getN error")
	assert.True(t, found, "count not found")
	assert.Equal(t, uint64(42), n, "wrong count")

	has, err := db.Pool.Digests.Has([]byte("k"))
	assert.Nil(t, err, "has error")
	assert.False(t, has, "key leaked into another pool")

	v, err = db.Pool.Digests.Get([]byte("k"))
	assert.Nil(t, err, "missing key must not be an error")
	assert.Nil(t, v, "missing key must be nil")
}

func TestAbortDiscards(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Transfers.Put(index(0), []byte("a"))
	db.Abort()

	_, found, err := db.Pool.Transfers.LastElement()
	assert.Nil(t, err, "last element error")
	assert.False(t, found, "aborted data was stored")
}

func TestCursorKeepsInsertionOrder(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	// enough records to cross a byte boundary in the index
	const total = 300
	assert.Nil(t, db.Begin(), "begin error")
	for i := uint64(0); i < total; i += 1 {
		db.Pool.Transfers.Put(index(i), index(i))
	}
	assert.Nil(t, db.Commit(), "commit error")

	cursor := db.Pool.Transfers.NewFetchCursor()
	expected := uint64(0)
	for {
		elements, err := cursor.Fetch(7)
		assert.Nil(t, err, "fetch error")
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			assert.Equal(t, index(expected), e.Key, "out of order")
			expected += 1
		}
	}
	assert.Equal(t, uint64(total), expected, "wrong number of elements")

	last, found, err := db.Pool.Transfers.LastElement()
	assert.Nil(t, err, "last element error")
	assert.True(t, found, "last element missing")
	assert.Equal(t, index(total-1), last.Key, "wrong last element")

	n := 0
	err = db.Pool.Transfers.NewFetchCursor().Seek(index(250)).Map(func(key []byte, value []byte) error {
		n += 1
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, 50, n, "seek did not skip records")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "wrong error")
}

func TestMapStopsOnError(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	assert.Nil(t, db.Begin(), "begin error")
	for i := uint64(0); i < 5; i += 1 {
		db.Pool.Transfers.Put(index(i), []byte{})
	}
	assert.Nil(t, db.Commit(), "commit error")

	n := 0
	err := db.Pool.Transfers.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		if 2 == n {
			return fault.DatabaseIsInconsistent
		}
		return nil
	})
	assert.Equal(t, fault.DatabaseIsInconsistent, err, "wrong error")
	assert.Equal(t, 2, n, "map did not stop")
}

func TestReopenFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledgerd-storage")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "test.leveldb")

	_, err = storage.Open(name, storage.ReadOnly)
	assert.NotNil(t, err, "read only open of missing database succeeded")

	db, err := storage.Open(name, storage.ReadWrite)
	assert.Nil(t, err, "open error")
	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Counter.PutN([]byte("count"), 3)
	assert.Nil(t, db.Commit(), "commit error")
	db.Close()

	db, err = storage.Open(name, storage.ReadOnly)
	assert.Nil(t, err, "reopen error")
	defer db.Close()

	n, found, err := db.Pool.Counter.GetN([]byte("count"))
	assert.Nil(t, err, "getN error")
	assert.True(t, found, "count lost")
	assert.Equal(t, uint64(3), n, "wrong count")
}

func TestClosedDatabase(t *testing.T) {
	db := openMemory(t)

	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Transfers.Put(index(0), []byte("a"))
	db.Close()

	assert.NotNil(t, db.Commit(), "commit on closed database succeeded")

	_, err := db.Pool.Transfers.Has(index(0))
	assert.NotNil(t, err, "has on closed database succeeded")
}
