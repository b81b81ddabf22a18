// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// FetchCursor - walks one pool in key order
//
// Transfers keys are big endian sequence numbers so key order is
// the order records were written
type FetchCursor struct {
	pool     *PoolHandle
	keyRange util.Range
}

// NewFetchCursor - cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		keyRange: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - start at key, or the first key after it
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.keyRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - next count elements, an empty result at the end of the pool
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	var last []byte
	err := cursor.each(func(key []byte, value []byte) (bool, error) {
		e := copyElement(key, value)
		results = append(results, e)
		last = e.Key
		return len(results) < count, nil
	})

	// the smallest key after last is last followed by a zero byte
	if nil != last {
		next := make([]byte, 0, len(last)+2)
		next = append(next, cursor.pool.prefix)
		next = append(next, last...)
		cursor.keyRange.Start = append(next, 0)
	}
	return results, err
}

// Map - run f on every remaining element, stopping at its first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}
	return cursor.each(func(key []byte, value []byte) (bool, error) {
		e := copyElement(key, value)
		if err := f(e.Key, e.Value); nil != err {
			return false, err
		}
		return true, nil
	})
}

// iterate from the cursor start, the key still has its pool prefix
// and neither slice outlives the call
func (cursor *FetchCursor) each(f func(key []byte, value []byte) (bool, error)) error {
	iter := cursor.pool.dataAccess.Iterator(&cursor.keyRange)
	defer iter.Release()

	for iter.Next() {
		more, err := f(iter.Key(), iter.Value())
		if nil != err {
			return err
		}
		if !more {
			break
		}
	}
	return iter.Error()
}
