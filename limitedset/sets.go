// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - a set that only remembers the most recent items
//
// the ledger keeps the digests of recently accepted requests here so
// that a resubmitted request is found without touching the database
package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - bounded set, oldest item is evicted on overflow
type LimitedSet struct {
	sync.Mutex
	ring *ring.Ring
	hash map[string]*ring.Ring
}

// New - create a new limited set that holds up to 'n' items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		ring: ring.New(n),
		hash: make(map[string]*ring.Ring, n),
	}
}

// Add - insert an item, returns false if it was already present
//
// a repeated item is moved to the newest position
func (ls *LimitedSet) Add(item string) bool {
	ls.Lock()
	defer ls.Unlock()

	if r, ok := ls.hash[item]; ok {
		if r == ls.ring {
			// oldest becomes newest
			ls.ring = ls.ring.Next()
			return false
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return false
	}

	if oldItem, ok := ls.ring.Value.(string); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Exists - check to see if item is in the set
func (ls *LimitedSet) Exists(item string) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of items held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
