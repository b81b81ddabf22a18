// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Size - number of bytes in the persisted form
const Size = 8

// Counter - a 64 bit unsigned value that is safe for concurrent use
//
// the ledger keeps its transfer count in one of these and the RPC
// listeners use another to track live connections
type Counter uint64

// Increment - add 1 and return the new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 and return the new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Uint64 - current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}

// Set - replace the value, used when restoring from storage
func (ic *Counter) Set(value uint64) {
	atomic.StoreUint64((*uint64)(ic), value)
}

// Bytes - fixed width big endian form of the current value
func (ic *Counter) Bytes() []byte {
	return Pack(ic.Uint64())
}

// Pack - fixed width big endian form of any count
func Pack(value uint64) []byte {
	buffer := make([]byte, Size)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}

// FromBytes - restore a counter from its persisted form
func FromBytes(buffer []byte) (Counter, error) {
	if Size != len(buffer) {
		return 0, fault.BufferTooShort
	}
	return Counter(binary.BigEndian.Uint64(buffer)), nil
}
