// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// ListTransfers - every record in insertion order
func (l *Ledger) ListTransfers() []transferrecord.Transfer {
	s := l.snapshot()
	return copyRecords(s.records)
}

// Count - number of records
func (l *Ledger) Count() uint64 {
	return l.snapshot().count
}

// History - records and count from the same snapshot
func (l *Ledger) History() ([]transferrecord.Transfer, uint64) {
	s := l.snapshot()
	return copyRecords(s.records), s.count
}

// Fetch - up to count records starting at index start
//
// returns the records and the index to continue from
func (l *Ledger) Fetch(start uint64, count int) ([]transferrecord.Transfer, uint64, error) {
	if count <= 0 {
		return nil, start, fault.InvalidCount
	}

	s := l.snapshot()
	if start >= s.count {
		return []transferrecord.Transfer{}, s.count, nil
	}

	end := start + uint64(count)
	if end > s.count {
		end = s.count
	}
	return copyRecords(s.records[start:end]), end, nil
}

// Capacity - current usage against the fixed budget
type Capacity struct {
	Records        uint64 `json:"records"`
	MaximumRecords uint64 `json:"maximumRecords"`
	UsedBytes      uint64 `json:"usedBytes"`
	CapacityBytes  uint64 `json:"capacityBytes"`
}

// Capacity - usage from the current snapshot
func (l *Ledger) Capacity() Capacity {
	s := l.snapshot()
	return Capacity{
		Records:        s.count,
		MaximumRecords: l.layout.MaximumRecords,
		UsedBytes:      s.usedBytes,
		CapacityBytes:  l.capacity,
	}
}

func copyRecords(records []*transferrecord.Transfer) []transferrecord.Transfer {
	result := make([]transferrecord.Transfer, len(records))
	for i, r := range records {
		result[i] = *r.Clone()
	}
	return result
}
