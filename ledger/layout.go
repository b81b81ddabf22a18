// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// keys in the Meta pool
var (
	metaMaximumRecords = []byte("maximum-records")
	metaMessageBytes   = []byte("maximum-message-bytes")
	metaKeywordBytes   = []byte("maximum-keyword-bytes")
)

// key in the Counter pool
var countKey = []byte("count")

// Layout - capacity fixed when a store is created
type Layout struct {
	MaximumRecords uint64
	Limits         transferrecord.Limits
}

// CapacityBytes - total byte budget for all records
func (layout Layout) CapacityBytes() uint64 {
	return layout.MaximumRecords * uint64(layout.Limits.RecordBudget())
}

// read the stored layout, second value is false for a new store
func readLayout(database *storage.Database) (Layout, bool, error) {
	records, foundRecords, err := database.Pool.Meta.GetN(metaMaximumRecords)
	if nil != err {
		return Layout{}, false, err
	}
	message, foundMessage, err := database.Pool.Meta.GetN(metaMessageBytes)
	if nil != err {
		return Layout{}, false, err
	}
	keyword, foundKeyword, err := database.Pool.Meta.GetN(metaKeywordBytes)
	if nil != err {
		return Layout{}, false, err
	}

	if !foundRecords && !foundMessage && !foundKeyword {
		return Layout{}, false, nil
	}
	if !foundRecords || !foundMessage || !foundKeyword {
		return Layout{}, false, fault.LayoutMismatch
	}

	layout := Layout{
		MaximumRecords: records,
		Limits: transferrecord.Limits{
			MaximumMessageBytes: int(message),
			MaximumKeywordBytes: int(keyword),
		},
	}
	if !layout.Limits.Valid() || 0 == layout.MaximumRecords {
		return Layout{}, false, fault.LayoutMismatch
	}
	return layout, true, nil
}

// stage the layout in an open batch
func putLayout(database *storage.Database, layout Layout) {
	database.Pool.Meta.PutN(metaMaximumRecords, layout.MaximumRecords)
	database.Pool.Meta.PutN(metaMessageBytes, uint64(layout.Limits.MaximumMessageBytes))
	database.Pool.Meta.PutN(metaKeywordBytes, uint64(layout.Limits.MaximumKeywordBytes))
}

// StoredLayout - layout of an existing store
func StoredLayout(database *storage.Database) (Layout, error) {
	layout, found, err := readLayout(database)
	if nil != err {
		return Layout{}, err
	}
	if !found {
		return Layout{}, fault.NotInitialised
	}
	return layout, nil
}

// Provision - raise the maximum record count of an existing store
//
// every stored record keeps its index, so order is preserved; the
// store must not be open in a running ledger
func Provision(database *storage.Database, maximumRecords uint64) (Layout, error) {
	layout, err := StoredLayout(database)
	if nil != err {
		return Layout{}, err
	}

	if maximumRecords < layout.MaximumRecords {
		return layout, fault.CapacityReduction
	}
	if maximumRecords == layout.MaximumRecords {
		return layout, nil
	}

	layout.MaximumRecords = maximumRecords

	err = database.Begin()
	if nil != err {
		return Layout{}, err
	}
	putLayout(database, layout)
	err = database.Commit()
	if nil != err {
		return Layout{}, err
	}
	return layout, nil
}
