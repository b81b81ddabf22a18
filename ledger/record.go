// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// notification command for a new record
const transferCommand = "transfer"

// RecordTransfer - append a signed transfer request to the ledger
//
// checks run in this order and any failure leaves the ledger
// untouched:
//   field lengths      fault.MessageTooLong, fault.KeywordTooLong
//   field text         fault.MessageNotUTF8, fault.KeywordNotUTF8
//   sender signature   fault.Unauthorized
//   request reuse      fault.ReplayedRequest
//   capacity           fault.CapacityExceeded
//   storage write      fault.StorageFault
//
// the timestamp is taken from the ledger clock; the returned record
// is a copy
func (l *Ledger) RecordTransfer(request *transferrecord.Request) (*transferrecord.Transfer, error) {
	if nil == request {
		return nil, fault.MissingParameters
	}

	signed, err := request.Pack(l.layout.Limits, request.Sender)
	switch err {
	case nil:
	case fault.InvalidSignature, fault.SignatureTooLong:
		l.log.Debugf("rejected signature from: %s", request.Sender)
		return nil, fault.Unauthorized
	default:
		return nil, err
	}

	digest := signed.Digest()

	l.Lock()
	defer l.Unlock()

	replayed, err := l.seen(digest)
	if nil != err {
		l.log.Errorf("digest: %s  lookup error: %s", digest, err)
		return nil, fault.StorageFault
	}
	if replayed {
		l.log.Warnf("replayed request: %s", digest)
		return nil, fault.ReplayedRequest
	}

	old := l.snapshot()
	if old.count >= l.layout.MaximumRecords {
		return nil, fault.CapacityExceeded
	}

	transfer := request.Transfer(l.clock().Unix())
	packed, err := transfer.Pack(l.layout.Limits)
	if nil != err {
		return nil, err
	}
	if old.usedBytes+uint64(len(packed)) > l.capacity {
		return nil, fault.CapacityExceeded
	}

	index := counter.Pack(old.count)

	err = l.database.Begin()
	if nil != err {
		l.log.Errorf("begin error: %s", err)
		return nil, fault.StorageFault
	}
	l.database.Pool.Transfers.Put(index, packed)
	l.database.Pool.Digests.Put(digest[:], index)
	l.database.Pool.Counter.Put(countKey, counter.Pack(old.count+1))
	err = l.database.Commit()
	if nil != err {
		l.log.Errorf("record: %d  commit error: %s", old.count, err)
		return nil, fault.StorageFault
	}

	// committed, nothing below can fail
	l.recent.Add(string(digest[:]))

	l.current.Store(&snapshot{
		records:   append(old.records, transfer),
		count:     old.count + 1,
		usedBytes: old.usedBytes + uint64(len(packed)),
	})

	if dropped := l.bus.Send(transferCommand, transfer); dropped > 0 {
		l.log.Warnf("record: %d  notification dropped for %d listener(s)", old.count, dropped)
	}

	l.log.Debugf("record: %d  sender: %s  amount: %d", old.count, transfer.Sender, transfer.Amount)
	return transfer.Clone(), nil
}

// check the recent set then the Digests pool
func (l *Ledger) seen(digest transferrecord.Digest) (bool, error) {
	if l.recent.Exists(string(digest[:])) {
		return true, nil
	}
	return l.database.Pool.Digests.Has(digest[:])
}
