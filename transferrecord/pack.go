// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transferrecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// fixed width fields
const (
	amountSize    = 8
	timestampSize = 8
)

// Pack - storage form of a transfer
//
// Varint64(tag) ++ sender ++ receiver ++ amount ++ timestamp ++
// length prefixed message ++ length prefixed keyword
//
// accounts are fixed width, amount and timestamp are big endian so
// every record has the same header layout
func (transfer *Transfer) Pack(limits Limits) (Packed, error) {
	if nil == transfer.Sender || nil == transfer.Receiver {
		return nil, fault.MissingParameters
	}
	if err := limits.Check(transfer.Message, transfer.Keyword); nil != err {
		return nil, err
	}

	record := util.ToVarint64(uint64(TransferTag))
	record = append(record, transfer.Sender.Bytes()...)
	record = append(record, transfer.Receiver.Bytes()...)

	var n [8]byte
	binary.BigEndian.PutUint64(n[:], transfer.Amount)
	record = append(record, n[:]...)
	binary.BigEndian.PutUint64(n[:], uint64(transfer.Timestamp))
	record = append(record, n[:]...)

	record = util.AppendString(record, transfer.Message)
	record = util.AppendString(record, transfer.Keyword)
	return record, nil
}

// Unpack - restore a transfer from its storage form
//
// returns the record and the number of bytes consumed
func (record Packed) Unpack(limits Limits) (*Transfer, int, error) {
	tag, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.NotTransferPack
	}
	if TransferTag != TagType(tag) {
		return nil, 0, fault.NotTransferPack
	}

	if len(record) < n+2*account.IdentitySize+amountSize+timestampSize {
		return nil, 0, fault.BufferTooShort
	}

	sender, err := account.AccountFromBytes(record[n : n+account.IdentitySize])
	if nil != err {
		return nil, 0, err
	}
	n += account.IdentitySize

	receiver, err := account.AccountFromBytes(record[n : n+account.IdentitySize])
	if nil != err {
		return nil, 0, err
	}
	n += account.IdentitySize

	amount := binary.BigEndian.Uint64(record[n : n+amountSize])
	n += amountSize

	timestamp := int64(binary.BigEndian.Uint64(record[n : n+timestampSize]))
	n += timestampSize

	message, count := util.ReadBytes(record[n:], limits.MaximumMessageBytes)
	if 0 == count {
		return nil, 0, fault.MessageTooLong
	}
	n += count

	keyword, count := util.ReadBytes(record[n:], limits.MaximumKeywordBytes)
	if 0 == count {
		return nil, 0, fault.KeywordTooLong
	}
	n += count

	transfer := &Transfer{
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Message:   string(message),
		Timestamp: timestamp,
		Keyword:   string(keyword),
	}
	return transfer, n, nil
}
