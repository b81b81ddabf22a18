// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transferrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/ledgerd/account"
)

// TagType - type code for packed records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	TransferTag = TagType(iota)
	RequestTag  = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Transfer - one recorded movement of value
//
// never modified after the ledger stores it, callers only ever
// receive copies
type Transfer struct {
	Sender    *account.Account `json:"sender"`
	Receiver  *account.Account `json:"receiver"`
	Amount    uint64           `json:"amount,string"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"`
	Keyword   string           `json:"keyword"`
}

// Clone - deep copy so callers cannot alias stored data
func (transfer *Transfer) Clone() *Transfer {
	return &Transfer{
		Sender:    transfer.Sender.Clone(),
		Receiver:  transfer.Receiver.Clone(),
		Amount:    transfer.Amount,
		Message:   transfer.Message,
		Timestamp: transfer.Timestamp,
		Keyword:   transfer.Keyword,
	}
}

// String - hex of the packed bytes, for logging
func (record Packed) String() string {
	return hex.EncodeToString(record)
}
