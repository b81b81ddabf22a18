// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfers

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitTransfers = 200
	rateBurstTransfers = 100

	// limit for count
	maximumTransfersList = 100
)

// Ledger - the operations exposed over RPC
type Ledger interface {
	RecordTransfer(*transferrecord.Request) (*transferrecord.Transfer, error)
	Fetch(uint64, int) ([]transferrecord.Transfer, uint64, error)
	Count() uint64
}

// Transfers - type for RPC calls
type Transfers struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Ledger    Ledger
	IsTesting bool
}

// New - create the service, isTesting is the network every account
// must belong to
func New(log *logger.L, ledger Ledger, isTesting bool) *Transfers {
	return &Transfers{
		Log:       log,
		Limiter:   ratelimit.New(rateLimitTransfers, rateBurstTransfers),
		Ledger:    ledger,
		IsTesting: isTesting,
	}
}

// ---

// RecordReply - the stored record
type RecordReply struct {
	Transfer *transferrecord.Transfer `json:"transfer"`
}

// Record - append a signed transfer
func (transfers *Transfers) Record(arguments *transferrecord.Request, reply *RecordReply) error {

	if err := ratelimit.Limit(transfers.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Sender || nil == arguments.Receiver {
		return fault.MissingParameters
	}

	if arguments.Sender.IsTesting() != transfers.IsTesting || arguments.Receiver.IsTesting() != transfers.IsTesting {
		return fault.WrongNetworkForPublicKey
	}

	transfers.Log.Infof("record: %s → %s  amount: %d", arguments.Sender, arguments.Receiver, arguments.Amount)

	transfer, err := transfers.Ledger.RecordTransfer(arguments)
	if nil != err {
		transfers.Log.Warnf("record error: %s", err)
		return err
	}

	reply.Transfer = transfer
	return nil
}

// ---

// ListArguments - paging window
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - a page of records
type ListReply struct {
	Transfers []transferrecord.Transfer `json:"transfers"`
	NextStart uint64                    `json:"nextStart,string"`
}

// List - records in insertion order
func (transfers *Transfers) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(transfers.Limiter, arguments.Count, maximumTransfersList); nil != err {
		return err
	}

	records, nextStart, err := transfers.Ledger.Fetch(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Transfers = records
	reply.NextStart = nextStart
	return nil
}

// ---

// CountArguments - empty arguments for count request
type CountArguments struct{}

// CountReply - number of records
type CountReply struct {
	Count uint64 `json:"count,string"`
}

// Count - number of records
func (transfers *Transfers) Count(_ *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(transfers.Limiter); nil != err {
		return err
	}

	reply.Count = transfers.Ledger.Count()
	return nil
}
