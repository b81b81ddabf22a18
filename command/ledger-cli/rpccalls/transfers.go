// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/rpc/transfers"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// RecordData - data for a transfer request
type RecordData struct {
	Sender   *account.PrivateKey
	Receiver *account.Account
	Amount   uint64
	Message  string
	Keyword  string
}

// Record - sign and submit a transfer
func (client *Client) Record(recordConfig *RecordData) (*transferrecord.Transfer, error) {

	if nil == recordConfig.Sender || nil == recordConfig.Receiver {
		return nil, fault.MissingParameters
	}
	if recordConfig.Sender.Test != client.testnet || recordConfig.Receiver.IsTesting() != client.testnet {
		return nil, fault.WrongNetworkForPublicKey
	}

	nonce, err := makeNonce()
	if nil != err {
		return nil, err
	}

	request := &transferrecord.Request{
		Sender:   recordConfig.Sender.Account(),
		Receiver: recordConfig.Receiver,
		Amount:   recordConfig.Amount,
		Message:  recordConfig.Message,
		Keyword:  recordConfig.Keyword,
		Nonce:    nonce,
	}

	// ledgerd checks its own limits, only the fields are signed
	limits := transferrecord.Limits{
		MaximumMessageBytes: len(recordConfig.Message),
		MaximumKeywordBytes: len(recordConfig.Keyword),
	}
	err = request.Sign(limits, recordConfig.Sender)
	if nil != err {
		return nil, err
	}

	client.printJSON("Record Request", request)

	var reply transfers.RecordReply
	err = client.client.Call("Transfers.Record", request, &reply)
	if nil != err {
		return nil, err
	}

	client.printJSON("Record Reply", reply)

	return reply.Transfer, nil
}

// List - one page of transfers in recorded order
func (client *Client) List(start uint64, count int) (*transfers.ListReply, error) {

	arguments := &transfers.ListArguments{
		Start: start,
		Count: count,
	}

	client.printJSON("List Request", arguments)

	var reply transfers.ListReply
	err := client.client.Call("Transfers.List", arguments, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}

// Count - number of recorded transfers
func (client *Client) Count() (uint64, error) {
	var reply transfers.CountReply
	err := client.client.Call("Transfers.Count", &transfers.CountArguments{}, &reply)
	if nil != err {
		return 0, err
	}
	return reply.Count, nil
}

// random so that repeating a transfer is not a replay
func makeNonce() (uint64, error) {
	var buffer [8]byte
	if _, err := rand.Read(buffer[:]); nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint64(buffer[:]), nil
}
