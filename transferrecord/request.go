// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transferrecord

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Request - a transfer as submitted by its sender
//
// the ledger assigns the timestamp, the nonce only serves to make
// otherwise identical requests distinct
type Request struct {
	Sender    *account.Account  `json:"sender"`
	Receiver  *account.Account  `json:"receiver"`
	Amount    uint64            `json:"amount,string"`
	Message   string            `json:"message"`
	Keyword   string            `json:"keyword"`
	Nonce     uint64            `json:"nonce,string"`
	Signature account.Signature `json:"signature,omitempty"`
}

// DigestLength - bytes in a request digest
const DigestLength = 32

// Digest - identifies a signed request
type Digest [DigestLength]byte

// String - hex form
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// Pack - signing message of a request with its signature appended
//
// Varint64(tag) followed by the fields in struct order with the
// signature last
//
// NOTE: returns the "unsigned" message on signature failure so a
//       client can use it as the message to sign
func (request *Request) Pack(limits Limits, address *account.Account) (Packed, error) {
	if len(request.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == request.Sender || nil == request.Receiver || nil == address {
		return nil, fault.MissingParameters
	}
	if err := limits.Check(request.Message, request.Keyword); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(RequestTag))
	message = util.AppendBytes(message, request.Sender.Bytes())
	message = util.AppendBytes(message, request.Receiver.Bytes())
	message = util.AppendUint64(message, request.Amount)
	message = util.AppendString(message, request.Message)
	message = util.AppendString(message, request.Keyword)
	message = util.AppendUint64(message, request.Nonce)

	err := address.CheckSignature(message, request.Signature)
	if nil != err {
		return message, err
	}
	return util.AppendBytes(message, request.Signature), nil
}

// Sign - fill in the signature using the sender's private key
func (request *Request) Sign(limits Limits, key *account.PrivateKey) error {
	request.Signature = nil
	message, err := request.Pack(limits, request.Sender)
	if fault.InvalidSignature != err {
		if nil == err {
			return fault.InvalidSignature
		}
		return err
	}
	request.Signature = key.Sign(message)
	return nil
}

// Digest - hash of a signed pack
func (record Packed) Digest() Digest {
	return sha3.Sum256(record)
}

// Transfer - the record to store for this request at the given time
func (request *Request) Transfer(timestamp int64) *Transfer {
	return &Transfer{
		Sender:    request.Sender.Clone(),
		Receiver:  request.Receiver.Clone(),
		Amount:    request.Amount,
		Message:   request.Message,
		Timestamp: timestamp,
		Keyword:   request.Keyword,
	}
}
