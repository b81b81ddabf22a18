// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// PrivateKey - signing half of an account
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// seed layout: header ++ network ++ ed25519 seed ++ checksum
var seedHeader = []byte{0x5a, 0xfe, 0x03}

const (
	seedNetworkLength = 1
	seedNetworkLive   = 0x00
	seedNetworkTest   = 0x01
)

// NewPrivateKey - generate a random key pair
func NewPrivateKey(test bool) (*PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// PrivateKeyFromBase58Seed - restore a key pair from its seed text
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {
	seed := util.FromBase58(seedBase58Encoded)

	expected := len(seedHeader) + seedNetworkLength + ed25519.SeedSize + checksumLength
	if expected != len(seed) {
		return nil, fault.InvalidSeedLength
	}

	if !bytes.Equal(seedHeader, seed[:len(seedHeader)]) {
		return nil, fault.InvalidSeedHeader
	}

	checksumStart := len(seed) - checksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], seed[checksumStart:]) {
		return nil, fault.WrongChecksum
	}

	network := seed[len(seedHeader)]
	key := seed[len(seedHeader)+seedNetworkLength : checksumStart]

	return &PrivateKey{
		Test:       seedNetworkTest == network,
		PrivateKey: ed25519.NewKeyFromSeed(key),
	}, nil
}

// Seed - Base58 text that PrivateKeyFromBase58Seed accepts
func (privateKey *PrivateKey) Seed() string {
	network := byte(seedNetworkLive)
	if privateKey.Test {
		network = seedNetworkTest
	}

	buffer := append([]byte{}, seedHeader...)
	buffer = append(buffer, network)
	buffer = append(buffer, privateKey.PrivateKey.Seed()...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// Account - the public account for this key
func (privateKey *PrivateKey) Account() *Account {
	publicKey := privateKey.PrivateKey.Public().(ed25519.PublicKey)
	return FromPublicKey(publicKey, privateKey.Test)
}

// Sign - ed25519 signature of message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}
