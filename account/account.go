// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// enumeration of supported key algorithms
const (
	Nothing = iota // reserved, never accepted
	ED25519 = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// IdentitySize - bytes in the fixed width binary form of an account
const IdentitySize = 1 + ed25519.PublicKeySize

// Account - the public identity of a ledger participant
type Account struct {
	Test      bool
	PublicKey []byte
}

// FromPublicKey - wrap a raw ed25519 public key
func FromPublicKey(publicKey ed25519.PublicKey, test bool) *Account {
	key := make([]byte, len(publicKey))
	copy(key, publicKey)
	return &Account{
		Test:      test,
		PublicKey: key,
	}
}

func keyVariant(test bool, public bool) byte {
	variant := byte(ED25519 << algorithmShift)
	if public {
		variant |= publicKeyCode
	}
	if test {
		variant |= testKeyCode
	}
	return variant
}

// Bytes - key variant byte followed by the public key
func (account *Account) Bytes() []byte {
	buffer := make([]byte, 0, IdentitySize)
	buffer = append(buffer, keyVariant(account.Test, true))
	return append(buffer, account.PublicKey...)
}

// String - Base58 with a four byte checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// IsTesting - true if the key belongs to a test network
func (account *Account) IsTesting() bool {
	return account.Test
}

// Equal - same network and same key
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return account == other
	}
	return account.Test == other.Test && bytes.Equal(account.PublicKey, other.PublicKey)
}

// Clone - independent copy
func (account *Account) Clone() *Account {
	if nil == account {
		return nil
	}
	return FromPublicKey(account.PublicKey, account.Test)
}

// CheckSignature - verify that the holder of this account signed message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// MarshalText - convert an account to its Base58 text form
func (account *Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}

// AccountFromBase58 - decode the text form produced by String
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	buffer := util.FromBase58(accountBase58Encoded)
	if IdentitySize+checksumLength != len(buffer) {
		return nil, fault.InvalidKeyLength
	}

	checksumStart := len(buffer) - checksumLength
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
		return nil, fault.WrongChecksum
	}
	return AccountFromBytes(buffer[:checksumStart])
}

// AccountFromBytes - decode the fixed width form produced by Bytes
func AccountFromBytes(buffer []byte) (*Account, error) {
	if IdentitySize != len(buffer) {
		return nil, fault.InvalidKeyLength
	}

	variant := buffer[0]
	if 0 == variant&publicKeyCode {
		return nil, fault.NotAnAccount
	}
	if ED25519 != variant>>algorithmShift {
		return nil, fault.InvalidKeyType
	}

	return FromPublicKey(buffer[1:], 0 != variant&testKeyCode), nil
}
