// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
)

func makeKey(t *testing.T, test bool) *account.PrivateKey {
	key, err := account.NewPrivateKey(test)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func TestAccountText(t *testing.T) {
	for _, test := range []bool{false, true} {
		acc := makeKey(t, test).Account()

		assert.Equal(t, account.IdentitySize, len(acc.Bytes()), "wrong binary size")
		assert.Equal(t, test, acc.IsTesting(), "wrong network")

		restored, err := account.AccountFromBase58(acc.String())
		assert.Nil(t, err, "wrong error")
		assert.True(t, acc.Equal(restored), "base58 text does not restore account")

		restored, err = account.AccountFromBytes(acc.Bytes())
		assert.Nil(t, err, "wrong error")
		assert.True(t, acc.Equal(restored), "bytes do not restore account")
	}
}

func TestAccountBadText(t *testing.T) {
	acc := makeKey(t, true).Account()
	s := acc.String()

	// flip the last character to break the checksum
	last := s[len(s)-1]
	replacement := byte('2')
	if '2' == last {
		replacement = '3'
	}
	broken := s[:len(s)-1] + string(replacement)

	_, err := account.AccountFromBase58(broken)
	assert.NotNil(t, err, "corrupted text accepted")

	_, err = account.AccountFromBase58("")
	assert.Equal(t, fault.InvalidKeyLength, err, "wrong error")

	b := acc.Bytes()
	b[0] &^= 0x01
	_, err = account.AccountFromBytes(b)
	assert.Equal(t, fault.NotAnAccount, err, "private variant accepted")
}

func TestAccountJSON(t *testing.T) {
	acc := makeKey(t, false).Account()

	type holder struct {
		Owner *account.Account `json:"owner"`
	}

	buffer, err := json.Marshal(holder{Owner: acc})
	assert.Nil(t, err, "marshal error")
	assert.Contains(t, string(buffer), acc.String(), "text form not used")

	var h holder
	err = json.Unmarshal(buffer, &h)
	assert.Nil(t, err, "unmarshal error")
	assert.True(t, acc.Equal(h.Owner), "wrong account")
}

func TestSignature(t *testing.T) {
	key := makeKey(t, true)
	acc := key.Account()
	message := []byte("transfer 100 to somebody")

	signature := key.Sign(message)
	assert.Nil(t, acc.CheckSignature(message, signature), "valid signature rejected")

	other := makeKey(t, true).Account()
	assert.Equal(t, fault.InvalidSignature, other.CheckSignature(message, signature), "other account accepted")

	assert.Equal(t, fault.InvalidSignature, acc.CheckSignature(append(message, '!'), signature), "altered message accepted")
	assert.Equal(t, fault.InvalidSignature, acc.CheckSignature(message, signature[:10]), "short signature accepted")

	var sig account.Signature
	text, _ := signature.MarshalText()
	assert.Nil(t, sig.UnmarshalText(text), "unmarshal error")
	assert.Equal(t, signature, sig, "hex round trip")

	assert.Equal(t, fault.InvalidSignature, sig.UnmarshalText([]byte("not hex")), "bad hex accepted")
	long := append(text, '0', '0')
	assert.Equal(t, fault.SignatureTooLong, sig.UnmarshalText(long), "long signature accepted")
}

func TestSeed(t *testing.T) {
	key := makeKey(t, true)

	restored, err := account.PrivateKeyFromBase58Seed(key.Seed())
	assert.Nil(t, err, "wrong error")
	assert.True(t, restored.Test, "network lost")
	assert.True(t, key.Account().Equal(restored.Account()), "seed does not restore key")

	_, err = account.PrivateKeyFromBase58Seed("abc")
	assert.Equal(t, fault.InvalidSeedLength, err, "wrong error")
}
