// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/command/ledger-cli/configuration"
	"github.com/bitmark-inc/ledgerd/fault"
)

const password = "correct horse battery staple"

func newSeed(t *testing.T, test bool) (string, *account.PrivateKey) {
	key, err := account.NewPrivateKey(test)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key.Seed(), key
}

func TestAddIdentityAndDecrypt(t *testing.T) {
	config := configuration.New("alice", true, []string{"127.0.0.1:2130"})

	seed, key := newSeed(t, true)
	err := config.AddIdentity("alice", "first", seed, password)
	assert.Nil(t, err, "wrong AddIdentity")

	err = config.AddIdentity("alice", "again", seed, password)
	assert.Equal(t, fault.IdentityNameAlreadyExists, err, "duplicate name accepted")

	acc, err := config.Account("alice")
	assert.Nil(t, err, "wrong Account")
	assert.True(t, key.Account().Equal(acc), "wrong account")

	private, err := config.Private(password, "alice")
	assert.Nil(t, err, "wrong Private")
	assert.Equal(t, seed, private.Seed, "wrong seed")
	assert.Equal(t, "first", private.Description, "wrong description")
	assert.True(t, key.Account().Equal(private.PrivateKey.Account()), "wrong private key")

	_, err = config.Private("not the password", "alice")
	assert.Equal(t, fault.WrongPassword, err, "wrong password accepted")

	_, err = config.Private(password, "nobody")
	assert.Equal(t, fault.IdentityNameNotFound, err, "unknown identity accepted")
}

func TestAddIdentityWrongNetwork(t *testing.T) {
	config := configuration.New("alice", true, nil)

	seed, _ := newSeed(t, false)
	err := config.AddIdentity("alice", "live key", seed, password)
	assert.Equal(t, fault.WrongNetworkForPublicKey, err, "live key accepted on test network")
}

func TestReceiveOnlyIdentity(t *testing.T) {
	config := configuration.New("alice", true, nil)

	_, key := newSeed(t, true)
	err := config.AddReceiveOnlyIdentity("bob", "receiver", key.Account().String())
	assert.Nil(t, err, "wrong AddReceiveOnlyIdentity")

	acc, err := config.Account("bob")
	assert.Nil(t, err, "wrong Account")
	assert.True(t, key.Account().Equal(acc), "wrong account")

	_, err = config.Private(password, "bob")
	assert.Equal(t, fault.NotPrivateKey, err, "receive only identity decrypted")
}

func TestAccountFromBase58(t *testing.T) {
	config := configuration.New("alice", true, nil)

	_, key := newSeed(t, true)
	acc, err := config.Account(key.Account().String())
	assert.Nil(t, err, "raw account rejected")
	assert.True(t, key.Account().Equal(acc), "wrong account")

	_, err = config.Account("not-an-identity")
	assert.Equal(t, fault.IdentityNameNotFound, err, "wrong error")
}

func TestSaveAndLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledger-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "testing-ledger-cli.json")

	config := configuration.New("alice", true, []string{"127.0.0.1:2130"})
	config.Subscribe = &configuration.Subscription{Connect: "127.0.0.1:2135"}
	seed, _ := newSeed(t, true)
	err = config.AddIdentity("alice", "first", seed, password)
	assert.Nil(t, err, "wrong AddIdentity")

	err = configuration.Save(file, config)
	assert.Nil(t, err, "first save")

	// second save keeps a backup
	err = configuration.Save(file, config)
	assert.Nil(t, err, "second save")
	_, err = os.Stat(file + ".bk")
	assert.Nil(t, err, "no backup file")

	info, err := os.Stat(file)
	assert.Nil(t, err, "no configuration file")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "wrong permissions")

	loaded, err := configuration.Load(file)
	assert.Nil(t, err, "wrong Load")
	assert.Equal(t, config, loaded, "configuration changed")

	private, err := loaded.Private(password, "alice")
	assert.Nil(t, err, "cannot decrypt after load")
	assert.Equal(t, seed, private.Seed, "wrong seed after load")
}
