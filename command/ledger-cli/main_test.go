// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/command/ledger-cli/configuration"
)

const testPassword = "ledger-cli-password"

// run the command line with a private configuration directory
func runApp(t *testing.T, arguments ...string) (string, error) {
	var out bytes.Buffer
	var e bytes.Buffer
	app := newApp(&out, &e)
	err := app.Run(append([]string{"ledger-cli"}, arguments...))
	return out.String(), err
}

func setupConfigHome(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ledger-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	previous, hadPrevious := os.LookupEnv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", dir)
	return dir, func() {
		if hadPrevious {
			os.Setenv("XDG_CONFIG_HOME", previous)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
		os.RemoveAll(dir)
	}
}

func TestSetupAndIdentities(t *testing.T) {
	dir, cleanup := setupConfigHome(t)
	defer cleanup()

	_, err := runApp(t, "-i", "alice", "-p", testPassword, "setup",
		"-c", "127.0.0.1:2130", "-s", "127.0.0.1:2135", "-d", "first identity", "-N")
	assert.Nil(t, err, "wrong setup")

	file := filepath.Join(dir, "ledger-cli", "testing-ledger-cli.json")
	config, err := configuration.Load(file)
	assert.Nil(t, err, "configuration not written")
	assert.Equal(t, "alice", config.DefaultIdentity, "wrong default identity")
	assert.True(t, config.TestNet, "wrong network")
	assert.Equal(t, []string{"127.0.0.1:2130"}, config.Connections, "wrong connections")
	assert.Equal(t, "127.0.0.1:2135", config.Subscribe.Connect, "wrong subscription")

	private, err := config.Private(testPassword, "alice")
	assert.Nil(t, err, "identity cannot be decrypted")
	assert.True(t, private.PrivateKey.Test, "wrong key network")

	// setup refuses to overwrite
	_, err = runApp(t, "-i", "alice", "-p", testPassword, "setup",
		"-c", "127.0.0.1:2130", "-d", "again", "-N")
	assert.NotNil(t, err, "setup overwrote configuration")

	// receive only identity
	receiver, err := account.NewPrivateKey(true)
	assert.Nil(t, err, "receiver key")
	_, err = runApp(t, "-i", "bob", "add", "-d", "receiver", "-a", receiver.Account().String())
	assert.Nil(t, err, "wrong add")

	out, err := runApp(t, "identities")
	assert.Nil(t, err, "wrong identities")

	var reply identitiesReply
	err = json.Unmarshal([]byte(out), &reply)
	assert.Nil(t, err, "identities output is not JSON")
	assert.Equal(t, 2, len(reply.Identities), "wrong identity count")
	assert.Equal(t, "alice", reply.Identities[0].Name, "wrong first identity")
	assert.True(t, reply.Identities[0].Private, "alice should be private")
	assert.Equal(t, "bob", reply.Identities[1].Name, "wrong second identity")
	assert.False(t, reply.Identities[1].Private, "bob should be receive only")
	assert.Equal(t, receiver.Account().String(), reply.Identities[1].Account, "wrong bob account")
}

func TestAddIncompatibleOptions(t *testing.T) {
	_, cleanup := setupConfigHome(t)
	defer cleanup()

	_, err := runApp(t, "-i", "alice", "-p", testPassword, "setup",
		"-c", "127.0.0.1:2130", "-d", "first", "-N")
	assert.Nil(t, err, "wrong setup")

	receiver, err := account.NewPrivateKey(true)
	assert.Nil(t, err, "receiver key")

	_, err = runApp(t, "-i", "carol", "add", "-d", "both", "-n", "-a", receiver.Account().String())
	assert.NotNil(t, err, "account with new accepted")
}

func TestGenerate(t *testing.T) {
	_, cleanup := setupConfigHome(t)
	defer cleanup()

	_, err := runApp(t, "-n", "local", "-i", "alice", "-p", testPassword, "setup",
		"-c", "127.0.0.1:2130", "-d", "first", "-N")
	assert.Nil(t, err, "wrong setup")

	out, err := runApp(t, "-n", "local", "generate")
	assert.Nil(t, err, "wrong generate")

	var reply struct {
		Seed    string `json:"seed"`
		Account string `json:"account"`
		TestNet bool   `json:"testnet"`
	}
	err = json.Unmarshal([]byte(out), &reply)
	assert.Nil(t, err, "generate output is not JSON")
	assert.True(t, reply.TestNet, "local keys are test keys")

	key, err := account.PrivateKeyFromBase58Seed(reply.Seed)
	assert.Nil(t, err, "generated seed does not decode")
	assert.Equal(t, key.Account().String(), reply.Account, "seed and account differ")
}

func TestWatchWithoutSubscription(t *testing.T) {
	_, cleanup := setupConfigHome(t)
	defer cleanup()

	_, err := runApp(t, "-i", "alice", "-p", testPassword, "setup",
		"-c", "127.0.0.1:2130", "-d", "first", "-N")
	assert.Nil(t, err, "wrong setup")

	_, err = runApp(t, "watch")
	assert.Equal(t, ErrNoSubscription, err, "wrong error")
}

func TestMissingConfiguration(t *testing.T) {
	_, cleanup := setupConfigHome(t)
	defer cleanup()

	_, err := runApp(t, "count")
	assert.NotNil(t, err, "missing configuration accepted")

	_, err = runApp(t, "-n", "nonesuch", "count")
	assert.Equal(t, ErrInvalidNetwork, err, "wrong network accepted")
}
