// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/publish"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/ledgerd/zmqutil"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newLedger(t *testing.T) *ledger.Ledger {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open database error: %s", err)
	}
	l, err := ledger.New(db, &ledger.Configuration{MaximumRecords: 200})
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}
	return l
}

// record until the subscriber has joined and a message arrives
func recordUntilReceived(t *testing.T, l *ledger.Ledger, client *zmqutil.Client) [][]byte {
	sender := fixtures.NewPrivateKey(t)
	receiver := fixtures.NewPrivateKey(t).Account()
	for i := 0; i < 100; i += 1 {
		request := fixtures.SignedRequest(t, sender, receiver, 42, "hello", "kw")
		_, err := l.RecordTransfer(request)
		if nil != err {
			t.Fatalf("record error: %s", err)
		}
		data, err := client.Receive(0)
		if nil == err {
			return data
		}
	}
	t.Fatalf("nothing received")
	return nil
}

func TestPublishPlain(t *testing.T) {
	l := newLedger(t)
	defer l.Close()

	configuration := &publish.Configuration{
		Broadcast: []string{"127.0.0.1:17581"},
	}
	err := publish.Initialise(configuration, l)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}

	err = publish.Initialise(configuration, l)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	client, err := zmqutil.NewClient("", nil, nil, 100*time.Millisecond)
	if nil != err {
		t.Fatalf("client error: %s", err)
	}
	defer client.Close()

	conn, _ := util.NewConnection("127.0.0.1:17581")
	err = client.Connect(conn, nil)
	if nil != err {
		t.Fatalf("connect error: %s", err)
	}

	data := recordUntilReceived(t, l, client)
	if 2 != len(data) {
		t.Fatalf("parts: %d", len(data))
	}
	assert.Equal(t, "transfer", string(data[0]), "wrong command")

	var transfer transferrecord.Transfer
	err = json.Unmarshal(data[1], &transfer)
	assert.Nil(t, err, "json decode error")
	assert.Equal(t, uint64(42), transfer.Amount, "wrong amount")
	assert.Equal(t, "hello", transfer.Message, "wrong message")
	assert.Equal(t, "kw", transfer.Keyword, "wrong keyword")
	assert.NotEqual(t, uint64(0), publish.Sent(), "sent count not updated")

	assert.Nil(t, publish.Finalise(), "finalise error")
	assert.Equal(t, fault.NotInitialised, publish.Finalise(), "second finalise")
}

func TestPublishEncrypted(t *testing.T) {
	l := newLedger(t)
	defer l.Close()

	dir, err := ioutil.TempDir("", "publish")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	configuration := &publish.Configuration{
		Broadcast:  []string{"127.0.0.1:17582"},
		PrivateKey: filepath.Join(dir, "publish.private"),
		PublicKey:  filepath.Join(dir, "publish.public"),
	}
	err = zmqutil.MakeKeyPair(configuration.PublicKey, configuration.PrivateKey)
	if nil != err {
		t.Fatalf("make key pair error: %s", err)
	}
	serverPublic, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		t.Fatalf("read public key error: %s", err)
	}

	err = publish.Initialise(configuration, l)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	defer publish.Finalise()

	public, private, err := zmq.NewCurveKeypair()
	if nil != err {
		t.Fatalf("curve key pair error: %s", err)
	}
	client, err := zmqutil.NewClient("transfer", []byte(zmq.Z85decode(private)), []byte(zmq.Z85decode(public)), 100*time.Millisecond)
	if nil != err {
		t.Fatalf("client error: %s", err)
	}
	defer client.Close()

	conn, _ := util.NewConnection("127.0.0.1:17582")
	err = client.Connect(conn, serverPublic)
	if nil != err {
		t.Fatalf("connect error: %s", err)
	}

	data := recordUntilReceived(t, l, client)
	assert.Equal(t, "transfer", string(data[0]), "wrong command")
}

func TestPublishDisabled(t *testing.T) {
	l := newLedger(t)
	defer l.Close()

	err := publish.Initialise(&publish.Configuration{}, l)
	assert.Nil(t, err, "initialise error")
	assert.Nil(t, publish.Finalise(), "finalise error")
}

func TestPublishBadKeyFile(t *testing.T) {
	l := newLedger(t)
	defer l.Close()

	configuration := &publish.Configuration{
		Broadcast:  []string{"127.0.0.1:17583"},
		PrivateKey: "/nonexistent/publish.private",
		PublicKey:  "/nonexistent/publish.public",
	}
	err := publish.Initialise(configuration, l)
	assert.NotNil(t, err, "missing key files accepted")
	assert.Equal(t, fault.NotInitialised, publish.Finalise(), "initialised after failure")
}
