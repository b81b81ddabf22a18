// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"fmt"
	"math/rand"
	"net"
	"net/rpc"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/registry"
	"github.com/bitmark-inc/ledgerd/rpc/node"
	"github.com/bitmark-inc/ledgerd/rpc/server"
	"github.com/bitmark-inc/ledgerd/rpc/tokens"
	"github.com/bitmark-inc/ledgerd/rpc/transfers"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/logger"
)

var port string

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	if nil != err {
		fmt.Printf("open database error: %s\n", err)
		os.Exit(1)
	}
	l, err := ledger.New(db, &ledger.Configuration{MaximumRecords: 3})
	if nil != err {
		fmt.Printf("new ledger error: %s\n", err)
		os.Exit(1)
	}

	port = fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000) // 30,000 - 60,000
	c := counter.Counter(0)

	// registry left uninitialised
	r := server.Create(logger.New("server-test"), "1.0", chain.Local, l, registry.New(), &c)
	listener, err := net.Listen("tcp", port)
	if nil != err {
		fmt.Printf("listen error: %s\n", err)
		os.Exit(1)
	}

	go r.Accept(listener)

	rc := m.Run()

	listener.Close()
	l.Close()
	db.Close()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// following tests make sure proper methods are registered to server

func newClient(t *testing.T) *rpc.Client {
	conn, err := net.Dial("tcp", port)
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}
	return rpc.NewClient(conn)
}

func TestTransfersRecord(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	arg := transferrecord.Request{
		Amount: 1,
	}
	var reply transfers.RecordReply
	err := client.Call("Transfers.Record", &arg, &reply)
	assert.NotNil(t, err, "wrong Transfers.Record")
	assert.Equal(t, fault.MissingParameters.Error(), err.Error(), "wrong reply")
}

func TestTransfersList(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	arg := transfers.ListArguments{
		Start: 0,
		Count: 0,
	}
	var reply transfers.ListReply
	err := client.Call("Transfers.List", &arg, &reply)
	assert.NotNil(t, err, "wrong Transfers.List")
	assert.Equal(t, fault.InvalidCount.Error(), err.Error(), "wrong reply")
}

func TestTransfersCount(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	var reply transfers.CountReply
	err := client.Call("Transfers.Count", &transfers.CountArguments{}, &reply)
	assert.Nil(t, err, "wrong Transfers.Count")
	assert.Equal(t, uint64(0), reply.Count, "wrong count")
}

func TestNodeInfo(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	var reply node.InfoReply
	err := client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, chain.Local, reply.Chain, "wrong chain")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.MaximumRecords, "wrong maximum records")
}

func TestRegistryTokens(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	var reply tokens.TokensReply
	err := client.Call("Registry.Tokens", &tokens.TokensArguments{}, &reply)
	assert.NotNil(t, err, "wrong Registry.Tokens")
	assert.Equal(t, fault.NotInitialised.Error(), err.Error(), "wrong reply")
}

func TestUnknownService(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	var reply struct{}
	err := client.Call("Transfers.Delete", &transfers.CountArguments{}, &reply)
	assert.NotNil(t, err, "unknown service accepted")
}
