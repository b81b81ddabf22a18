// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/storage"
)

func tempDatabase(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ledgerd-ledger")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	return filepath.Join(dir, "ledger.leveldb"), func() { os.RemoveAll(dir) }
}

func openFile(t *testing.T, name string) *storage.Database {
	db, err := storage.Open(name, storage.ReadWrite)
	if nil != err {
		t.Fatalf("open database error: %s", err)
	}
	return db
}

func TestRestart(t *testing.T) {
	name, cleanup := tempDatabase(t)
	defer cleanup()

	sender := fixtures.NewPrivateKey(t)
	receiver := fixtures.NewPrivateKey(t).Account()

	db := openFile(t, name)
	l, err := ledger.New(db, testConfiguration(10))
	assert.Nil(t, err, "new error")

	first := signedRequest(t, sender, receiver, 1, "one", "a")
	_, err = l.RecordTransfer(first)
	assert.Nil(t, err, "record error")
	_, err = l.RecordTransfer(signedRequest(t, sender, receiver, 2, "two", "b"))
	assert.Nil(t, err, "record error")

	before := l.ListTransfers()
	l.Close()
	db.Close()

	db = openFile(t, name)
	defer db.Close()

	// different configuration, stored layout must win
	l, err = ledger.New(db, testConfiguration(500))
	assert.Nil(t, err, "reopen error")
	defer l.Close()

	assert.Equal(t, uint64(10), l.Layout().MaximumRecords, "stored layout ignored")
	assert.Equal(t, uint64(2), l.Count(), "count lost")
	assert.Equal(t, before, l.ListTransfers(), "records lost")

	// the digest pool remembers requests across restarts
	_, err = l.RecordTransfer(first)
	assert.Equal(t, fault.ReplayedRequest, err, "replay accepted after restart")

	_, err = l.RecordTransfer(signedRequest(t, sender, receiver, 3, "three", "c"))
	assert.Nil(t, err, "record error")
	assert.Equal(t, uint64(3), l.Count(), "wrong count")
}

func TestProvision(t *testing.T) {
	name, cleanup := tempDatabase(t)
	defer cleanup()

	sender := fixtures.NewPrivateKey(t)
	receiver := fixtures.NewPrivateKey(t).Account()

	db := openFile(t, name)
	l, err := ledger.New(db, testConfiguration(2))
	assert.Nil(t, err, "new error")
	for i := uint64(0); i < 2; i += 1 {
		_, err = l.RecordTransfer(signedRequest(t, sender, receiver, i, "", ""))
		assert.Nil(t, err, "record error")
	}
	_, err = l.RecordTransfer(signedRequest(t, sender, receiver, 2, "", ""))
	assert.Equal(t, fault.CapacityExceeded, err, "wrong error")

	before := l.ListTransfers()
	l.Close()

	_, err = ledger.Provision(db, 1)
	assert.Equal(t, fault.CapacityReduction, err, "capacity reduced")

	layout, err := ledger.Provision(db, 4)
	assert.Nil(t, err, "provision error")
	assert.Equal(t, uint64(4), layout.MaximumRecords, "wrong maximum")
	db.Close()

	db = openFile(t, name)
	defer db.Close()
	l, err = ledger.New(db, testConfiguration(2))
	assert.Nil(t, err, "reopen error")
	defer l.Close()

	assert.Equal(t, before, l.ListTransfers(), "provision altered records")

	_, err = l.RecordTransfer(signedRequest(t, sender, receiver, 2, "", ""))
	assert.Nil(t, err, "record after provision error")
	assert.Equal(t, uint64(3), l.Count(), "wrong count")
}

func TestProvisionNewStore(t *testing.T) {
	db, err := storage.OpenMemory()
	assert.Nil(t, err, "open error")
	defer db.Close()

	_, err = ledger.Provision(db, 10)
	assert.Equal(t, fault.NotInitialised, err, "provisioned a store with no layout")
}

func TestInconsistentStore(t *testing.T) {
	l, db := newLedger(t, 10)
	defer db.Close()

	sender := fixtures.NewPrivateKey(t)
	receiver := fixtures.NewPrivateKey(t).Account()
	_, err := l.RecordTransfer(signedRequest(t, sender, receiver, 1, "", ""))
	assert.Nil(t, err, "record error")
	l.Close()

	// a counter that disagrees with the records
	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Counter.Put([]byte("count"), counter.Pack(2))
	assert.Nil(t, db.Commit(), "commit error")

	_, err = ledger.New(db, testConfiguration(10))
	assert.Equal(t, fault.DatabaseIsInconsistent, err, "count mismatch accepted")

	// a counter far beyond the layout must not be trusted for allocation
	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Counter.Put([]byte("count"), counter.Pack(1<<62))
	assert.Nil(t, db.Commit(), "commit error")

	_, err = ledger.New(db, testConfiguration(10))
	assert.Equal(t, fault.DatabaseIsInconsistent, err, "huge count accepted")

	// one past the maximum
	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Counter.Put([]byte("count"), counter.Pack(11))
	assert.Nil(t, db.Commit(), "commit error")

	_, err = ledger.New(db, testConfiguration(10))
	assert.Equal(t, fault.DatabaseIsInconsistent, err, "count above maximum accepted")

	// a gap in the record indexes
	assert.Nil(t, db.Begin(), "begin error")
	db.Pool.Counter.Put([]byte("count"), counter.Pack(1))
	db.Pool.Transfers.Put(counter.Pack(5), []byte{0x01})
	assert.Nil(t, db.Commit(), "commit error")

	_, err = ledger.New(db, testConfiguration(10))
	assert.Equal(t, fault.DatabaseIsInconsistent, err, "gap accepted")
}

func TestInvalidConfiguration(t *testing.T) {
	db, err := storage.OpenMemory()
	assert.Nil(t, err, "open error")
	defer db.Close()

	configuration := testConfiguration(10)
	configuration.MaximumMessageBytes = -1
	_, err = ledger.New(db, configuration)
	assert.Equal(t, fault.LayoutMismatch, err, "negative budget accepted")

	_, err = ledger.New(nil, configuration)
	assert.Equal(t, fault.DatabaseIsNotSet, err, "nil database accepted")
}

func TestDefaults(t *testing.T) {
	db, err := storage.OpenMemory()
	assert.Nil(t, err, "open error")
	defer db.Close()

	l, err := ledger.New(db, nil)
	assert.Nil(t, err, "new error")
	defer l.Close()

	layout := l.Layout()
	assert.Equal(t, uint64(ledger.DefaultMaximumRecords), layout.MaximumRecords, "records")
	assert.Equal(t, 256, layout.Limits.MaximumMessageBytes, "message")
	assert.Equal(t, 64, layout.Limits.MaximumKeywordBytes, "keyword")
}
