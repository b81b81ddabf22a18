// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/logger"
)

// LogCategory - name of the test log file
const LogCategory = "testing"

var dir string

// SetupTestLogger - start logging into a throwaway directory
func SetupTestLogger() {
	var err error
	dir, err = ioutil.TempDir("", "ledgerd-"+LogCategory)
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	if "" == dir {
		return
	}
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// NewPrivateKey - a fresh test network key or fail the test
func NewPrivateKey(t *testing.T) *account.PrivateKey {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

var nonce uint64

// SignedRequest - a transfer request signed by its sender, each call
// uses a fresh nonce
func SignedRequest(t *testing.T, sender *account.PrivateKey, receiver *account.Account, amount uint64, message string, keyword string) *transferrecord.Request {
	request := &transferrecord.Request{
		Sender:   sender.Account(),
		Receiver: receiver,
		Amount:   amount,
		Message:  message,
		Keyword:  keyword,
		Nonce:    atomic.AddUint64(&nonce, 1),
	}
	limits := transferrecord.Limits{
		MaximumMessageBytes: len(message),
		MaximumKeywordBytes: len(keyword),
	}
	err := request.Sign(limits, sender)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return request
}

// Certificate - a fresh self signed PEM certificate and key for localhost
func Certificate(t *testing.T) (string, string) {
	cert, key, err := certgen.NewTLSCertPair("ledgerd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	return string(cert), string(key)
}
