// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast each recorded transfer on ZeroMQ
//
// every message has two parts: the command "transfer" and the JSON
// encoded record
package publish

import (
	"sync"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/zmqutil"
	"github.com/bitmark-inc/logger"
)

// Configuration - a block of configuration data
//
// key files are optional, without them the sockets are not encrypted
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Source - where transfers come from
type Source interface {
	OnTransfer(listener ledger.Listener) *ledger.Subscription
}

// globals for background proccess
type publishData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	brdc broadcaster

	// for background
	background *background.T

	// CURVE handler started by this package
	authenticated bool

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - start the broadcaster, does nothing if no broadcast
// addresses are configured
func Initialise(configuration *Configuration, source Source) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		globalData.log.Warn("no broadcast addresses: publishing disabled")
		globalData.initialised = true
		return nil
	}

	var privateKey []byte
	var publicKey []byte
	if "" != configuration.PrivateKey || "" != configuration.PublicKey {
		var err error
		privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			globalData.log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return err
		}
		publicKey, err = zmqutil.ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			globalData.log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return err
		}
		globalData.log.Tracef("public key:  %x", publicKey)

		err = zmqutil.StartAuthentication()
		if nil != err {
			globalData.log.Errorf("start authentication error: %s", err)
			return err
		}
		globalData.authenticated = true
	}

	err := globalData.brdc.initialise(privateKey, publicKey, configuration.Broadcast, source)
	if nil != err {
		stopAuthentication()
		return err
	}

	// all data initialised
	globalData.initialised = true

	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background, nil when publishing was disabled
	globalData.background.Stop()
	globalData.background = nil
	stopAuthentication()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func stopAuthentication() {
	if globalData.authenticated {
		zmqutil.StopAuthentication()
		globalData.authenticated = false
	}
}

// Sent - number of transfers broadcast since start
func Sent() uint64 {
	return globalData.brdc.sent.Uint64()
}
