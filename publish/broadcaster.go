// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/ledgerd/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	broadcasterZapDomain = "broadcaster"
	transferCommand      = "transfer"
	pendingSize          = 100
)

type broadcaster struct {
	log     *logger.L
	socket4 *zmq.Socket
	socket6 *zmq.Socket
	source  Source
	sent    counter.Counter
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string, source Source) error {

	log := logger.New("broadcaster")
	brdc.log = log
	brdc.source = source
	brdc.sent.Set(0)

	log.Info("initialising…")

	c, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// allocate IPv4 and IPv6 sockets
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - forward ledger notifications to the sockets
//
// sockets are only touched from this goroutine
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	pending := make(chan []byte, pendingSize)
	stopped := make(chan struct{})

	subscription := brdc.source.OnTransfer(func(transfer transferrecord.Transfer) {
		data, err := json.Marshal(transfer)
		if nil != err {
			log.Errorf("json encode error: %s", err)
			return
		}
		select {
		case pending <- data:
		case <-stopped:
		}
	})

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case data := <-pending:
			log.Debugf("sending: %s  data: %s", transferCommand, data)
			brdc.sent.Increment()
			brdc.process(brdc.socket4, data)
			brdc.process(brdc.socket6, data)
		}
	}

	subscription.Unregister()
	close(stopped)
	<-subscription.Done()

	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
	log.Info("stopped")
}

// send one message, a subscriber that cannot keep up loses it
func (brdc *broadcaster) process(socket *zmq.Socket, data []byte) {
	if nil == socket {
		return
	}

	_, err := socket.Send(transferCommand, zmq.SNDMORE|zmq.DONTWAIT)
	if nil != err {
		brdc.log.Warnf("send command error: %s", err)
		return
	}
	_, err = socket.SendBytes(data, zmq.DONTWAIT)
	if nil != err {
		brdc.log.Warnf("send data error: %s", err)
	}
}
