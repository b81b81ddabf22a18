// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/ledgerd/zmqutil"
)

const (
	watchTimeout      = time.Second
	transferEventName = "transfer"
)

type receiver interface {
	Receive(flags zmq.Flag) ([][]byte, error)
}

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subscription := m.config.Subscribe
	if nil == subscription || "" == subscription.Connect {
		return ErrNoSubscription
	}

	conn, err := util.NewConnection(subscription.Connect)
	if nil != err {
		return err
	}

	// blank key => plain publisher
	var serverPublicKey []byte
	if "" != subscription.PublicKey {
		serverPublicKey, err = zmqutil.ReadPublicKey(subscription.PublicKey)
		if nil != err {
			return err
		}
	}

	client, err := zmqutil.NewClient(transferEventName, nil, nil, watchTimeout)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.Connect(conn, serverPublicKey)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "watching: %s\n", client)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	return watchTransfers(client, c.Int("count"), stop, func(transfer *transferrecord.Transfer) {
		printJSON(m.w, transfer)
	})
}

// receive until count transfers are seen or stop is signalled
func watchTransfers(client receiver, count int, stop <-chan os.Signal, display func(*transferrecord.Transfer)) error {
	seen := 0

	for 0 == count || seen < count {
		select {
		case <-stop:
			return nil
		default:
		}

		data, err := client.Receive(0)
		if nil != err && zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN) {
			continue
		}
		if nil != err {
			return err
		}

		transfer, err := decodeNotification(data)
		if nil != err {
			return err
		}
		if nil == transfer {
			continue
		}

		display(transfer)
		seen += 1
	}
	return nil
}

// ignores any other event, nil transfer in that case
func decodeNotification(data [][]byte) (*transferrecord.Transfer, error) {
	if 2 != len(data) {
		return nil, fault.UnknownRecord
	}
	if transferEventName != string(data[0]) {
		return nil, nil
	}

	var transfer transferrecord.Transfer
	err := json.Unmarshal(data[1], &transfer)
	if nil != err {
		return nil, err
	}
	return &transfer, nil
}
