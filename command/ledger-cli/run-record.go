// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/command/ledger-cli/rpccalls"
)

func runRecord(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := identityName(c.GlobalString("identity"), m)

	receiverName := c.String("receiver")
	if "" == receiverName {
		return ErrRequiredReceiver
	}
	receiver, err := m.config.Account(receiverName)
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return ErrRequiredAmount
	}

	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", name)
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
	}

	sender, err := unlockIdentity(name, c.GlobalString("password"), m)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	transfer, err := client.Record(&rpccalls.RecordData{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
		Message:  c.String("message"),
		Keyword:  c.String("keyword"),
	})
	if nil != err {
		return err
	}

	return printJSON(m.w, transfer)
}
