// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/command/ledger-cli/configuration"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/ledgerd/zmqutil"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	connections, err := checkConnect(c.String("connect"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	seed, err := checkSeed(c.String("seed"), c.Bool("new"), m.testnet)
	if nil != err {
		return err
	}

	var subscription *configuration.Subscription
	if subscribe := c.String("subscribe"); "" != subscribe {
		if _, err := util.NewConnection(subscribe); nil != err {
			return err
		}
		publicKey := c.String("publisher-key")
		if "" != publicKey {
			if _, err := zmqutil.ReadPublicKey(publicKey); nil != err {
				return err
			}
		}
		subscription = &configuration.Subscription{
			Connect:   subscribe,
			PublicKey: publicKey,
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "testnet: %t\n", m.testnet)
		fmt.Fprintf(m.e, "connect: %v\n", connections)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	// Create the folder hierarchy for configuration if not existing
	configDir := path.Dir(m.file)
	d, err := util.IsDirectory(configDir)
	if nil != err {
		if err := os.MkdirAll(configDir, 0750); nil != err {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	config := configuration.New(name, m.testnet, connections)
	config.Subscribe = subscription

	password, err := newPassword(c.GlobalString("password"))
	if nil != err {
		return err
	}

	err = config.AddIdentity(name, description, seed, password)
	if nil != err {
		return err
	}

	m.config = config
	m.save = true

	return nil
}

// password from the command line or prompted twice
func newPassword(password string) (string, error) {
	if "" == password {
		return promptNewPassword()
	}
	if len(password) < minimumPasswordLength {
		return "", fault.InvalidPasswordLength
	}
	return password, nil
}
