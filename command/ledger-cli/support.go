// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/command/ledger-cli/rpccalls"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// accept the usual aliases for each chain
func checkNetwork(network string) (string, error) {
	switch strings.ToLower(network) {
	case "bitmark", "live":
		return chain.Bitmark, nil
	case "testing", "test":
		return chain.Testing, nil
	case "local", "regression":
		return chain.Local, nil
	default:
		return "", ErrInvalidNetwork
	}
}

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}
	return name, nil
}

// one or more HOST:PORT separated by commas
func checkConnect(connect string) ([]string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return nil, ErrRequiredConnect
	}

	connections := []string{}
	for _, c := range strings.Split(connect, ",") {
		c = strings.TrimSpace(c)
		if "" == c {
			continue
		}
		if _, err := util.NewConnection(c); nil != err {
			return nil, err
		}
		connections = append(connections, c)
	}
	if 0 == len(connections) {
		return nil, ErrRequiredConnect
	}
	return connections, nil
}

func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}
	return description, nil
}

// exactly one of an existing seed or a new one for the network
func checkSeed(seed string, new bool, testnet bool) (string, error) {
	if "" == seed {
		if !new {
			return "", ErrRequiredSeed
		}
		key, err := account.NewPrivateKey(testnet)
		if nil != err {
			return "", err
		}
		return key.Seed(), nil
	}
	if new {
		return "", fault.IncompatibleOptions
	}

	key, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return "", err
	}
	if key.Test != testnet {
		return "", fault.WrongNetworkForPublicKey
	}
	return seed, nil
}

// the identity name from the command line or the default
func identityName(globalIdentity string, m *metadata) string {
	if "" != globalIdentity {
		return globalIdentity
	}
	return m.config.DefaultIdentity
}

// the identity with its private key unlocked
func unlockIdentity(name string, password string, m *metadata) (*account.PrivateKey, error) {
	if "" == password {
		var err error
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}

	private, err := m.config.Private(password, name)
	if nil != err {
		return nil, err
	}
	return private.PrivateKey, nil
}

// connect to the chosen ledgerd
func newClient(m *metadata) (*rpccalls.Client, error) {
	if 0 == len(m.config.Connections) {
		return nil, ErrNoConnections
	}
	connect := m.config.Connections[m.connectionOffset]
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", connect)
	}
	return rpccalls.NewClient(m.testnet, connect, m.verbose, m.e)
}

func printJSON(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
