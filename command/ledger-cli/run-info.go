// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/rpc/node"
)

type infoReply struct {
	*node.InfoReply
	Connection string `json:"_connection"`
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJSON(m.w, infoReply{
		InfoReply:  response,
		Connection: m.config.Connections[m.connectionOffset],
	})
}

func runTokens(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetTokens()
	if nil != err {
		return err
	}

	return printJSON(m.w, response)
}

type identityItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
	Private     bool   `json:"private"`
}

type identitiesReply struct {
	DefaultIdentity string         `json:"default_identity"`
	TestNet         bool           `json:"testnet"`
	Connections     []string       `json:"connections"`
	Identities      []identityItem `json:"identities"`
}

func runIdentities(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	reply := identitiesReply{
		DefaultIdentity: m.config.DefaultIdentity,
		TestNet:         m.config.TestNet,
		Connections:     m.config.Connections,
		Identities:      make([]identityItem, 0, len(m.config.Identities)),
	}
	for name, id := range m.config.Identities {
		reply.Identities = append(reply.Identities, identityItem{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
			Private:     "" != id.Data,
		})
	}
	sort.Slice(reply.Identities, func(i, j int) bool {
		return reply.Identities[i].Name < reply.Identities[j].Name
	})

	return printJSON(m.w, reply)
}
