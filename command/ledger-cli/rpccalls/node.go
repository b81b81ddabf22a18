// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/ledgerd/rpc/node"
	"github.com/bitmark-inc/ledgerd/rpc/tokens"
)

// GetInfo - request status from ledgerd
func (client *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.client.Call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// GetTokens - the token registry list and cursor
func (client *Client) GetTokens() (*tokens.TokensReply, error) {
	var reply tokens.TokensReply
	if err := client.client.Call("Registry.Tokens", &tokens.TokensArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
