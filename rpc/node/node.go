// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Status - usage figures of the ledger
type Status interface {
	Capacity() ledger.Capacity
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Status  Status
	counter *counter.Counter
}

// New - create the service, counter is the live RPC connection count
func New(log *logger.L, status Status, start time.Time, version string, chain string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: ratelimit.New(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		Status:  status,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain          string `json:"chain"`
	Version        string `json:"version"`
	Uptime         string `json:"uptime"`
	Transfers      uint64 `json:"transfers,string"`
	MaximumRecords uint64 `json:"maximumRecords,string"`
	UsedBytes      uint64 `json:"usedBytes,string"`
	CapacityBytes  uint64 `json:"capacityBytes,string"`
	RPCs           uint64 `json:"rpcs"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Status {
		return fault.DatabaseIsNotSet
	}

	capacity := node.Status.Capacity()

	reply.Chain = node.Chain
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Transfers = capacity.Records
	reply.MaximumRecords = capacity.MaximumRecords
	reply.UsedBytes = capacity.UsedBytes
	reply.CapacityBytes = capacity.CapacityBytes
	reply.RPCs = node.counter.Uint64()
	return nil
}
