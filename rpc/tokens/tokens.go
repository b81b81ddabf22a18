// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitRegistry = 10
	rateBurstRegistry = 10
)

// Source - read side of the token registry
type Source interface {
	Tokens() []string
	Cursor() uint64
	IsInitialised() bool
}

// Registry - type for RPC calls
type Registry struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Source  Source
}

// New - create the service
func New(log *logger.L, source Source) *Registry {
	return &Registry{
		Log:     log,
		Limiter: ratelimit.New(rateLimitRegistry, rateBurstRegistry),
		Source:  source,
	}
}

// TokensArguments - empty arguments for tokens request
type TokensArguments struct{}

// TokensReply - the token list and cursor
type TokensReply struct {
	Tokens []string `json:"tokens"`
	Cursor uint64   `json:"cursor,string"`
}

// Tokens - current token list
func (registry *Registry) Tokens(_ *TokensArguments, reply *TokensReply) error {

	if err := ratelimit.Limit(registry.Limiter); nil != err {
		return err
	}

	if nil == registry.Source || !registry.Source.IsInitialised() {
		return fault.NotInitialised
	}

	reply.Tokens = registry.Source.Tokens()
	reply.Cursor = registry.Source.Cursor()
	return nil
}
