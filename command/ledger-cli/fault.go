// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// command line errors - keep in alphabetic order
const (
	ErrInvalidNetwork      = fault.InvalidError("network can only be bitmark/testing/local")
	ErrNoConnections       = fault.InvalidError("no ledgerd connections configured")
	ErrNoSubscription      = fault.InvalidError("no ledgerd publisher configured")
	ErrRequiredAmount      = fault.InvalidError("amount is required")
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredReceiver    = fault.InvalidError("receiver is required")
	ErrRequiredSeed        = fault.InvalidError("seed or new is required")
)
