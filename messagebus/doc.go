// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan out of ledger events to listeners
//
// every listener owns a buffered channel, Send never blocks and a
// full channel only loses that one message for that one listener
package messagebus
