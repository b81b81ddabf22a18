// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - append only record of transfers
//
// A Ledger owns one storage.Database. RecordTransfer is the only
// writer: it checks the request, writes the record, the new count and
// the request digest in a single batch and then publishes a new
// immutable snapshot and queues the notification, all while holding
// the writer lock. Readers load the current snapshot and never take
// the lock.
//
// The store capacity (maximum records and per-field byte budgets) is
// written into the Meta pool when the store is created. It can only
// be raised afterwards with Provision while no ledger has the store
// open.
package ledger
