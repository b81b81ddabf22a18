// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk transfer store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. index    = big endian uint64 (8 bytes), zero based record number
// 4. digest   = request digest as 32 byte SHA3-256(signed request)
// 5. count    = big endian uint64 (8 bytes)
//
// Transfers:
//
//   T ++ index                 - recorded transfers in insertion order
//                                data: packed transfer
//
// Counter:
//
//   C ++ "count"               - number of recorded transfers
//                                data: count
//
// Digests:
//
//   D ++ digest                - signed requests already recorded
//                                data: index
//
// Meta:
//
//   M ++ name                  - store layout fixed when the store is created
//                                data: big endian uint64 (8 bytes)
//
// A record, its counter update and its digest are always written in
// one batch so the pools can never disagree.
package storage
