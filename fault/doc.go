// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error classes and instances
//
// every error is a single package level value so callers compare with
// == and the class predicates (IsErrUnauthorized, IsErrCapacity,
// IsErrFieldTooLong, IsErrStorage, ...) decide how a failure is
// reported, e.g. the RPC layer returns the text unchanged while the
// daemon refuses to start on a storage class error
package fault
