// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transferrecord

import (
	"unicode/utf8"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// default per-field byte budgets
const (
	DefaultMaximumMessageBytes = 256
	DefaultMaximumKeywordBytes = 64

	// hard ceiling so a record budget stays reasonable
	maximumFieldBytes = 65535

	maxSignatureLength = account.SignatureSize
)

// Limits - byte budgets for the variable length fields
type Limits struct {
	MaximumMessageBytes int `json:"maximumMessageBytes"`
	MaximumKeywordBytes int `json:"maximumKeywordBytes"`
}

// DefaultLimits - the budgets used when configuration is silent
func DefaultLimits() Limits {
	return Limits{
		MaximumMessageBytes: DefaultMaximumMessageBytes,
		MaximumKeywordBytes: DefaultMaximumKeywordBytes,
	}
}

// Valid - budgets must be positive and below the hard ceiling
func (limits Limits) Valid() bool {
	return limits.MaximumMessageBytes > 0 && limits.MaximumMessageBytes <= maximumFieldBytes &&
		limits.MaximumKeywordBytes > 0 && limits.MaximumKeywordBytes <= maximumFieldBytes
}

// Check - byte length of each field against its budget
func (limits Limits) Check(message string, keyword string) error {
	if len(message) > limits.MaximumMessageBytes {
		return fault.MessageTooLong
	}
	if len(keyword) > limits.MaximumKeywordBytes {
		return fault.KeywordTooLong
	}

	// text travels as JSON which cannot carry arbitrary bytes
	if !utf8.ValidString(message) {
		return fault.MessageNotUTF8
	}
	if !utf8.ValidString(keyword) {
		return fault.KeywordNotUTF8
	}
	return nil
}

// RecordBudget - largest packed size of a transfer under these limits
func (limits Limits) RecordBudget() int {
	n := len(util.ToVarint64(uint64(TransferTag)))
	n += 2 * account.IdentitySize
	n += amountSize + timestampSize
	n += len(util.ToVarint64(uint64(limits.MaximumMessageBytes))) + limits.MaximumMessageBytes
	n += len(util.ToVarint64(uint64(limits.MaximumKeywordBytes))) + limits.MaximumKeywordBytes
	return n
}
