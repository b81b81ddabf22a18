// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ledgerd/fault"
)

// SignatureSize - bytes in a complete signature
const SignatureSize = ed25519.SignatureSize

// Signature - ed25519 signature over a request's signing message
type Signature []byte

// String - hex form for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// GoString - hex form for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + signature.String() + ">"
}

// MarshalText - hex text for JSON
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(signature.String()), nil
}

// UnmarshalText - hex text from JSON
//
// a short signature is kept so that the check against the sender
// reports it, anything longer than a signature is refused here
func (signature *Signature) UnmarshalText(s []byte) error {
	if len(s) > hex.EncodedLen(SignatureSize) {
		return fault.SignatureTooLong
	}
	sig, err := hex.DecodeString(string(s))
	if nil != err {
		return fault.InvalidSignature
	}
	*signature = sig
	return nil
}
