// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/zmqutil"
)

func TestAuthenticationRestart(t *testing.T) {
	assert.Nil(t, zmqutil.StartAuthentication(), "first start")
	assert.Nil(t, zmqutil.StartAuthentication(), "second user")

	zmqutil.StopAuthentication()
	zmqutil.StopAuthentication()

	// extra stop is ignored
	zmqutil.StopAuthentication()

	assert.Nil(t, zmqutil.StartAuthentication(), "restart after last stop")
	zmqutil.StopAuthentication()
}
