// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"sync"

	zmq "github.com/pebbe/zmq4"
)

// the ZAP handler is shared by every CURVE socket in the process
var authentication struct {
	sync.Mutex
	users int
}

// StartAuthentication - start the ZMQ security handler on first use
func StartAuthentication() error {
	authentication.Lock()
	defer authentication.Unlock()

	if 0 == authentication.users {
		zmq.AuthSetVerbose(false)
		if err := zmq.AuthStart(); nil != err {
			return err
		}
	}
	authentication.users += 1
	return nil
}

// StopAuthentication - stop the handler once its last user is done
func StopAuthentication() {
	authentication.Lock()
	defer authentication.Unlock()

	if 0 == authentication.users {
		return
	}
	authentication.users -= 1
	if 0 == authentication.users {
		zmq.AuthStop()
	}
}
