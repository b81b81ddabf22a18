// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// Listener - receives a copy of each new record
type Listener func(transferrecord.Transfer)

// Subscription - handle returned by OnTransfer
type Subscription struct {
	ledger  *Ledger
	id      uint64
	removed int32
	once    sync.Once
	done    chan struct{}
}

// OnTransfer - register a listener
//
// the listener runs on its own goroutine and sees records in the
// order they were recorded; if it falls more than the notification
// queue size behind, further notifications to it are dropped
func (l *Ledger) OnTransfer(listener Listener) *Subscription {
	id, queue := l.bus.Listen(l.queueSize)

	s := &Subscription{
		ledger: l,
		id:     id,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		for m := range queue {
			if 0 != atomic.LoadInt32(&s.removed) {
				continue
			}
			s.deliver(listener, m.Transfer)
		}
	}()

	return s
}

// a panicking listener is logged and kept registered
func (s *Subscription) deliver(listener Listener, transfer *transferrecord.Transfer) {
	defer func() {
		if r := recover(); nil != r {
			s.ledger.log.Errorf("listener: %d  panic: %v", s.id, r)
		}
	}()
	listener(*transfer.Clone())
}

// Unregister - stop delivery, queued notifications are discarded
func (s *Subscription) Unregister() {
	s.once.Do(func() {
		atomic.StoreInt32(&s.removed, 1)
		s.ledger.bus.Release(s.id)
	})
}

// Done - closed once the delivery goroutine has exited
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
