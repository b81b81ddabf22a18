// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// DefaultQueueSize - buffer size used when a listener asks for zero
const DefaultQueueSize = 1000

// Message - one event
type Message struct {
	Command  string
	Transfer *transferrecord.Transfer
}

// BroadcastQueue - delivers each message to every listener
type BroadcastQueue struct {
	sync.Mutex
	listeners map[uint64]chan Message
	nextID    uint64
	closed    bool
	sent      counter.Counter
	dropped   counter.Counter
}

// NewBroadcast - an empty queue
func NewBroadcast() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: make(map[uint64]chan Message),
	}
}

// Listen - add a listener with its own buffer
//
// returns an identifier for Release and the channel to read; the
// channel is closed when the listener is released
func (queue *BroadcastQueue) Listen(size int) (uint64, <-chan Message) {
	if size <= 0 {
		size = DefaultQueueSize
	}

	c := make(chan Message, size)

	queue.Lock()
	defer queue.Unlock()

	if queue.closed {
		close(c)
		return 0, c
	}

	queue.nextID += 1
	queue.listeners[queue.nextID] = c
	return queue.nextID, c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(id uint64) {
	queue.Lock()
	defer queue.Unlock()

	if c, ok := queue.listeners[id]; ok {
		delete(queue.listeners, id)
		close(c)
	}
}

// Send - queue a message for every listener without blocking
//
// returns the number of listeners whose buffer was full
func (queue *BroadcastQueue) Send(command string, transfer *transferrecord.Transfer) int {
	m := Message{
		Command:  command,
		Transfer: transfer,
	}

	queue.Lock()
	defer queue.Unlock()

	dropped := 0
	for _, c := range queue.listeners {
		select {
		case c <- m:
			queue.sent.Increment()
		default:
			queue.dropped.Increment()
			dropped += 1
		}
	}
	return dropped
}

// Listeners - number of active listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.Lock()
	defer queue.Unlock()
	return len(queue.listeners)
}

// Sent - total messages queued to listeners
func (queue *BroadcastQueue) Sent() uint64 {
	return queue.sent.Uint64()
}

// Dropped - total messages lost to full buffers
func (queue *BroadcastQueue) Dropped() uint64 {
	return queue.dropped.Uint64()
}

// Close - release every listener, later Listen calls get a closed channel
func (queue *BroadcastQueue) Close() {
	queue.Lock()
	defer queue.Unlock()

	for id, c := range queue.listeners {
		delete(queue.listeners, id)
		close(c)
	}
	queue.closed = true
}
