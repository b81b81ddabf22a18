// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/transferrecord"
)

func transfer(amount uint64) *transferrecord.Transfer {
	return &transferrecord.Transfer{
		Amount: amount,
	}
}

func TestBroadcast(t *testing.T) {
	queue := messagebus.NewBroadcast()

	// nothing listening so these messages should be dropped
	for i := uint64(0); i < 3; i += 1 {
		assert.Equal(t, 0, queue.Send("ignored", transfer(i)), "nothing can be full")
	}

	const listeners = 5
	const items = 10

	var l [listeners]int
	var wg sync.WaitGroup

	channels := make([]<-chan messagebus.Message, listeners)
	for i := 0; i < listeners; i += 1 {
		_, channels[i] = queue.Listen(items)
	}

	for i := 0; i < listeners; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := uint64(0); j < items; j += 1 {
				received := <-channels[n]
				if received.Transfer.Amount != j {
					t.Errorf("listener[%d] actual: %d  expected: %d", n, received.Transfer.Amount, j)
				} else {
					l[n] += 1
				}
			}
		}(i)
	}

	for i := uint64(0); i < items; i += 1 {
		queue.Send("transfer", transfer(i))
	}

	wg.Wait()
	for i, n := range l {
		if n != items {
			t.Errorf("listener[%d] received: %d  expected: %d", i, n, items)
		}
	}
	assert.Equal(t, uint64(listeners*items), queue.Sent(), "wrong sent count")
}

func TestFullBufferDrops(t *testing.T) {
	queue := messagebus.NewBroadcast()

	_, slow := queue.Listen(2)
	_, fast := queue.Listen(10)

	dropped := 0
	for i := uint64(0); i < 5; i += 1 {
		dropped += queue.Send("transfer", transfer(i))
	}
	assert.Equal(t, 3, dropped, "wrong drop count")
	assert.Equal(t, uint64(3), queue.Dropped(), "wrong dropped total")
	assert.Equal(t, 2, len(slow), "slow listener buffer")
	assert.Equal(t, 5, len(fast), "fast listener must not lose messages")

	// the oldest messages are kept
	m := <-slow
	assert.Equal(t, uint64(0), m.Transfer.Amount, "wrong first message")
}

func TestRelease(t *testing.T) {
	queue := messagebus.NewBroadcast()

	id, c := queue.Listen(1)
	assert.Equal(t, 1, queue.Listeners(), "listener not added")

	queue.Release(id)
	assert.Equal(t, 0, queue.Listeners(), "listener not removed")

	_, ok := <-c
	assert.False(t, ok, "channel not closed")

	// releasing twice is harmless
	queue.Release(id)

	queue.Send("transfer", transfer(1))
}

func TestClose(t *testing.T) {
	queue := messagebus.NewBroadcast()

	_, c1 := queue.Listen(1)
	queue.Close()

	_, ok := <-c1
	assert.False(t, ok, "channel not closed")

	_, c2 := queue.Listen(1)
	_, ok = <-c2
	assert.False(t, ok, "listen after close must return closed channel")
}
