// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/limitedset"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transferrecord"
	"github.com/bitmark-inc/logger"
)

// defaults for a new store
const (
	DefaultMaximumRecords    = 10000
	DefaultNotificationQueue = messagebus.DefaultQueueSize
	DefaultRecentRequests    = 1000
)

// Configuration - ledger settings from the configuration file
//
// the capacity fields only take effect when a store is created,
// afterwards the stored layout wins
type Configuration struct {
	MaximumRecords      uint64 `gluamapper:"maximum_records" json:"maximum_records"`
	MaximumMessageBytes int    `gluamapper:"maximum_message_bytes" json:"maximum_message_bytes"`
	MaximumKeywordBytes int    `gluamapper:"maximum_keyword_bytes" json:"maximum_keyword_bytes"`
	NotificationQueue   int    `gluamapper:"notification_queue" json:"notification_queue"`
	RecentRequests      int    `gluamapper:"recent_requests" json:"recent_requests"`

	// source of record timestamps, nil means time.Now
	Clock func() time.Time `gluamapper:"-" json:"-"`
}

// layout requested by a configuration, zero values take defaults
func (configuration *Configuration) layout() Layout {
	layout := Layout{
		MaximumRecords: configuration.MaximumRecords,
		Limits: transferrecord.Limits{
			MaximumMessageBytes: configuration.MaximumMessageBytes,
			MaximumKeywordBytes: configuration.MaximumKeywordBytes,
		},
	}
	if 0 == layout.MaximumRecords {
		layout.MaximumRecords = DefaultMaximumRecords
	}
	if 0 == layout.Limits.MaximumMessageBytes {
		layout.Limits.MaximumMessageBytes = transferrecord.DefaultMaximumMessageBytes
	}
	if 0 == layout.Limits.MaximumKeywordBytes {
		layout.Limits.MaximumKeywordBytes = transferrecord.DefaultMaximumKeywordBytes
	}
	return layout
}

// immutable view published after every successful record
type snapshot struct {
	records   []*transferrecord.Transfer
	count     uint64
	usedBytes uint64
}

// Ledger - one append only transfer history with its counter
type Ledger struct {
	sync.Mutex // serialises writers

	log      *logger.L
	database *storage.Database
	layout   Layout
	capacity uint64

	current atomic.Value // *snapshot

	recent    *limitedset.LimitedSet
	bus       *messagebus.BroadcastQueue
	queueSize int
	clock     func() time.Time
}

// New - open a ledger over a database
//
// a new store is stamped with the configured layout, an existing
// store is checked record by record before the ledger is returned
func New(database *storage.Database, configuration *Configuration) (*Ledger, error) {
	if nil == database {
		return nil, fault.DatabaseIsNotSet
	}
	if nil == configuration {
		configuration = &Configuration{}
	}

	log := logger.New("ledger")

	layout, err := openLayout(log, database, configuration.layout())
	if nil != err {
		return nil, err
	}

	queueSize := configuration.NotificationQueue
	if queueSize <= 0 {
		queueSize = DefaultNotificationQueue
	}
	recent := configuration.RecentRequests
	if recent <= 0 {
		recent = DefaultRecentRequests
	}
	clock := configuration.Clock
	if nil == clock {
		clock = time.Now
	}

	l := &Ledger{
		log:       log,
		database:  database,
		layout:    layout,
		capacity:  layout.CapacityBytes(),
		recent:    limitedset.New(recent),
		bus:       messagebus.NewBroadcast(),
		queueSize: queueSize,
		clock:     clock,
	}

	s, err := l.restore()
	if nil != err {
		return nil, err
	}
	l.current.Store(s)

	log.Infof("records: %d/%d  bytes: %d/%d", s.count, layout.MaximumRecords, s.usedBytes, l.capacity)
	return l, nil
}

// use the stored layout, creating it from the requested one if absent
func openLayout(log *logger.L, database *storage.Database, requested Layout) (Layout, error) {
	if !requested.Limits.Valid() {
		return Layout{}, fault.LayoutMismatch
	}

	layout, found, err := readLayout(database)
	if nil != err {
		log.Errorf("read layout error: %s", err)
		return Layout{}, err
	}

	if found {
		if layout != requested {
			log.Warnf("stored layout: %+v  differs from configuration: %+v, using stored", layout, requested)
		}
		return layout, nil
	}

	// a store without a layout must not hold any records
	_, hasRecords, err := database.Pool.Transfers.LastElement()
	if nil != err {
		return Layout{}, err
	}
	if hasRecords {
		log.Critical("records present without a layout")
		return Layout{}, fault.DatabaseIsInconsistent
	}

	err = database.Begin()
	if nil != err {
		return Layout{}, err
	}
	putLayout(database, requested)
	database.Pool.Counter.Put(countKey, counter.Pack(0))
	err = database.Commit()
	if nil != err {
		return Layout{}, err
	}

	log.Infof("created layout: %+v", requested)
	return requested, nil
}

// rebuild the snapshot from storage
//
// record keys must run 0, 1, 2, ... with no gaps and the stored count
// must match the number of records and fit the layout
func (l *Ledger) restore() (*snapshot, error) {
	buffer, err := l.database.Pool.Counter.Get(countKey)
	if nil != err {
		return nil, err
	}
	stored, err := counter.FromBytes(buffer)
	if nil != err {
		l.log.Criticalf("invalid stored count: %x", buffer)
		return nil, fault.DatabaseIsInconsistent
	}

	if stored.Uint64() > l.layout.MaximumRecords {
		l.log.Criticalf("stored count: %d  exceeds maximum records: %d", stored.Uint64(), l.layout.MaximumRecords)
		return nil, fault.DatabaseIsInconsistent
	}

	s := &snapshot{
		records: make([]*transferrecord.Transfer, 0, stored.Uint64()),
	}

	cursor := l.database.Pool.Transfers.NewFetchCursor()
	err = cursor.Map(func(key []byte, value []byte) error {
		if !bytes.Equal(counter.Pack(s.count), key) {
			l.log.Criticalf("record: %d  unexpected key: %x", s.count, key)
			return fault.DatabaseIsInconsistent
		}
		transfer, n, err := transferrecord.Packed(value).Unpack(l.layout.Limits)
		if nil != err || n != len(value) {
			l.log.Criticalf("record: %d  unpack error: %v", s.count, err)
			return fault.DatabaseIsInconsistent
		}
		s.records = append(s.records, transfer)
		s.count += 1
		s.usedBytes += uint64(n)
		return nil
	})
	if nil != err {
		return nil, err
	}

	if s.count != stored.Uint64() {
		l.log.Criticalf("stored count: %d  records: %d", stored.Uint64(), s.count)
		return nil, fault.DatabaseIsInconsistent
	}
	return s, nil
}

func (l *Ledger) snapshot() *snapshot {
	return l.current.Load().(*snapshot)
}

// Layout - the capacity in force
func (l *Ledger) Layout() Layout {
	return l.layout
}

// Close - remove all listeners, the database is left open for the owner to close
func (l *Ledger) Close() {
	l.Lock()
	defer l.Unlock()
	l.bus.Close()
	l.log.Info("closed")
}
