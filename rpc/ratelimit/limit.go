// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - per service request throttling for the RPC server
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
)

// MaximumDelay - longest a request will be held before it is refused
const MaximumDelay = 2 * time.Second

// New - limiter allowing perSecond requests with the given burst
func New(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Limit - throttle a single request
func Limit(limiter *rate.Limiter) error {
	return hold(limiter.Reserve())
}

// LimitN - throttle a request covering count items
//
// an out of range count is still charged as one request so that
// repeated bad calls are throttled too
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := hold(limiter.Reserve()); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return hold(limiter.ReserveN(time.Now(), count))
}

// wait out a reservation unless it is impossible or too far away
func hold(r *rate.Reservation) error {
	if !r.OK() {
		return fault.RateLimiting
	}
	delay := r.Delay()
	if delay > MaximumDelay {
		r.Cancel()
		return fault.RateLimiting
	}
	time.Sleep(delay)
	return nil
}
