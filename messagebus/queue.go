// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/facetmarket/facetd/counter"
)

// internal constants
const (
	queueSize = 1000
)

// Message - one queued audit event
type Message struct {
	Topic string
	Item  interface{}
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)

	// events lost because no consumer was keeping up
	dropped counter.Counter
)

// Send - queue an event without blocking the sender
//
// a full queue drops the event; the audit log is advisory, the
// storage state is authoritative
func Send(topic string, item interface{}) {
	select {
	case queue <- Message{Topic: topic, Item: item}:
	default:
		dropped.Increment()
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}

// Dropped - number of events lost so far
func Dropped() uint64 {
	return dropped.Uint64()
}
