// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package facet

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
)

// Event - one audit event collected during a dispatch
type Event struct {
	Topic string
	Item  interface{}
}

// Context - the delegated execution context of one dispatch
//
// carries the original caller identity into the facet and collects
// events; the dispatcher forwards the events to the message bus only
// after the storage transaction commits, so aborted work never emits
type Context struct {
	Caller  address.Address
	events  []Event
	entered bool
}

// NewContext - context for one top-level dispatch
func NewContext(caller address.Address) *Context {
	return &Context{
		Caller: caller,
	}
}

// Emit - queue an audit event for after-commit delivery
func (ctx *Context) Emit(topic string, item interface{}) {
	ctx.events = append(ctx.events, Event{Topic: topic, Item: item})
}

// Events - events collected so far
func (ctx *Context) Events() []Event {
	return ctx.events
}

// EnterGuard - mark a guarded section of the dispatch
//
// a second entry while the flag is held means a collaborator called
// back into a guarded operation
func (ctx *Context) EnterGuard() error {
	if ctx.entered {
		return fault.ReentrantCall
	}
	ctx.entered = true
	return nil
}

// ExitGuard - release the guard, to be deferred on entry
func (ctx *Context) ExitGuard() {
	ctx.entered = false
}
