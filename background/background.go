// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// the shutdown and completed channels for one background
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for a set of started backgrounds
type T struct {
	s []shutdown
}

// Process - type signature for a background process
//
// the process must exit when the shutdown channel is closed and must
// close done just before returning
type Process interface {
	Run(args interface{}, shutdown <-chan struct{}, done chan<- struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
//
// all are passed the same arbitrary argument
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	for i, p := range processes {
		s := make(chan struct{})
		f := make(chan struct{})
		register.s[i].shutdown = s
		register.s[i].finished = f
		go p.Run(args, s, f)
	}
	return register
}

// Stop - shut down the whole set and wait for completion
func (t *T) Stop() {

	if t == nil {
		return
	}

	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
