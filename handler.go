// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package refetch

import (
	"github.com/gogama/refetch/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client. Install handlers before the client is used;
// a HandlerGroup is not safe to modify concurrently with a fetch.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	g.init(evt, h)
	g.handlers[evt] = append(g.handlers[evt], h)
}

// PushFront adds an event handler to the front of the event handler
// chain for a specific event type.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	g.init(evt, h)
	chain := make([]Handler, 0, len(g.handlers[evt])+1)
	g.handlers[evt] = append(append(chain, h), g.handlers[evt]...)
}

// Len returns the length of the event handler chain for a specific
// event type.
func (g *HandlerGroup) Len(evt Event) int {
	i := int(evt)
	if i < 0 || i >= len(g.handlers) {
		return 0
	}
	return len(g.handlers[i])
}

func (g *HandlerGroup) init(evt Event, h Handler) {
	if h == nil {
		panic("refetch: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic("refetch: invalid event")
	}
	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles the occurrence of an event during a fetch.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
