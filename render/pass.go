// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// ErrUnknownPass is returned when registering with a pass that the frame
// does not define.
var ErrUnknownPass = errors.New("render: unknown render pass")

// PassContext is handed to a Drawable when its pass executes.
type PassContext struct {
	// Frame is the number of the frame being rendered.
	Frame uint64

	// Pass is the name of the executing pass.
	Pass string

	// Priority is the priority the drawable registered with.
	Priority int
}

// Drawable is something a render pass can execute.
type Drawable interface {
	DrawUnit(ctx PassContext) error
}

type passEntry struct {
	drawable Drawable
	priority int
	index    int // registration order for stable sort
}

// Pass collects the drawables registered for the current frame and runs
// them in ascending priority. Equal priorities run in registration order.
type Pass struct {
	name     string
	entries  []passEntry
	regCount int
}

// NewPass creates an empty pass.
func NewPass(name string) *Pass {
	return &Pass{name: name, entries: make([]passEntry, 0, 16)}
}

// Name returns the pass name.
func (p *Pass) Name() string {
	return p.name
}

// Len returns the number of queued drawables.
func (p *Pass) Len() int {
	return len(p.entries)
}

// Add queues d at priority. Maintains sorted order via insertion sort.
func (p *Pass) Add(d Drawable, priority int) {
	entry := passEntry{drawable: d, priority: priority, index: p.regCount}
	p.regCount++

	pos := len(p.entries)
	for i, e := range p.entries {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	p.entries = append(p.entries, passEntry{})
	copy(p.entries[pos+1:], p.entries[pos:])
	p.entries[pos] = entry
}

// Execute runs every queued drawable once and empties the queue. All
// drawables run even if some fail; their errors are joined.
func (p *Pass) Execute(frame uint64) error {
	var errs []error
	for _, e := range p.entries {
		ctx := PassContext{Frame: frame, Pass: p.name, Priority: e.priority}
		if err := e.drawable.DrawUnit(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pass %s: %w", p.name, err))
		}
	}
	p.Reset()
	return errors.Join(errs...)
}

// Reset drops all queued drawables without running them.
func (p *Pass) Reset() {
	clear(p.entries)
	p.entries = p.entries[:0]
	p.regCount = 0
}

// Frame owns the render passes of one render loop and numbers its frames.
// Passes execute in the order given to NewFrame.
//
// A Frame is driven by the host loop:
//
//	frame := render.NewFrame("opaque", "alpha", "overlay")
//	for running {
//	    frame.Begin()
//	    for _, c := range curves {
//	        _ = c.Draw(frame)
//	    }
//	    if err := frame.Execute(); err != nil {
//	        log.Print(err)
//	    }
//	}
type Frame struct {
	number uint64
	passes []*Pass
	byName map[string]*Pass
}

// NewFrame creates a frame loop with the named passes.
func NewFrame(passNames ...string) *Frame {
	f := &Frame{byName: make(map[string]*Pass, len(passNames))}
	for _, name := range passNames {
		if _, dup := f.byName[name]; dup {
			continue
		}
		p := NewPass(name)
		f.passes = append(f.passes, p)
		f.byName[name] = p
	}
	return f
}

// Begin starts a new frame: the frame number advances and anything queued
// but never executed is dropped.
func (f *Frame) Begin() uint64 {
	f.number++
	for _, p := range f.passes {
		p.Reset()
	}
	return f.number
}

// FrameNumber returns the current frame number; 0 before the first Begin.
func (f *Frame) FrameNumber() uint64 {
	return f.number
}

// Pass returns the named pass.
func (f *Frame) Pass(name string) (*Pass, bool) {
	p, ok := f.byName[name]
	return p, ok
}

// Register adds d to the named pass for the current frame.
func (f *Frame) Register(pass string, d Drawable, priority int) error {
	p, ok := f.byName[pass]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPass, pass)
	}
	p.Add(d, priority)
	return nil
}

// Execute runs every pass in order.
func (f *Frame) Execute() error {
	var errs []error
	for _, p := range f.passes {
		if err := p.Execute(f.number); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
