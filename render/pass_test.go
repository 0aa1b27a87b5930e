// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
	err  error
	ctx  PassContext
}

func (r *recorder) DrawUnit(ctx PassContext) error {
	r.ctx = ctx
	*r.log = append(*r.log, r.name)
	return r.err
}

func TestPassPriorityOrder(t *testing.T) {
	var log []string
	p := NewPass("world")
	p.Add(&recorder{name: "c", log: &log}, 30)
	p.Add(&recorder{name: "a", log: &log}, 10)
	p.Add(&recorder{name: "b1", log: &log}, 20)
	p.Add(&recorder{name: "b2", log: &log}, 20)

	if p.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", p.Len())
	}
	if err := p.Execute(1); err != nil {
		t.Fatalf("Execute() = %v", err)
	}

	want := []string{"a", "b1", "b2", "c"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("ran[%d] = %s, want %s", i, log[i], want[i])
		}
	}
	if p.Len() != 0 {
		t.Errorf("Len() after Execute = %d, want 0", p.Len())
	}
}

func TestPassExecuteJoinsErrors(t *testing.T) {
	var log []string
	errA := errors.New("a failed")
	errC := errors.New("c failed")

	p := NewPass("world")
	p.Add(&recorder{name: "a", log: &log, err: errA}, 0)
	p.Add(&recorder{name: "b", log: &log}, 1)
	p.Add(&recorder{name: "c", log: &log, err: errC}, 2)

	err := p.Execute(7)
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Errorf("Execute() = %v, want both errors", err)
	}
	if len(log) != 3 {
		t.Errorf("ran %d drawables, want 3", len(log))
	}
}

func TestFrame(t *testing.T) {
	var log []string
	f := NewFrame("opaque", "overlay", "opaque")

	if f.FrameNumber() != 0 {
		t.Errorf("FrameNumber() = %d before Begin, want 0", f.FrameNumber())
	}
	if n := f.Begin(); n != 1 {
		t.Errorf("Begin() = %d, want 1", n)
	}

	over := &recorder{name: "overlay", log: &log}
	opaque := &recorder{name: "opaque", log: &log}
	if err := f.Register("overlay", over, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.Register("opaque", opaque, 5); err != nil {
		t.Fatal(err)
	}
	if err := f.Register("missing", opaque, 0); !errors.Is(err, ErrUnknownPass) {
		t.Errorf("Register(missing) = %v, want ErrUnknownPass", err)
	}

	if err := f.Execute(); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0] != "opaque" || log[1] != "overlay" {
		t.Errorf("ran %v, want [opaque overlay]", log)
	}
	if opaque.ctx.Frame != 1 || opaque.ctx.Pass != "opaque" || opaque.ctx.Priority != 5 {
		t.Errorf("ctx = %+v", opaque.ctx)
	}
}

func TestFrameBeginDropsUnexecuted(t *testing.T) {
	var log []string
	f := NewFrame("world")
	f.Begin()
	_ = f.Register("world", &recorder{name: "stale", log: &log}, 0)

	f.Begin()
	p, ok := f.Pass("world")
	if !ok {
		t.Fatal("Pass(world) not found")
	}
	if p.Len() != 0 {
		t.Errorf("Len() after Begin = %d, want 0", p.Len())
	}
	if err := f.Execute(); err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("stale drawable ran: %v", log)
	}
}
