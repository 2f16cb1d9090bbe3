// Package render wires the pipeline together: lowering, scheduling,
// and backend submission behind one call.
package render

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/backend"
	"github.com/swen-ui/swen/ir"
	"github.com/swen-ui/swen/scene"
	"github.com/swen-ui/swen/tile"
)

// Option configures a Renderer.
type Option func(*options)

type options struct {
	irCapacity    int
	schedulerOpts []tile.Option
}

// WithIRCapacity sets the instruction buffer capacity.
func WithIRCapacity(n int) Option {
	return func(o *options) {
		o.irCapacity = n
	}
}

// WithSchedulerOptions forwards options to the tile scheduler.
func WithSchedulerOptions(opts ...tile.Option) Option {
	return func(o *options) {
		o.schedulerOpts = append(o.schedulerOpts, opts...)
	}
}

// Renderer owns a backend of static type B together with the IR buffer
// and tile scheduler that feed it. Instantiate with a concrete backend
// type for zero-dispatch access, or with the backend.Backend interface
// for runtime polymorphism:
//
//	r := render.NewRenderer(swBackend)        // Renderer[*backend.SoftwareBackend]
//	r := render.NewRenderer[backend.Backend](anyBackend)
//
// RenderDesktop is a pure function of the current scene tree plus the
// buffer's frame counter, which is what lets the host alternate event
// pumping and rendering without further synchronization.
type Renderer[B backend.Backend] struct {
	backend B
	buf     *ir.Buffer
	sched   *tile.Scheduler
}

// NewRenderer creates a renderer owning the given backend.
// The backend must already be initialized.
func NewRenderer[B backend.Backend](b B, opts ...Option) *Renderer[B] {
	o := options{irCapacity: ir.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer[B]{
		backend: b,
		buf:     ir.NewBuffer(ir.WithCapacity(o.irCapacity)),
		sched:   tile.NewScheduler(0, 0, o.schedulerOpts...),
	}
}

// Backend returns the owned backend.
func (r *Renderer[B]) Backend() B {
	return r.backend
}

// Buffer returns the renderer's IR buffer.
func (r *Renderer[B]) Buffer() *ir.Buffer {
	return r.buf
}

// Scheduler returns the renderer's tile scheduler.
func (r *Renderer[B]) Scheduler() *tile.Scheduler {
	return r.sched
}

// MarkDirty forwards a changed region to the scheduler for the next
// frame's snapshot.
func (r *Renderer[B]) MarkDirty(bounds swen.Bounds, source swen.NodeID) {
	r.sched.MarkDirty(bounds, source, r.buf.Frame()+1)
}

// RenderDesktop runs lowering, scheduling, and submission for one
// frame of the desktop subtree. On error the frame is dropped; the
// scene tree is untouched and the next call starts a fresh frame.
func (r *Renderer[B]) RenderDesktop(d *scene.Desktop) (backend.FrameResult, error) {
	r.sched.Resize(d.Size.X, d.Size.Y)

	if err := ir.LowerDesktop(r.buf, d); err != nil {
		return backend.FrameResult{}, err
	}
	if err := r.sched.Schedule(r.buf.Instructions(), r.buf.Frame()); err != nil {
		return backend.FrameResult{}, err
	}

	snap := r.sched.BuildSnapshot(r.buf.Instructions(), r.buf.InternTable())
	return r.backend.Submit(&snap)
}

// Close releases the backend.
func (r *Renderer[B]) Close() {
	r.backend.Close()
}
