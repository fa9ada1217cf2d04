// Package sim owns the active set of regions and runs the per-frame
// update and draw cycle against a surface.
package sim

import (
	"image/color"
	"log/slog"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarms/motion"
	"github.com/pthm-cable/swarms/noise"
	"github.com/pthm-cable/swarms/region"
	"github.com/pthm-cable/swarms/settings"
	"github.com/pthm-cable/swarms/telemetry"
	"github.com/pthm-cable/swarms/vec"
)

// State is the driver lifecycle state.
type State int

const (
	Idle    State = iota // no regions yet
	Running              // a frame callback is scheduled
	Closed               // torn down, inert
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configure a Driver.
type Options struct {
	Seed             int64
	DegreesOfFreedom float64
	FlowJitter       float64
	PerfWindow       int
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{
		Seed:             1,
		DegreesOfFreedom: noise.DefaultDegreesOfFreedom,
		FlowJitter:       0.01,
		PerfWindow:       60,
	}
}

// Driver holds the regions as ECS entities, one per snapshot slot.
//
// Submit may be called from any goroutine. Everything else must run on the
// loop goroutine.
type Driver struct {
	world   *ecs.World
	regions *ecs.Map4[region.Bounds, region.Swarm, region.Motion, region.Style]
	filter  *ecs.Filter4[region.Bounds, region.Swarm, region.Motion, region.Style]
	slots   []ecs.Entity

	src   noise.Source
	field *motion.Field

	surface region.Surface
	loop    *FrameLoop
	cancel  func()
	perf    *telemetry.PerfCollector

	inbox   chan settings.Snapshot
	closed  atomic.Bool
	state   State
	inFrame bool
	current settings.Snapshot
	frames  uint64
}

// New builds an idle driver and clears surface to opaque black. It fails
// only if the noise parameters are invalid.
func New(surface region.Surface, loop *FrameLoop, opts Options) (*Driver, error) {
	src := noise.NewSource(opts.Seed)
	field, err := motion.NewField(src, opts.DegreesOfFreedom, opts.FlowJitter)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	d := &Driver{
		world:   world,
		regions: ecs.NewMap4[region.Bounds, region.Swarm, region.Motion, region.Style](world),
		filter:  ecs.NewFilter4[region.Bounds, region.Swarm, region.Motion, region.Style](world),
		src:     src,
		field:   field,
		surface: surface,
		loop:    loop,
		perf:    telemetry.NewPerfCollector(opts.PerfWindow),
		inbox:   make(chan settings.Snapshot, 1),
	}
	surface.Clear(black)
	return d, nil
}

var black = color.RGBA{A: 255}

// Submit queues s for the next Drain. Only the latest submitted snapshot is
// kept. It never blocks.
func (d *Driver) Submit(s settings.Snapshot) {
	if d.closed.Load() {
		return
	}
	s = clone(s)
	for {
		select {
		case d.inbox <- s:
			return
		default:
		}
		// Full: drop the stale snapshot and retry
		select {
		case <-d.inbox:
		default:
		}
	}
}

// Drain applies the queued snapshot, if any.
func (d *Driver) Drain() {
	if d.closed.Load() {
		return
	}
	select {
	case s := <-d.inbox:
		d.Apply(s)
	default:
	}
}

// Apply replaces every region with one built from s and restarts the frame
// cycle. Called during a frame it is deferred to the next Drain.
func (d *Driver) Apply(s settings.Snapshot) {
	if d.state == Closed {
		return
	}
	if d.inFrame {
		d.Submit(s)
		return
	}
	if len(s) > settings.MaxRegions {
		s = s[:settings.MaxRegions]
	}

	d.stop()
	d.clearRegions()

	d.current = clone(s)
	d.slots = make([]ecs.Entity, len(s))
	particles := 0
	for i, rs := range s {
		r := region.New(rs, d.src)
		d.slots[i] = d.regions.NewEntity(&r.Bounds, &r.Swarm, &r.Motion, &r.Style)
		particles += r.Len()
	}

	d.surface.Clear(black)
	d.cancel = d.loop.Schedule(d.frame)
	if d.state == Idle {
		slog.Info("simulation started", "regions", len(s), "particles", particles)
	} else {
		slog.Debug("snapshot applied", "regions", len(s), "particles", particles)
	}
	d.state = Running
}

// Reseed rebuilds every region from the current snapshot.
func (d *Driver) Reseed() {
	if d.state != Running {
		return
	}
	d.Apply(d.current)
}

// Close stops the frame cycle. Afterwards the driver has no side effects.
func (d *Driver) Close() {
	if d.closed.Swap(true) {
		return
	}
	d.stop()
	d.state = Closed
	slog.Debug("simulation closed", "frames", d.frames)
}

// Step is one host iteration: apply any queued snapshot, then run the
// pending frame. It reports whether a frame ran.
func (d *Driver) Step() bool {
	if d.state == Closed {
		return false
	}
	d.perf.StartFrame()
	d.perf.StartPhase(telemetry.PhaseSnapshot)
	d.Drain()
	ran := d.loop.RunFrame()
	d.perf.EndFrame()
	return ran
}

func (d *Driver) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Driver) clearRegions() {
	for _, e := range d.slots {
		if d.world.Alive(e) {
			d.world.RemoveEntity(e)
		}
	}
	d.slots = nil
}

// frame advances and draws every region in slot order, then reschedules.
func (d *Driver) frame() {
	if d.state != Running {
		return
	}
	d.inFrame = true
	for _, e := range d.slots {
		b, s, m, st := d.regions.Get(e)
		d.perf.StartPhase(telemetry.PhaseUpdate)
		region.Advance(b, s, m, d.field)
		d.perf.StartPhase(telemetry.PhaseDraw)
		region.Render(b, s, st, d.surface)
	}
	d.inFrame = false
	d.frames++
	d.cancel = d.loop.Schedule(d.frame)
}

// State returns the lifecycle state.
func (d *Driver) State() State { return d.state }

// Len returns the number of region slots.
func (d *Driver) Len() int { return len(d.slots) }

// Frames returns the number of frames run since construction.
func (d *Driver) Frames() uint64 { return d.frames }

// Particles returns the total particle count across all regions.
func (d *Driver) Particles() int {
	n := 0
	query := d.filter.Query()
	for query.Next() {
		_, s, _, _ := query.Get()
		n += len(s.Positions)
	}
	return n
}

// Positions returns a copy of the particle positions in slot.
func (d *Driver) Positions(slot int) []vec.Vec {
	if slot < 0 || slot >= len(d.slots) {
		return nil
	}
	_, s, _, _ := d.regions.Get(d.slots[slot])
	return append([]vec.Vec(nil), s.Positions...)
}

// Frame returns the frame counter of the region in slot.
func (d *Driver) Frame(slot int) uint64 {
	if slot < 0 || slot >= len(d.slots) {
		return 0
	}
	_, s, _, _ := d.regions.Get(d.slots[slot])
	return s.Frame
}

// Current returns a copy of the applied snapshot.
func (d *Driver) Current() settings.Snapshot { return clone(d.current) }

// Perf returns the frame timing collector.
func (d *Driver) Perf() *telemetry.PerfCollector { return d.perf }

// RegionStats summarises every visible region.
func (d *Driver) RegionStats() []telemetry.RegionStats {
	var out []telemetry.RegionStats
	for i, e := range d.slots {
		if !d.current[i].Visible {
			continue
		}
		_, s, m, _ := d.regions.Get(e)
		out = append(out, telemetry.ComputeRegionStats(d.frames, i, m.Rule.Kind().String(), s.Frame, s.Positions))
	}
	return out
}

func clone(s settings.Snapshot) settings.Snapshot {
	if s == nil {
		return nil
	}
	return append(settings.Snapshot(nil), s...)
}
