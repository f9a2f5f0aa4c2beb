// Package field implements an animated, pointer-reactive particle field.
//
// A Simulator owns a fixed-size pool of drifting particles. Once mounted on a
// Host it schedules itself one frame at a time: every visible frame it moves
// the particles, then clears the surface and draws connective lines and the
// particles themselves. Resizes are debounced and regenerate the pool at the
// new bounds; the pointer is throttled; hidden frames are skipped without
// stopping the frame chain.
package field

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// Stats counts what the simulator has done since it was created
type Stats struct {
	Frames        uint64 // frame callbacks run
	Steps         uint64 // update+draw passes
	HiddenSkips   uint64 // frames skipped while hidden
	ThrottleSkips uint64 // frames skipped by the narrow-surface policy
	PointerDrops  uint64 // pointer moves dropped by the throttle
	Regenerations uint64 // pools created, including the first
	Links         int    // lines drawn by the last pass
}

// Simulator is one particle field. It is confined to its host's thread.
type Simulator struct {
	name   string
	cfg    config.Field
	params particle.Params
	rng    *rand.Rand

	host    Host
	surface Surface
	unsubs  []func()

	bounds  particle.Bounds
	pool    []particle.Particle
	pointer particle.Pointer
	hidden  bool

	// pointer throttle
	lastPointer time.Time
	havePointer bool

	// frame skipping, fixed per committed size
	skip  int
	count uint64

	frameID      uint64
	framePending bool
	stopResize   func() bool

	stats Stats
}

// New creates an unmounted simulator. name only labels log lines.
func New(name string, cfg config.Field, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{
		name:   name,
		cfg:    cfg,
		params: paramsFrom(cfg),
		rng:    rng,
		skip:   1,
	}
}

func paramsFrom(cfg config.Field) particle.Params {
	return particle.Params{
		Speed:             cfg.Speed,
		MinRadius:         cfg.MinRadius,
		RadiusJitter:      cfg.RadiusJitter,
		OpacityBase:       cfg.OpacityBase,
		OpacityJitter:     cfg.OpacityJitter,
		InteractionRadius: cfg.InteractionRadius,
		RepelStrength:     cfg.RepelStrength,
		RadiusBoost:       cfg.RadiusBoost,
		MaxRadiusBoost:    cfg.MaxRadiusBoost,
		OpacityBoost:      cfg.OpacityBoost,
		MinOpacity:        cfg.MinOpacity,
		MaxOpacity:        cfg.MaxOpacity,
		RadiusDecay:       cfg.RadiusDecay,
		OpacityDecay:      cfg.OpacityDecay,
	}
}

// Mount attaches to h and starts the frame loop. It reports false, leaving
// nothing registered, when the host has no surface. Mounting an already
// mounted simulator is a no-op.
func (s *Simulator) Mount(h Host) bool {
	if s.host != nil {
		return true
	}
	surface := h.Surface()
	if surface == nil {
		log.Printf("field %s: no surface, not starting", s.name)
		return false
	}

	s.host = h
	s.surface = surface
	s.hidden = h.Hidden()
	s.pointer = particle.Pointer{}
	s.havePointer = false
	s.commit(h.Bounds())

	s.unsubs = append(s.unsubs,
		h.OnResize(s.handleResize),
		h.OnVisibilityChange(s.handleVisibility),
		h.OnPointerMove(s.handlePointerMove),
		h.OnPointerLeave(s.handlePointerLeave),
	)
	s.requestFrame()

	log.Printf("field %s: mounted %vx%v with %d particles", s.name, s.bounds.W, s.bounds.H, len(s.pool))
	return true
}

// Unmount detaches every listener, cancels the pending frame and debounce
// timer, and releases the pool. No callback of this simulator runs afterwards.
func (s *Simulator) Unmount() {
	if s.host == nil {
		return
	}
	for _, remove := range s.unsubs {
		remove()
	}
	s.unsubs = nil

	if s.framePending {
		s.host.CancelFrame(s.frameID)
		s.framePending = false
	}
	if s.stopResize != nil {
		s.stopResize()
		s.stopResize = nil
	}

	s.host = nil
	s.surface = nil
	s.pool = nil
	log.Printf("field %s: unmounted", s.name)
}

func (s *Simulator) Mounted() bool {
	return s.host != nil
}

// Bounds returns the committed surface size
func (s *Simulator) Bounds() particle.Bounds {
	return s.bounds
}

// Particles returns a copy of the pool
func (s *Simulator) Particles() []particle.Particle {
	return append([]particle.Particle(nil), s.pool...)
}

func (s *Simulator) Pointer() particle.Pointer {
	return s.pointer
}

func (s *Simulator) Stats() Stats {
	return s.stats
}

// FrameSkip is the current update divisor: 1 runs every visible frame
func (s *Simulator) FrameSkip() int {
	return s.skip
}

// commit adopts w×h as the surface size: resizes the backing buffer,
// regenerates the pool and re-evaluates the narrow-surface policy.
func (s *Simulator) commit(w, h float64) {
	s.bounds = particle.Bounds{W: math.Max(0, w), H: math.Max(0, h)}
	s.surface.SetSize(int(s.bounds.W), int(s.bounds.H))
	s.pool = particle.SpawnPool(s.rng, s.bounds, s.params, s.cfg.Count)
	s.stats.Regenerations++

	s.skip = 1
	if s.bounds.W < s.cfg.NarrowWidth && s.cfg.NarrowFrameSkip > 1 {
		s.skip = s.cfg.NarrowFrameSkip
	}
	s.count = 0
}

func (s *Simulator) requestFrame() {
	s.frameID = s.host.RequestFrame(s.frame)
	s.framePending = true
}

func (s *Simulator) frame() {
	s.framePending = false
	if s.host == nil {
		return
	}
	s.stats.Frames++

	switch {
	case s.hidden:
		s.stats.HiddenSkips++
	default:
		s.count++
		if s.count%uint64(s.skip) != 0 {
			s.stats.ThrottleSkips++
			break
		}
		s.Step()
		s.Render()
	}

	s.requestFrame()
}

// Step advances every particle by one frame against the committed bounds
func (s *Simulator) Step() {
	for i := range s.pool {
		particle.Step(&s.pool[i], s.pointer, s.bounds, s.params)
	}
	s.stats.Steps++
}

// Render clears the surface and draws links behind particles
func (s *Simulator) Render() {
	if s.surface == nil {
		return
	}
	s.surface.Clear()

	c := s.cfg.Color
	s.stats.Links = particle.Links(s.pool, s.cfg.LinkDistance, s.cfg.LinkOpacity, func(a, b *particle.Particle, opacity float64) {
		s.surface.Line(a.X, a.Y, b.X, b.Y, s.cfg.LinkWidth, c.NRGBA(opacity))
	})

	for i := range s.pool {
		pt := &s.pool[i]
		s.surface.Circle(pt.X, pt.Y, pt.Radius, c.NRGBA(pt.Opacity))
	}
}

func (s *Simulator) handleResize() {
	if s.stopResize != nil {
		s.stopResize()
	}
	s.stopResize = s.host.AfterFunc(s.cfg.ResizeDebounce, s.applyResize)
}

func (s *Simulator) applyResize() {
	s.stopResize = nil
	if s.host == nil {
		return
	}
	w, h := s.host.Bounds()
	w, h = math.Max(0, w), math.Max(0, h)
	if w == s.bounds.W && h == s.bounds.H {
		return
	}
	s.commit(w, h)
	log.Printf("field %s: resized to %vx%v, pool regenerated", s.name, w, h)
}

func (s *Simulator) handleVisibility(hidden bool) {
	s.hidden = hidden
}

func (s *Simulator) handlePointerMove(x, y float64) {
	now := s.host.Now()
	if s.havePointer && now.Sub(s.lastPointer) < s.cfg.PointerThrottle {
		s.stats.PointerDrops++
		return
	}
	s.lastPointer = now
	s.havePointer = true
	s.pointer = particle.Pointer{X: x, Y: y, Active: true}
}

func (s *Simulator) handlePointerLeave() {
	s.pointer = particle.Pointer{}
}
