// Package particle holds the per-particle motion rules of a particle field.
//
// Particles are plain values; every function takes the surface bounds as an
// argument so a resize can never leave a stale size captured anywhere.
package particle

import (
	"math"
	"math/rand/v2"
)

// Particle is a single drifting point.
type Particle struct {
	X, Y   float64
	VX, VY float64

	BaseRadius  float64
	Radius      float64
	BaseOpacity float64
	Opacity     float64
}

// Bounds is the size of the drawing surface in pixels.
type Bounds struct {
	W, H float64
}

// Empty reports a degenerate surface.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports 0 <= x < W and 0 <= y < H.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Pointer is the shared cursor position. An inactive pointer exerts no force.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Params are the motion and appearance tunables.
type Params struct {
	Speed         float64
	MinRadius     float64
	RadiusJitter  float64
	OpacityBase   float64
	OpacityJitter float64

	InteractionRadius float64
	RepelStrength     float64
	RadiusBoost       float64
	MaxRadiusBoost    float64
	OpacityBoost      float64
	MinOpacity        float64
	MaxOpacity        float64
	RadiusDecay       float64
	OpacityDecay      float64
}

// Spawn creates a particle uniformly placed within b.
func Spawn(rng *rand.Rand, b Bounds, p Params) Particle {
	pt := Particle{
		X:           uniform(rng, b.W),
		Y:           uniform(rng, b.H),
		VX:          (rng.Float64()*2 - 1) * p.Speed,
		VY:          (rng.Float64()*2 - 1) * p.Speed,
		BaseRadius:  p.MinRadius + rng.Float64()*p.RadiusJitter,
		BaseOpacity: clamp(p.OpacityBase+rng.Float64()*p.OpacityJitter, p.MinOpacity, p.MaxOpacity),
	}
	pt.Radius = pt.BaseRadius
	pt.Opacity = pt.BaseOpacity
	return pt
}

// SpawnPool creates exactly n particles within b.
func SpawnPool(rng *rand.Rand, b Bounds, p Params, n int) []Particle {
	pool := make([]Particle, n)
	for i := range pool {
		pool[i] = Spawn(rng, b, p)
	}
	return pool
}

func uniform(rng *rand.Rand, size float64) float64 {
	if size <= 0 {
		return 0
	}
	return Wrap(rng.Float64()*size, size)
}

// Step advances pt by one frame: pointer repulsion or relaxation, drift, wrap.
func Step(pt *Particle, ptr Pointer, b Bounds, p Params) {
	if force, dx, dy, ok := repulsion(pt, ptr, p.InteractionRadius); ok {
		pt.X += dx * force * p.RepelStrength
		pt.Y += dy * force * p.RepelStrength
		pt.Radius = clamp(pt.BaseRadius+force*p.RadiusBoost, pt.BaseRadius, pt.BaseRadius+p.MaxRadiusBoost)
		pt.Opacity = clamp(pt.Opacity+force*p.OpacityBoost, p.MinOpacity, p.MaxOpacity)
	} else {
		pt.Radius = clamp(math.Max(pt.BaseRadius, pt.Radius-p.RadiusDecay), pt.BaseRadius, pt.BaseRadius+p.MaxRadiusBoost)
		pt.Opacity = clamp(math.Max(pt.BaseOpacity, pt.Opacity-p.OpacityDecay), p.MinOpacity, p.MaxOpacity)
	}

	pt.X = Wrap(pt.X+pt.VX, b.W)
	pt.Y = Wrap(pt.Y+pt.VY, b.H)
}

// repulsion returns the force in (0,1] and the unit vector from the pointer to
// the particle. A particle exactly under the pointer gets force 1 and a zero
// direction.
func repulsion(pt *Particle, ptr Pointer, radius float64) (force, ux, uy float64, ok bool) {
	if !ptr.Active || radius <= 0 {
		return 0, 0, 0, false
	}
	dx := pt.X - ptr.X
	dy := pt.Y - ptr.Y
	d2 := dx*dx + dy*dy
	if d2 >= radius*radius {
		return 0, 0, 0, false
	}
	if d2 == 0 {
		return 1, 0, 0, true
	}
	d := math.Sqrt(d2)
	return (radius - d) / radius, dx / d, dy / d, true
}

// Wrap maps v into [0,size). A non-positive size collapses to 0.
func Wrap(v, size float64) float64 {
	if size <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size rounds up to size
	if v >= size {
		v = 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
