package particle

import "math"

// LinkOpacity returns the line opacity for two particles d2 apart (squared).
// Opacity falls off linearly and is zero at maxDist; pairs at or beyond maxDist
// are not linked.
func LinkOpacity(d2, maxDist, maxOpacity float64) (float64, bool) {
	if maxDist <= 0 || d2 >= maxDist*maxDist {
		return 0, false
	}
	return maxOpacity * (1 - math.Sqrt(d2)/maxDist), true
}

// Links visits every unordered pair closer than maxDist once. This is the O(n²)
// pass of a frame.
func Links(pool []Particle, maxDist, maxOpacity float64, visit func(a, b *Particle, opacity float64)) int {
	if maxDist <= 0 {
		return 0
	}
	n := 0
	for i := range pool {
		a := &pool[i]
		for j := i + 1; j < len(pool); j++ {
			b := &pool[j]
			dx := a.X - b.X
			dy := a.Y - b.Y
			if op, ok := LinkOpacity(dx*dx+dy*dy, maxDist, maxOpacity); ok {
				visit(a, b, op)
				n++
			}
		}
	}
	return n
}
