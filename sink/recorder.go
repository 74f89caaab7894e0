// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sink

// Sample is one beam position with its intensity.
type Sample struct {
	X, Y, Z uint8
}

// Recorder is a Sink that keeps every sample in memory. Disable requests
// are recorded as samples with zero intensity at the current position, and
// in Strokes as boundaries.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	Samples []Sample

	// Strokes holds the index into Samples where each lit stroke starts.
	Strokes []int

	lit bool
	x   uint8
	y   uint8
}

// Accept records the sample.
func (r *Recorder) Accept(x, y, z uint8) {
	if z != 0 && !r.lit {
		r.Strokes = append(r.Strokes, len(r.Samples))
		r.lit = true
	}
	r.x, r.y = x, y
	r.Samples = append(r.Samples, Sample{X: x, Y: y, Z: z})
}

// Disable records a blanking sample.
func (r *Recorder) Disable() {
	r.lit = false
	r.Samples = append(r.Samples, Sample{X: r.x, Y: r.y})
}

// Lit returns the samples with non-zero intensity.
func (r *Recorder) Lit() []Sample {
	var lit []Sample
	for _, s := range r.Samples {
		if s.Z != 0 {
			lit = append(lit, s)
		}
	}
	return lit
}

// Disables returns the number of blanking requests.
func (r *Recorder) Disables() int {
	n := 0
	for _, s := range r.Samples {
		if s.Z == 0 {
			n++
		}
	}
	return n
}

// Reset discards recorded samples, keeping capacity.
func (r *Recorder) Reset() {
	r.Samples = r.Samples[:0]
	r.Strokes = r.Strokes[:0]
	r.lit = false
}
