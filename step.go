package snooker

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Step advances the simulation by frameDT seconds, in place. The frame is
// sliced into Config.Substeps fixed substeps: one big step would let a fast
// ball cross a thin cushion between two contact scans, and the one-shot
// linear solve approximates a continuously changing contact set far better
// over short slices.
//
// Step owns the collider store for its whole duration. A host running on
// several goroutines must not touch the world until it returns.
func (w *World) Step(frameDT float64) {
	if frameDT < 0 || math.IsNaN(frameDT) || math.IsInf(frameDT, 0) {
		panic(fmt.Sprintf("step: frame dt must be finite and non-negative, got %v", frameDT))
	}

	dt := frameDT / float64(w.cfg.Substeps)
	for s := 0; s < w.cfg.Substeps; s++ {
		w.substep(dt)
	}
}

func (w *World) substep(dt float64) {
	// 1. integrate positions with the previous substep's velocities
	w.colliders.Each(func(_ ID, c *Collider) {
		if d, ok := c.dynamic(); ok {
			c.Pos = c.Pos.Add(d.Velocity.Mul(dt))
		}
	})

	// 2. generate contacts; attractor pulls are applied inline
	contacts := w.generateContacts(dt)

	// 3. solve impulses simultaneously
	w.solveContacts(contacts)

	// 4. positional correction for residual overlap
	w.fixPositions(contacts)

	// 5. exponential damping, then pin crawling balls to rest
	decay := math.Exp(-w.cfg.DampingCoefficient * dt)
	w.colliders.Each(func(_ ID, c *Collider) {
		d, ok := c.dynamic()
		if !ok {
			return
		}
		d.Velocity = d.Velocity.Mul(decay)
		if d.Velocity.Len() < w.cfg.RestThreshold {
			d.Velocity = mgl64.Vec2{}
		}
	})
}
