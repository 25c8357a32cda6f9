package snooker

import (
	"math"
)

const (
	// Pivots below this magnitude are skipped rather than divided by, and
	// the row's impulse is forced to zero. Redundant contact sets (three
	// mutually touching circles) can under-resolve because of this; the
	// next substep picks up the residue.
	pivotEpsilon = 1e-8
	// Relative normal velocities less negative than this do not count as
	// approaching, so resting contacts get no restitution kick.
	approachEpsilon = 1e-6
)

// solveContacts treats the whole contact set as one linear system: one
// unknown normal-impulse magnitude per contact. Entry (i,j) of the matrix
// is how much contact j's impulse changes the relative normal velocity at
// contact i; the right-hand side is the velocity change each contact wants.
// Solving simultaneously keeps chains of touching balls stable where
// one-at-a-time resolution would jitter.
//
// Impulses are clamped non-negative after the solve: contacts push, never
// pull. No further cap is applied against immovable bodies; the solved
// impulse against a wall already carries the restitution bounce.
func (w *World) solveContacts(contacts []Contact) {
	n := len(contacts)
	if n == 0 {
		return
	}

	// The matrix fill touches every pair of contacts, so resolve ids and
	// inverse masses once up front.
	colA := make([]*Collider, n)
	colB := make([]*Collider, n)
	invA := make([]float64, n)
	invB := make([]float64, n)
	for i, c := range contacts {
		colA[i] = w.colliders.Get(c.A)
		colB[i] = w.colliders.Get(c.B)
		invA[i] = colA[i].Body.InvMass()
		invB[i] = colB[i].Body.InvMass()
	}

	A := make([]float64, n*n)
	b := make([]float64, n)

	for i := 0; i < n; i++ {
		ci := &contacts[i]

		// Target velocity change along the normal: reflect the approach
		// speed if the bodies are closing, plus a Baumgarte bias feeding a
		// fraction of the penetration back as outward velocity.
		relVel := colB[i].velocity().Sub(colA[i].velocity()).Dot(ci.Normal)
		if relVel < -approachEpsilon {
			b[i] = -(1 + w.cfg.Restitution) * relVel
		}
		b[i] += w.cfg.BaumgarteFactor * math.Max(ci.Penetration, 0)

		for j := 0; j < n; j++ {
			cj := &contacts[j]
			dot := ci.Normal.Dot(cj.Normal)

			// Contacts couple when they share a body. Shared in the same
			// role (A/A or B/B) adds, opposite roles subtract; a pair of
			// contacts can share through up to all four combinations.
			val := 0.0
			if ci.A == cj.A {
				val += dot * invA[i]
			}
			if ci.B == cj.A {
				val -= dot * invB[i]
			}
			if ci.A == cj.B {
				val -= dot * invA[i]
			}
			if ci.B == cj.B {
				val += dot * invB[i]
			}
			A[i*n+j] = val
		}
	}

	gaussJordan(A, b, n, w.log)

	for i := range b {
		if b[i] < 0 {
			b[i] = 0
		}
	}

	// velA -= invA * j*n, velB += invB * j*n
	for i := 0; i < n; i++ {
		impulse := contacts[i].Normal.Mul(b[i])
		if d, ok := colA[i].dynamic(); ok {
			d.Velocity = d.Velocity.Sub(impulse.Mul(invA[i]))
		}
		if d, ok := colB[i].dynamic(); ok {
			d.Velocity = d.Velocity.Add(impulse.Mul(invB[i]))
		}
	}
}

// gaussJordan reduces the n-by-n system A*x = b in place, leaving the
// solution in b. Rows whose pivot falls below pivotEpsilon are skipped and
// their unknowns zeroed at the end instead of dividing by a near-zero
// value.
func gaussJordan(A, b []float64, n int, log Logger) {
	var skipped []int
	for k := 0; k < n; k++ {
		diag := A[k*n+k]
		if math.Abs(diag) < pivotEpsilon {
			log.Debugf("solver: skipping near-singular pivot %d (%g)", k, diag)
			skipped = append(skipped, k)
			continue
		}
		inv := 1 / diag
		for col := k; col < n; col++ {
			A[k*n+col] *= inv
		}
		b[k] *= inv

		for row := 0; row < n; row++ {
			if row == k {
				continue
			}
			factor := A[row*n+k]
			if factor == 0 {
				continue
			}
			for col := k; col < n; col++ {
				A[row*n+col] -= factor * A[k*n+col]
			}
			b[row] -= factor * b[k]
		}
	}
	for _, k := range skipped {
		b[k] = 0
	}
}

// fixPositions displaces each contact's bodies apart by a fraction of the
// remaining penetration, split by inverse mass. Purely positional: the
// velocity-level half of overlap recovery is the solver's Baumgarte bias.
func (w *World) fixPositions(contacts []Contact) {
	for _, c := range contacts {
		if c.Penetration <= 0 {
			continue
		}
		a := w.colliders.Get(c.A)
		b := w.colliders.Get(c.B)
		invA := a.Body.InvMass()
		invB := b.Body.InvMass()
		totalInv := invA + invB
		if totalInv == 0 {
			continue
		}
		correction := c.Normal.Mul(c.Penetration * w.cfg.CorrectionPercent / totalInv)
		a.Pos = a.Pos.Sub(correction.Mul(invA))
		b.Pos = b.Pos.Add(correction.Mul(invB))
	}
}
