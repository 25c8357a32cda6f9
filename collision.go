package snooker

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Centre distances below this are treated as coincident and the contact
// normal falls back to a fixed unit vector.
const coincidentEpsilon = 1e-6

// generateContacts scans every unordered pair of colliders in packed order
// and returns one contact per overlap, normal pointing from the first
// collider of the pair toward the second. Pairs where neither side is
// Dynamic are skipped before shape dispatch: no impulse could move either.
//
// Attractor overlaps emit no contact. The Dynamic side's velocity is
// perturbed in place instead: a pull toward the attractor growing
// quadratically with the overlap, then a drag proportional to it. Pocket
// suction, handled here so the solver never sees attractors.
func (w *World) generateContacts(dt float64) []Contact {
	cs := &w.colliders
	var contacts []Contact

	for i := 0; i < len(cs.items); i++ {
		for j := i + 1; j < len(cs.items); j++ {
			a, b := &cs.items[i], &cs.items[j]

			_, aDyn := a.Body.(*Dynamic)
			_, bDyn := b.Body.(*Dynamic)
			if !aDyn && !bDyn {
				continue
			}

			normal, pen, ok := w.collideShapes(a, b)
			if !ok {
				continue
			}

			if _, att := a.Body.(*Attractor); att {
				w.attract(b, normal.Mul(-1), pen, dt)
				continue
			}
			if _, att := b.Body.(*Attractor); att {
				w.attract(a, normal, pen, dt)
				continue
			}

			contacts = append(contacts, Contact{
				A:           cs.ids[i],
				B:           cs.ids[j],
				Normal:      normal,
				Penetration: pen,
			})
		}
	}

	return contacts
}

// attract pulls a Dynamic body into an overlapping attractor. toward is the
// unit direction from the body to the attractor, pen the overlap depth.
func (w *World) attract(body *Collider, toward mgl64.Vec2, pen, dt float64) {
	d, ok := body.dynamic()
	if !ok {
		return
	}
	pull := pen * w.cfg.AttractorStrength
	d.Velocity = d.Velocity.Add(toward.Mul(pull * pull * dt))
	d.Velocity = d.Velocity.Mul(math.Max(0, 1-w.cfg.AttractorDamping*pen))
}

// collideShapes reports whether a and b overlap, returning the unit contact
// normal from a toward b and the penetration depth.
//
// Contract for symmetric pairs: each mixed pair is implemented once with
// the circle first; the mirrored dispatch entry swaps the arguments and
// negates the returned normal, which keeps it pointing a-to-b. Inline that
// swap anywhere else and the solver's impulse signs silently flip.
func (w *World) collideShapes(a, b *Collider) (mgl64.Vec2, float64, bool) {
	switch sa := a.Shape.(type) {
	case CircleShape:
		switch sb := b.Shape.(type) {
		case CircleShape:
			return collideCircleCircle(a.Pos, sa.Radius, b.Pos, sb.Radius)
		case BoxShape:
			return w.collideCircleBox(a.Pos, sa.Radius, b.Pos, sb)
		case SegmentShape:
			return collideCircleSegment(a.Pos, sa.Radius, b.Pos, sb)
		}
	case BoxShape:
		if sb, ok := b.Shape.(CircleShape); ok {
			n, pen, hit := w.collideCircleBox(b.Pos, sb.Radius, a.Pos, sa)
			return n.Mul(-1), pen, hit
		}
	case SegmentShape:
		if sb, ok := b.Shape.(CircleShape); ok {
			n, pen, hit := collideCircleSegment(b.Pos, sb.Radius, a.Pos, sa)
			return n.Mul(-1), pen, hit
		}
	}
	panic(fmt.Sprintf("collision between %T and %T is not implemented", a.Shape, b.Shape))
}

func collideCircleCircle(posA mgl64.Vec2, rA float64, posB mgl64.Vec2, rB float64) (mgl64.Vec2, float64, bool) {
	delta := posB.Sub(posA)
	r := rA + rB
	dist2 := delta.Dot(delta)
	if dist2 >= r*r {
		return mgl64.Vec2{}, 0, false
	}

	dist := math.Sqrt(dist2)
	normal := mgl64.Vec2{1, 0} // arbitrary when the centres coincide
	if dist > coincidentEpsilon {
		normal = delta.Mul(1 / dist)
	}
	return normal, r - dist, true
}

// collideCircleBox clamps the circle centre into the box's half-extents to
// find the closest point on the box. A centre that ends up inside the box
// is ejected out the nearest face: the normal points at the box interior
// along the escape axis and the penetration includes the full radius, so
// the solve pushes the circle clear in one direction instead of trapping
// it.
func (w *World) collideCircleBox(centre mgl64.Vec2, radius float64, boxPos mgl64.Vec2, box BoxShape) (mgl64.Vec2, float64, bool) {
	hw, hh := box.Width/2, box.Height/2
	closest := mgl64.Vec2{
		mgl64.Clamp(centre.X(), boxPos.X()-hw, boxPos.X()+hw),
		mgl64.Clamp(centre.Y(), boxPos.Y()-hh, boxPos.Y()+hh),
	}

	delta := closest.Sub(centre)
	dist2 := delta.Dot(delta)
	if dist2 > 0 {
		// Centre outside the box.
		if dist2 >= radius*radius {
			return mgl64.Vec2{}, 0, false
		}
		dist := math.Sqrt(dist2)
		return delta.Mul(1 / dist), radius - dist, true
	}

	// Centre inside the box: compare the distances to the four faces and
	// push out through the closest one.
	xDist := math.Min(centre.X()-(boxPos.X()-hw), (boxPos.X()+hw)-centre.X())
	yDist := math.Min(centre.Y()-(boxPos.Y()-hh), (boxPos.Y()+hh)-centre.Y())

	var normal mgl64.Vec2
	var pen float64
	if xDist < yDist {
		if centre.X() < boxPos.X() {
			normal = mgl64.Vec2{1, 0}
		} else {
			normal = mgl64.Vec2{-1, 0}
		}
		pen = xDist + radius
	} else {
		if centre.Y() < boxPos.Y() {
			normal = mgl64.Vec2{0, 1}
		} else {
			normal = mgl64.Vec2{0, -1}
		}
		pen = yDist + radius
	}
	w.log.Debugf("circle centre %v inside box at %v, ejecting along %v", centre, boxPos, normal)
	return normal, pen, true
}

// collideCircleSegment projects the circle centre onto the segment, clamped
// parametrically to [0,1]. Zero-length segments collapse to their start
// point, and a centre sitting exactly on the segment is ejected along the
// segment's left normal.
func collideCircleSegment(centre mgl64.Vec2, radius float64, segPos mgl64.Vec2, seg SegmentShape) (mgl64.Vec2, float64, bool) {
	start := segPos.Add(seg.Start)
	end := segPos.Add(seg.End)
	axis := end.Sub(start)

	closest := start
	if len2 := axis.Dot(axis); len2 > geomEpsilon {
		t := mgl64.Clamp(centre.Sub(start).Dot(axis)/len2, 0, 1)
		closest = start.Add(axis.Mul(t))
	}

	delta := closest.Sub(centre)
	dist2 := delta.Dot(delta)
	if dist2 >= radius*radius {
		return mgl64.Vec2{}, 0, false
	}

	dist := math.Sqrt(dist2)
	var normal mgl64.Vec2
	switch {
	case dist > coincidentEpsilon:
		normal = delta.Mul(1 / dist)
	case axis.Dot(axis) > geomEpsilon:
		normal = leftNormal(axis.Normalize())
	default:
		normal = mgl64.Vec2{1, 0}
	}
	return normal, radius - dist, true
}
