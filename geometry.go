package snooker

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World-space geometry for the ray-cast family. A collider's shape plus its
// position produces one of these; the aim-assist queries on World build
// them on the fly.

// Ray is a query-only value. Dir need not be unit length: cast distances
// come back in Dir lengths, so normalize Dir to get Euclidean distances.
type Ray struct {
	Origin mgl64.Vec2
	Dir    mgl64.Vec2
}

type Circle struct {
	Centre mgl64.Vec2
	Radius float64
}

type Line struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

type Capsule struct {
	Start  mgl64.Vec2
	End    mgl64.Vec2
	Radius float64
}

// Box is axis-aligned and centre-based, matching BoxShape.
type Box struct {
	Centre mgl64.Vec2
	Width  float64
	Height float64
}

// PaddedBox is a box grown outward by Radius: straight edges pushed out,
// corners rounded.
type PaddedBox struct {
	Box    Box
	Radius float64
}

const (
	// Denominators and squared axis lengths below this are treated as
	// degenerate: parallel rays miss, zero-length capsules cast as circles.
	geomEpsilon = 1e-12
)

func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

func leftNormal(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// CastCircle returns the forward distance to the entry intersection with c.
// Rays originating inside the circle report no hit (there is no entry
// point, only an exit).
func (r Ray) CastCircle(c Circle) (float64, bool) {
	m := r.Origin.Sub(c.Centre)
	b := m.Dot(r.Dir)
	k := m.Dot(m) - c.Radius*c.Radius
	if k > 0 && b > 0 {
		return 0, false
	}
	a := r.Dir.Dot(r.Dir)
	if a < geomEpsilon {
		return 0, false
	}
	disc := b*b - a*k
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 {
		return 0, false
	}
	return t, true
}

// CastLine returns the forward distance to the segment l. Rays parallel to
// the segment miss, as do intersections beyond either endpoint.
func (r Ray) CastLine(l Line) (float64, bool) {
	d := l.End.Sub(l.Start)
	rxs := cross2(r.Dir, d)
	if math.Abs(rxs) < geomEpsilon {
		return 0, false
	}
	q := l.Start.Sub(r.Origin)
	t := cross2(q, d) / rxs
	u := cross2(q, r.Dir) / rxs
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// CastCapsule decomposes the capsule into its two side segments and two end
// circles and returns the closest forward hit among them.
func (r Ray) CastCapsule(c Capsule) (float64, bool) {
	axis := c.End.Sub(c.Start)
	if axis.Dot(axis) < geomEpsilon {
		return r.CastCircle(Circle{Centre: c.Start, Radius: c.Radius})
	}
	side := leftNormal(axis.Normalize()).Mul(c.Radius)

	best := math.MaxFloat64
	hit := false
	consider := func(t float64, ok bool) {
		if ok && t < best {
			best = t
			hit = true
		}
	}
	consider(r.CastLine(Line{Start: c.Start.Add(side), End: c.End.Add(side)}))
	consider(r.CastLine(Line{Start: c.Start.Sub(side), End: c.End.Sub(side)}))
	consider(r.CastCircle(Circle{Centre: c.Start, Radius: c.Radius}))
	consider(r.CastCircle(Circle{Centre: c.End, Radius: c.Radius}))
	if !hit {
		return 0, false
	}
	return best, true
}

// CastBox returns the closest forward hit among the box's four bounding
// edges.
func (r Ray) CastBox(b Box) (float64, bool) {
	tl, tr, br, bl := b.corners()

	best := math.MaxFloat64
	hit := false
	for _, edge := range [...]Line{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}} {
		if t, ok := r.CastLine(edge); ok && t < best {
			best = t
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// CastPaddedBox casts against the four outward-offset edges plus the four
// corner circles.
func (r Ray) CastPaddedBox(p PaddedBox) (float64, bool) {
	if p.Radius == 0 {
		return r.CastBox(p.Box)
	}
	tl, tr, br, bl := p.Box.corners()
	up := mgl64.Vec2{0, p.Radius}
	right := mgl64.Vec2{p.Radius, 0}

	best := math.MaxFloat64
	hit := false
	consider := func(t float64, ok bool) {
		if ok && t < best {
			best = t
			hit = true
		}
	}
	consider(r.CastLine(Line{Start: tl.Add(up), End: tr.Add(up)}))
	consider(r.CastLine(Line{Start: tr.Add(right), End: br.Add(right)}))
	consider(r.CastLine(Line{Start: br.Sub(up), End: bl.Sub(up)}))
	consider(r.CastLine(Line{Start: bl.Sub(right), End: tl.Sub(right)}))
	for _, corner := range [...]mgl64.Vec2{tl, tr, br, bl} {
		consider(r.CastCircle(Circle{Centre: corner, Radius: p.Radius}))
	}
	if !hit {
		return 0, false
	}
	return best, true
}

func (b Box) corners() (tl, tr, br, bl mgl64.Vec2) {
	hx, hy := b.Width/2, b.Height/2
	tl = b.Centre.Add(mgl64.Vec2{-hx, hy})
	tr = b.Centre.Add(mgl64.Vec2{hx, hy})
	br = b.Centre.Add(mgl64.Vec2{hx, -hy})
	bl = b.Centre.Add(mgl64.Vec2{-hx, -hy})
	return
}

// Inflate grows the circle by r. Inflating by a query circle's radius turns
// a circle-vs-circle test into a point-vs-circle test.
func (c Circle) Inflate(r float64) Circle {
	return Circle{Centre: c.Centre, Radius: c.Radius + r}
}

// Inflate turns the segment into a capsule of radius r.
func (l Line) Inflate(r float64) Capsule {
	return Capsule{Start: l.Start, End: l.End, Radius: r}
}

func (c Capsule) Inflate(r float64) Capsule {
	return Capsule{Start: c.Start, End: c.End, Radius: c.Radius + r}
}

// Inflate rounds the box outward by r.
func (b Box) Inflate(r float64) PaddedBox {
	return PaddedBox{Box: b, Radius: r}
}

func (p PaddedBox) Inflate(r float64) PaddedBox {
	return PaddedBox{Box: p.Box, Radius: p.Radius + r}
}
