package snooker

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World owns the collider store and exposes the whole simulation surface:
// add and remove bodies, mutate them, advance time, cast aim rays. It is
// not safe for concurrent use; a multi-threaded host must serialize every
// call, including reads, around Step.
type World struct {
	cfg       Config
	log       Logger
	colliders Store[Collider]
}

// NewWorld panics if cfg fails validation; a world with out-of-range
// tunables would corrupt state on the first Step, so it is refused at
// construction.
func NewWorld(cfg Config) *World {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return &World{
		cfg:       cfg,
		log:       NewNopLogger(),
		colliders: MakeStore[Collider](),
	}
}

// SetLogger installs a diagnostics sink for solver and collision edge
// cases. A nil logger restores the no-op default.
func (w *World) SetLogger(log Logger) {
	if log == nil {
		log = NewNopLogger()
	}
	w.log = log
}

// AddDynamicCircle adds a ball that moves and exchanges impulses.
func (w *World) AddDynamicCircle(pos mgl64.Vec2, radius, mass float64) ID {
	mustBeFinite("position", pos.X(), pos.Y())
	mustBePositive("radius", radius)
	mustBePositive("mass", mass)
	return w.colliders.Insert(Collider{
		Pos:   pos,
		Body:  &Dynamic{Mass: mass},
		Shape: CircleShape{Radius: radius},
	})
}

// AddAttractorCircle adds a pocket: immovable, never exchanges impulses,
// pulls overlapping Dynamic bodies toward itself.
func (w *World) AddAttractorCircle(pos mgl64.Vec2, radius float64) ID {
	mustBeFinite("position", pos.X(), pos.Y())
	mustBePositive("radius", radius)
	return w.colliders.Insert(Collider{
		Pos:   pos,
		Body:  &Attractor{},
		Shape: CircleShape{Radius: radius},
	})
}

// AddStaticBox adds an immovable axis-aligned box, centre-based.
func (w *World) AddStaticBox(centre mgl64.Vec2, width, height float64) ID {
	mustBeFinite("centre", centre.X(), centre.Y())
	mustBePositive("width", width)
	mustBePositive("height", height)
	return w.colliders.Insert(Collider{
		Pos:   centre,
		Body:  &Static{},
		Shape: BoxShape{Width: width, Height: height},
	})
}

// AddStaticLineSegment adds an immovable wall edge between two world-space
// points, stored as a midpoint position with symmetric endpoint offsets.
// The endpoints may coincide; the segment then collides as a point.
func (w *World) AddStaticLineSegment(start, end mgl64.Vec2) ID {
	mustBeFinite("start", start.X(), start.Y())
	mustBeFinite("end", end.X(), end.Y())
	mid := start.Add(end).Mul(0.5)
	return w.colliders.Insert(Collider{
		Pos:   mid,
		Body:  &Static{},
		Shape: SegmentShape{Start: start.Sub(mid), End: end.Sub(mid)},
	})
}

// Remove destroys a collider. Invalid ids are a programmer error and panic.
func (w *World) Remove(id ID) {
	w.colliders.Erase(id)
}

// Get returns a mutable reference to the collider behind id. The reference
// points into packed storage and is invalidated by any later add or
// remove; re-Get instead of holding it across world mutations. Invalid
// ids panic.
func (w *World) Get(id ID) *Collider {
	return w.colliders.Get(id)
}

func (w *World) IsValid(id ID) bool {
	return w.colliders.IsValid(id)
}

func (w *World) Len() int {
	return w.colliders.Len()
}

// Each visits every collider in packed order, for bulk consumers such as a
// renderer sync. Do not add or remove colliders during iteration.
func (w *World) Each(fn func(ID, *Collider)) {
	w.colliders.Each(fn)
}

// ApplyImpulse adds impulse/mass to a Dynamic body's velocity: the cue
// strike. Static and Attractor targets are a programmer error.
func (w *World) ApplyImpulse(id ID, impulse mgl64.Vec2) {
	c := w.colliders.Get(id)
	d, ok := c.dynamic()
	if !ok {
		panic(fmt.Sprintf("cannot apply an impulse to %T collider %d", c.Body, id))
	}
	d.Velocity = d.Velocity.Add(impulse.Mul(d.InvMass()))
}

// RayHit is one result from RayCastClosest.
type RayHit struct {
	Collider ID
	Distance float64
}

// RayCast returns the distance along dir at which a circle of queryRadius
// swept from origin first touches the target collider. dir need not be
// unit length (it is normalized here, so the returned distance is
// Euclidean); a zero direction hits nothing. Invalid target ids panic.
func (w *World) RayCast(origin, dir mgl64.Vec2, queryRadius float64, target ID) (float64, bool) {
	c := w.colliders.Get(target)
	ray, ok := normalizedRay(origin, dir)
	if !ok {
		return 0, false
	}
	return castCollider(ray, c, queryRadius)
}

// RayCastClosest sweeps a circle of queryRadius from origin along dir and
// returns the nearest hit across the whole world: the aim line. The query
// circle's own collider is skipped naturally, because a ray starting
// inside a shape has no entry point.
func (w *World) RayCastClosest(origin, dir mgl64.Vec2, queryRadius float64) (RayHit, bool) {
	ray, ok := normalizedRay(origin, dir)
	if !ok {
		return RayHit{}, false
	}

	best := RayHit{Distance: math.MaxFloat64}
	found := false
	w.colliders.Each(func(id ID, c *Collider) {
		if t, hit := castCollider(ray, c, queryRadius); hit && t < best.Distance {
			best = RayHit{Collider: id, Distance: t}
			found = true
		}
	})
	if !found {
		return RayHit{}, false
	}
	return best, true
}

func normalizedRay(origin, dir mgl64.Vec2) (Ray, bool) {
	if dir.Dot(dir) < geomEpsilon {
		return Ray{}, false
	}
	return Ray{Origin: origin, Dir: dir.Normalize()}, true
}

// castCollider casts against the collider's shape in world space, inflated
// by pad so a point ray stands in for a swept circle of that radius.
func castCollider(r Ray, c *Collider, pad float64) (float64, bool) {
	switch s := c.Shape.(type) {
	case CircleShape:
		return r.CastCircle(Circle{Centre: c.Pos, Radius: s.Radius}.Inflate(pad))
	case SegmentShape:
		seg := Line{Start: c.Pos.Add(s.Start), End: c.Pos.Add(s.End)}
		return r.CastCapsule(seg.Inflate(pad))
	case BoxShape:
		box := Box{Centre: c.Pos, Width: s.Width, Height: s.Height}
		return r.CastPaddedBox(box.Inflate(pad))
	}
	panic(fmt.Sprintf("ray cast against unsupported shape %T", c.Shape))
}

func mustBeFinite(what string, vs ...float64) {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			panic(fmt.Sprintf("%s must be finite, got %v", what, v))
		}
	}
}

func mustBePositive(what string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		panic(fmt.Sprintf("%s must be positive and finite, got %v", what, v))
	}
}
