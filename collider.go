package snooker

import "github.com/go-gl/mathgl/mgl64"

// ID identifies a collider owned by a World. IDs are handed out
// monotonically and stay valid until their collider is removed, no matter
// how the backing storage shuffles underneath.
type ID uint64

// Shape is the geometry attached to a collider. The set is closed:
// CircleShape, BoxShape and SegmentShape. Shapes are immutable once
// attached.
type Shape interface {
	isShape()
}

type CircleShape struct {
	Radius float64
}

// BoxShape is axis-aligned and centred on the collider position.
type BoxShape struct {
	Width  float64
	Height float64
}

// SegmentShape stores its endpoints as offsets from the collider position.
type SegmentShape struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

func (CircleShape) isShape()  {}
func (BoxShape) isShape()     {}
func (SegmentShape) isShape() {}

// Body is the kinematic kind of a collider. Only *Dynamic carries a
// velocity; InvMass is zero for the other kinds, so impulses never move
// them.
type Body interface {
	isBody()
	InvMass() float64
}

// Static is an immovable body: cushions, rails, table walls.
type Static struct{}

// Dynamic is a moving body with finite positive mass.
type Dynamic struct {
	Mass     float64
	Velocity mgl64.Vec2
}

// Attractor overlaps like any other body but never exchanges impulses;
// instead it pulls overlapping Dynamic bodies toward itself. Pockets.
type Attractor struct{}

func (*Static) isBody()    {}
func (*Dynamic) isBody()   {}
func (*Attractor) isBody() {}

func (*Static) InvMass() float64 { return 0 }

func (d *Dynamic) InvMass() float64 {
	if d.Mass > 0 {
		return 1 / d.Mass
	}
	return 0
}

func (*Attractor) InvMass() float64 { return 0 }

// Collider is one rigid body in the world: position, kind, shape. Owned by
// the world's store and referenced externally only by ID.
type Collider struct {
	Pos   mgl64.Vec2
	Body  Body
	Shape Shape
}

func (c *Collider) dynamic() (*Dynamic, bool) {
	d, ok := c.Body.(*Dynamic)
	return d, ok
}

// velocity is zero for anything that is not Dynamic.
func (c *Collider) velocity() mgl64.Vec2 {
	if d, ok := c.dynamic(); ok {
		return d.Velocity
	}
	return mgl64.Vec2{}
}

// Contact is one detected overlap for one substep. Normal is unit length
// and points from collider A toward collider B.
type Contact struct {
	A           ID
	B           ID
	Normal      mgl64.Vec2
	Penetration float64
}
