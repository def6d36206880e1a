package bramble

import (
	"math"

	"github.com/solarlune/resolv"
)

// CollisionShape is immutable geometry centered on its owner's world
// position. The concrete variants are CircleShape and RectangleShape.
type CollisionShape interface {
	// Bounds returns the world-space AABB of the shape centered at pos.
	Bounds(pos Vec2) Rect
	isCollisionShape()
}

// CircleShape is a circle of the given radius.
type CircleShape struct {
	Radius float64
}

// Bounds returns the square that encloses the circle.
func (c CircleShape) Bounds(pos Vec2) Rect {
	return Rect{X: pos.X - c.Radius, Y: pos.Y - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

func (CircleShape) isCollisionShape() {}

// RectangleShape is an axis-aligned rectangle.
type RectangleShape struct {
	Height, Width float64
}

// Bounds returns the rectangle itself.
func (r RectangleShape) Bounds(pos Vec2) Rect {
	return Rect{X: pos.X - r.Width/2, Y: pos.Y - r.Height/2, Width: r.Width, Height: r.Height}
}

func (RectangleShape) isCollisionShape() {}

// NewCircleShape returns a circle collision shape.
func NewCircleShape(radius float64) CollisionShape {
	return CircleShape{Radius: radius}
}

// NewRectangleShape returns a rectangle collision shape. Height comes first.
func NewRectangleShape(height, width float64) CollisionShape {
	return RectangleShape{Height: height, Width: width}
}

// ShapeFactory builds collision shapes. The zero value is ready to use.
type ShapeFactory struct{}

// CreateCircleCollisionShape returns a circle collision shape.
func (ShapeFactory) CreateCircleCollisionShape(radius float64) CollisionShape {
	return NewCircleShape(radius)
}

// CreateRectangleCollisionShape returns a rectangle collision shape.
func (ShapeFactory) CreateRectangleCollisionShape(height, width float64) CollisionShape {
	return NewRectangleShape(height, width)
}

// Overlaps reports whether shape a centered at pa intersects shape b centered
// at pb. The test is symmetric. Touching shapes count as overlapping.
func Overlaps(a CollisionShape, pa Vec2, b CollisionShape, pb Vec2) bool {
	switch sa := a.(type) {
	case CircleShape:
		switch sb := b.(type) {
		case CircleShape:
			r := sa.Radius + sb.Radius
			return pa.Sub(pb).LenSq() <= r*r
		case RectangleShape:
			return circleRectOverlap(sa, pa, sb, pb)
		}
	case RectangleShape:
		switch sb := b.(type) {
		case CircleShape:
			return circleRectOverlap(sb, pb, sa, pa)
		case RectangleShape:
			return sa.Bounds(pa).Intersects(sb.Bounds(pb))
		}
	}
	return false
}

func circleRectOverlap(c CircleShape, pc Vec2, r RectangleShape, pr Vec2) bool {
	closest := clampToRect(pc, r.Bounds(pr))
	return pc.Sub(closest).LenSq() <= c.Radius*c.Radius
}

func clampToRect(p Vec2, r Rect) Vec2 {
	return Vec2{
		X: math.Max(r.X, math.Min(p.X, r.X+r.Width)),
		Y: math.Max(r.Y, math.Min(p.Y, r.Y+r.Height)),
	}
}

// Penetration returns the minimum translation that moves shape a (at pa)
// out of shape b (at pb), and whether the shapes interpenetrate at all.
// Shapes that merely touch report false.
func Penetration(a CollisionShape, pa Vec2, b CollisionShape, pb Vec2) (Vec2, bool) {
	switch sa := a.(type) {
	case CircleShape:
		switch sb := b.(type) {
		case CircleShape:
			return contactPenetration(a, pa, b, pb)
		case RectangleShape:
			return circleRectPenetration(sa, pa, sb, pb)
		}
	case RectangleShape:
		switch sb := b.(type) {
		case CircleShape:
			mtv, ok := circleRectPenetration(sb, pb, sa, pa)
			return mtv.Scale(-1), ok
		case RectangleShape:
			return contactPenetration(a, pa, b, pb)
		}
	}
	return Vec2{}, false
}

// resolvShape places s at pos as a resolv shape.
func resolvShape(s CollisionShape, pos Vec2) resolv.IShape {
	switch s := s.(type) {
	case CircleShape:
		return resolv.NewCircle(pos.X, pos.Y, s.Radius)
	case RectangleShape:
		r := resolv.NewRectangle(0, 0, s.Width, s.Height)
		r.SetPosition(pos.X-s.Width/2, pos.Y-s.Height/2)
		return r
	}
	return nil
}

// contactPenetration takes the MTV from resolv's contact set, oriented to
// push a away from b. resolv finds contacts where outlines cross, so a shape
// lying wholly inside the other falls back to the bounds.
func contactPenetration(a CollisionShape, pa Vec2, b CollisionShape, pb Vec2) (Vec2, bool) {
	cs := resolvShape(a, pa).Intersection(0, 0, resolvShape(b, pb))
	if cs == nil {
		return boundsPenetration(a.Bounds(pa), b.Bounds(pb))
	}
	if len(cs.MTV) < 2 {
		return Vec2{}, false
	}
	mtv := Vec2{cs.MTV[0], cs.MTV[1]}
	if math.IsNaN(mtv.X) || math.IsNaN(mtv.Y) {
		// Coincident centers leave no direction to push along.
		return boundsPenetration(a.Bounds(pa), b.Bounds(pb))
	}
	if mtv.LenSq() == 0 {
		return Vec2{}, false
	}
	if mtv.Dot(pa.Sub(pb)) < 0 {
		mtv = mtv.Scale(-1)
	}
	return mtv, true
}

// circleRectPenetration pushes the circle out along the line to the nearest
// point of the rectangle. resolv's circle-polygon MTV is aimed from the
// nearest vertex, which shoves a circle resting on a flat edge sideways.
func circleRectPenetration(c CircleShape, pc Vec2, r RectangleShape, pr Vec2) (Vec2, bool) {
	bounds := r.Bounds(pr)
	closest := clampToRect(pc, bounds)
	d := pc.Sub(closest)
	if distSq := d.LenSq(); distSq > 0 {
		dist := math.Sqrt(distSq)
		depth := c.Radius - dist
		if depth <= 0 {
			return Vec2{}, false
		}
		return d.Scale(depth / dist), true
	}

	// Center inside the rectangle: push out through the nearest edge.
	left := pc.X - bounds.X
	right := bounds.X + bounds.Width - pc.X
	bottom := pc.Y - bounds.Y
	top := bounds.Y + bounds.Height - pc.Y
	switch math.Min(math.Min(left, right), math.Min(bottom, top)) {
	case top:
		return Vec2{0, top + c.Radius}, true
	case bottom:
		return Vec2{0, -(bottom + c.Radius)}, true
	case left:
		return Vec2{-(left + c.Radius), 0}, true
	default:
		return Vec2{right + c.Radius, 0}, true
	}
}

// boundsPenetration pushes rectangle a out of b along the shallower axis.
func boundsPenetration(a, b Rect) (Vec2, bool) {
	dx := (a.X + a.Width/2) - (b.X + b.Width/2)
	dy := (a.Y + a.Height/2) - (b.Y + b.Height/2)
	ox := (a.Width+b.Width)/2 - math.Abs(dx)
	oy := (a.Height+b.Height)/2 - math.Abs(dy)
	if ox <= 0 || oy <= 0 {
		return Vec2{}, false
	}
	if oy <= ox {
		return Vec2{0, math.Copysign(oy, dy)}, true
	}
	return Vec2{math.Copysign(ox, dx), 0}, true
}
