package bramble

import "slices"

// Rigidbody is the physics payload of rigidbody and player nodes.
type Rigidbody struct {
	Velocity     Vec2
	Acceleration Vec2

	// Shape is centered on the owning node's world position.
	Shape CollisionShape

	// IsTrigger bodies report overlaps but never block or get pushed.
	IsTrigger bool
	// IsKinematic bodies are never moved by integration or contact
	// response, only by external code.
	IsKinematic bool

	overlaps     []NodeID
	prevOverlaps []NodeID
}

// NewRigidbody creates a detached rigidbody node with the given shape.
func (t *Tree) NewRigidbody(name string, shape CollisionShape) NodeID {
	n := &Node{Name: name, Type: NodeTypeRigidbody, Body: &Rigidbody{Shape: shape}}
	nodeDefaults(n)
	return t.insert(n)
}

// Body returns the rigidbody payload of id, or nil if id is not a body.
func (t *Tree) Body(id NodeID) *Rigidbody {
	if n := t.Node(id); n != nil {
		return n.Body
	}
	return nil
}

// OverlappedNodes returns the bodies this body overlapped in the current
// frame, in detection order. The slice is rebuilt every Update and MUST NOT
// be retained or mutated by the caller.
func (b *Rigidbody) OverlappedNodes() []NodeID {
	return b.overlaps
}

// IsOverlapping reports whether id is in this frame's overlap set.
func (b *Rigidbody) IsOverlapping(id NodeID) bool {
	return slices.Contains(b.overlaps, id)
}

func (b *Rigidbody) clone() *Rigidbody {
	return &Rigidbody{
		Velocity:     b.Velocity,
		Acceleration: b.Acceleration,
		Shape:        b.Shape,
		IsTrigger:    b.IsTrigger,
		IsKinematic:  b.IsKinematic,
	}
}

// integrate advances velocity and local position by dt. Kinematic bodies
// are left untouched.
func (b *Rigidbody) integrate(n *Node, dt float64) {
	if b.IsKinematic {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	if b.Velocity.X == 0 && b.Velocity.Y == 0 {
		return
	}
	n.Translate(b.Velocity.X*dt, b.Velocity.Y*dt)
}

func (b *Rigidbody) solid() bool {
	return !b.IsTrigger
}
