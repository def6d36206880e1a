package bramble

// physicsStats holds per-frame physics counters.
// Only logged when the tree is in debug mode.
type physicsStats struct {
	bodies   int
	overlaps int
	contacts int
}

// collectBodies gathers every rigidbody reachable from the root, depth-first.
func (t *Tree) collectBodies() []*Node {
	t.bodyBuf = t.bodyBuf[:0]
	t.Walk(t.root, func(n *Node) bool {
		if n.Body != nil && n.Body.Shape != nil {
			t.bodyBuf = append(t.bodyBuf, n)
		}
		return true
	})
	return t.bodyBuf
}

// detectOverlaps rebuilds every body's overlap set from the current world
// transforms. Pairs on the same ancestor chain are never tested, so a
// body does not overlap its own sensors. This also holds for a body parented
// under another body: a player attached as a child of a moving platform is
// never grounded on it, so carry it by moving it alongside instead.
// O(n²) over all bodies.
func (t *Tree) detectOverlaps() {
	t.CalculateWorldTransform()
	bodies := t.collectBodies()

	for _, n := range bodies {
		b := n.Body
		b.prevOverlaps, b.overlaps = b.overlaps, b.prevOverlaps[:0]
	}

	pairs := 0
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		pa := a.WorldPosition()
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if t.related(a.id, b.id) {
				continue
			}
			if !Overlaps(a.Body.Shape, pa, b.Body.Shape, b.WorldPosition()) {
				continue
			}
			a.Body.overlaps = append(a.Body.overlaps, b.id)
			b.Body.overlaps = append(b.Body.overlaps, a.id)
			pairs++
		}
	}

	t.stats.bodies = len(bodies)
	t.stats.overlaps = pairs

	if t.sink != nil {
		for _, n := range bodies {
			t.emitOverlapChanges(n)
		}
	}
}

// ResolveContacts pushes dynamic solid bodies out of the solid bodies they
// interpenetrate and cancels the velocity component along the contact
// normal. Kinematic bodies are never moved; two dynamic bodies share the
// correction. Triggers are ignored. World transforms are refreshed first
// and again after any correction.
func (t *Tree) ResolveContacts() {
	t.CalculateWorldTransform()
	bodies := t.collectBodies()

	contacts := 0
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if !a.Body.solid() {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !b.Body.solid() || (a.Body.IsKinematic && b.Body.IsKinematic) {
				continue
			}
			if t.related(a.id, b.id) {
				continue
			}
			mtv, ok := Penetration(a.Body.Shape, a.WorldPosition(), b.Body.Shape, b.WorldPosition())
			if !ok {
				continue
			}
			contacts++
			switch {
			case b.Body.IsKinematic:
				t.pushBody(a, mtv)
			case a.Body.IsKinematic:
				t.pushBody(b, mtv.Scale(-1))
			default:
				t.pushBody(a, mtv.Scale(0.5))
				t.pushBody(b, mtv.Scale(-0.5))
			}
		}
	}
	t.stats.contacts = contacts

	if contacts > 0 {
		t.CalculateWorldTransform()
	}
	if t.debug {
		t.debugLogPhysics()
	}
}

// pushBody moves n by the world-space vector delta and removes the part of
// its velocity that points against the push.
func (t *Tree) pushBody(n *Node, delta Vec2) {
	parentWorld := identityTransform
	if p := t.Node(n.parent); p != nil {
		parentWorld = p.worldTransform
	}
	lx, ly := transformVector(invertAffine(parentWorld), delta.X, delta.Y)
	n.Translate(lx, ly)
	n.worldTransform[4] += delta.X
	n.worldTransform[5] += delta.Y

	lenSq := delta.LenSq()
	if lenSq == 0 {
		return
	}
	if vn := n.Body.Velocity.Dot(delta); vn < 0 {
		n.Body.Velocity = n.Body.Velocity.Sub(delta.Scale(vn / lenSq))
	}
}
