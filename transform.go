package bramble

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	if n.Rotation == 0 {
		return [6]float64{sx, 0, 0, sy, n.X, n.Y}
	}
	sin, cos := math.Sincos(n.Rotation)
	return [6]float64{cos * sx, sin * sx, -sin * sy, cos * sy, n.X, n.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformVector applies only the linear part of an affine matrix.
func transformVector(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// updateWorldTransform recomputes a node's world transform and depth.
// parentRecomputed forces recomputation even when the node is not dirty.
func (t *Tree) updateWorldTransform(n *Node, parentTransform [6]float64, parentZ float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldZ = parentZ + n.Z
		n.transformDirty = false
	}
	for _, id := range n.children {
		if child := t.Node(id); child != nil {
			t.updateWorldTransform(child, n.worldTransform, n.worldZ, recompute)
		}
	}
}

// CalculateWorldTransform refreshes world transforms for the whole tree,
// skipping subtrees whose local transforms have not changed.
func (t *Tree) CalculateWorldTransform() {
	t.updateWorldTransform(t.Node(t.root), identityTransform, 0, false)
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetZ sets the node's local depth. Higher values draw on top.
func (n *Node) SetZ(z float64) {
	n.Z = z
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// Translate moves the node by (dx, dy) in local space and marks it dirty.
func (n *Node) Translate(dx, dy float64) {
	n.X += dx
	n.Y += dy
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next CalculateWorldTransform. Useful after setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// WorldTransform returns the world affine matrix computed by the last
// CalculateWorldTransform.
func (n *Node) WorldTransform() [6]float64 {
	return n.worldTransform
}

// WorldPosition returns the world-space origin of the node.
func (n *Node) WorldPosition() Vec2 {
	return Vec2{n.worldTransform[4], n.worldTransform[5]}
}

// WorldZ returns the accumulated depth of the node.
func (n *Node) WorldZ() float64 {
	return n.worldZ
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}
