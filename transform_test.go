package bramble

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := &Node{}
	nodeDefaults(n)
	assertMatrix(t, "identity", computeLocalTransform(n), identityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := &Node{}
	nodeDefaults(n)
	n.SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := &Node{}
	nodeDefaults(n)
	n.SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := &Node{}
	nodeDefaults(n)
	n.SetRotation(math.Pi / 2)
	// cos=0, sin=1 -> a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, -4}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRoundtrip(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, -4}
	assertMatrix(t, "m*inv(m)", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- World transforms ---

func TestWorldTransformComposesParentToChild(t *testing.T) {
	tr := NewTree()
	parent := tr.NewContainer("parent")
	child := tr.NewContainer("child")
	tr.Node(parent).SetPosition(10, 5)
	tr.Node(parent).SetScale(2, 2)
	tr.Node(child).SetPosition(1, 1)
	tr.AddChild(tr.Root(), parent)
	tr.AddChild(parent, child)

	tr.CalculateWorldTransform()

	p := tr.Node(child).WorldPosition()
	assertNear(t, "x", p.X, 12)
	assertNear(t, "y", p.Y, 7)
}

func TestWorldZAccumulates(t *testing.T) {
	tr := NewTree()
	a := tr.NewContainer("a")
	b := tr.NewContainer("b")
	tr.Node(a).SetZ(1)
	tr.Node(b).SetZ(2)
	tr.AddChild(tr.Root(), a)
	tr.AddChild(a, b)

	tr.CalculateWorldTransform()

	assertNear(t, "worldZ", tr.Node(b).WorldZ(), 3)
}

func TestWorldTransformRecomputesDirtySubtree(t *testing.T) {
	tr := NewTree()
	parent := tr.NewContainer("parent")
	child := tr.NewContainer("child")
	tr.AddChild(tr.Root(), parent)
	tr.AddChild(parent, child)
	tr.CalculateWorldTransform()

	// Only the parent is marked dirty; the child still follows.
	tr.Node(parent).Translate(3, 4)
	tr.CalculateWorldTransform()

	p := tr.Node(child).WorldPosition()
	assertNear(t, "x", p.X, 3)
	assertNear(t, "y", p.Y, 4)
}

func TestWorldTransformIgnoresUndirtiedFieldWrites(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("n")
	tr.AddChild(tr.Root(), n)
	tr.CalculateWorldTransform()

	tr.Node(n).X = 5
	tr.CalculateWorldTransform()
	assertNear(t, "stale x", tr.Node(n).WorldPosition().X, 0)

	tr.Node(n).MarkDirty()
	tr.CalculateWorldTransform()
	assertNear(t, "x", tr.Node(n).WorldPosition().X, 5)
}

func TestLocalWorldRoundtrip(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("n")
	tr.Node(n).SetPosition(3, -2)
	tr.Node(n).SetRotation(0.7)
	tr.Node(n).SetScale(1.5, 0.5)
	tr.AddChild(tr.Root(), n)
	tr.CalculateWorldTransform()

	wx, wy := tr.Node(n).LocalToWorld(4, 1)
	lx, ly := tr.Node(n).WorldToLocal(wx, wy)
	if math.Abs(lx-4) > 1e-6 || math.Abs(ly-1) > 1e-6 {
		t.Errorf("roundtrip = (%v,%v), want (4,1)", lx, ly)
	}
}
