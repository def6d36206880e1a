package bramble

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestCamera() *Camera {
	cam := NewCamera(32)
	cam.UpdateProjection(640, 480)
	return cam
}

func TestCameraCentersOrigin(t *testing.T) {
	cam := newTestCamera()
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 320, epsilon) || !approxEqual(sy, 240, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (320,240)", sx, sy)
	}
}

func TestCameraFlipsY(t *testing.T) {
	cam := newTestCamera()
	// One unit up in the world is 32 pixels up on screen.
	_, sy := cam.WorldToScreen(0, 1)
	if !approxEqual(sy, 240-32, epsilon) {
		t.Errorf("sy = %f, want %f", sy, 240.0-32)
	}
	sx, _ := cam.WorldToScreen(1, 0)
	if !approxEqual(sx, 320+32, epsilon) {
		t.Errorf("sx = %f, want %f", sx, 320.0+32)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newTestCamera()
	cam.X, cam.Y = 5, -2
	cam.MarkDirty()
	sx, sy := cam.WorldToScreen(5, -2)
	if !approxEqual(sx, 320, epsilon) || !approxEqual(sy, 240, epsilon) {
		t.Errorf("camera target maps to (%f,%f), want center", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.X, cam.Y = 3, 4
	cam.MarkDirty()
	wx, wy := cam.ScreenToWorld(cam.WorldToScreen(-7.5, 2.25))
	if !approxEqual(wx, -7.5, 1e-9) || !approxEqual(wy, 2.25, 1e-9) {
		t.Errorf("roundtrip = (%f,%f)", wx, wy)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := newTestCamera()
	b := cam.VisibleBounds()
	if !approxEqual(b.Width, 20, 1e-9) || !approxEqual(b.Height, 15, 1e-9) {
		t.Errorf("bounds size = %vx%v, want 20x15", b.Width, b.Height)
	}
	if !approxEqual(b.X, -10, 1e-9) || !approxEqual(b.Y, -7.5, 1e-9) {
		t.Errorf("bounds origin = (%v,%v), want (-10,-7.5)", b.X, b.Y)
	}
}

func TestCameraFollow(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("target")
	tr.Node(n).SetPosition(4, 6)
	tr.AddChild(tr.Root(), n)
	tr.CalculateWorldTransform()

	cam := newTestCamera()
	cam.Follow(n, 1, 0, 1)
	cam.update(tr, 1.0/60)

	if cam.X != 5 || cam.Y != 6 {
		t.Errorf("camera = (%v,%v), want (5,6)", cam.X, cam.Y)
	}
}

func TestCameraFollowLerp(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("target")
	tr.Node(n).SetPosition(10, 0)
	tr.AddChild(tr.Root(), n)
	tr.CalculateWorldTransform()

	cam := newTestCamera()
	cam.Follow(n, 0, 0, 0.5)
	cam.update(tr, 1.0/60)

	if !approxEqual(cam.X, 5, epsilon) {
		t.Errorf("X = %v, want 5", cam.X)
	}
}

func TestCameraFollowRemovedTarget(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("target")
	tr.AddChild(tr.Root(), n)
	cam := newTestCamera()
	cam.Follow(n, 0, 0, 1)

	tr.Remove(n)
	cam.update(tr, 1.0/60)

	if cam.followTarget != None {
		t.Error("removed target should be dropped")
	}
}

func TestCameraUnfollow(t *testing.T) {
	tr := NewTree()
	n := tr.NewContainer("target")
	tr.Node(n).SetPosition(10, 10)
	tr.AddChild(tr.Root(), n)
	tr.CalculateWorldTransform()

	cam := newTestCamera()
	cam.Follow(n, 0, 0, 1)
	cam.Unfollow()
	cam.update(tr, 1.0/60)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("camera moved after Unfollow: (%v,%v)", cam.X, cam.Y)
	}
}

func TestCameraScrollTo(t *testing.T) {
	tr := NewTree()
	cam := newTestCamera()
	cam.ScrollTo(8, -4, 1.0, ease.Linear)

	cam.update(tr, 0.5)
	if !approxEqual(cam.X, 4, 0.01) || !approxEqual(cam.Y, -2, 0.01) {
		t.Errorf("halfway = (%v,%v), want (4,-2)", cam.X, cam.Y)
	}
	cam.update(tr, 0.5)
	if !approxEqual(cam.X, 8, 0.01) || !approxEqual(cam.Y, -4, 0.01) {
		t.Errorf("end = (%v,%v), want (8,-4)", cam.X, cam.Y)
	}
	if cam.scrollTween != nil {
		t.Error("scroll tween should be cleared when finished")
	}
}

func TestCameraViewportResize(t *testing.T) {
	cam := newTestCamera()
	cam.ViewMatrix()
	cam.UpdateProjection(800, 600)
	sx, sy := cam.WorldToScreen(0, 0)
	if sx != 400 || sy != 300 {
		t.Errorf("after resize origin = (%v,%v), want (400,300)", sx, sy)
	}
}
