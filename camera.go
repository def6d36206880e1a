package bramble

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps Y-up world units onto the Y-down screen.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// PixelsPerUnit is the on-screen size of one world unit.
	PixelsPerUnit float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	followTarget  NodeID
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewCamera creates a camera with the given zoom and an empty viewport.
// The viewport is normally set by UpdateProjection each frame.
func NewCamera(pixelsPerUnit float64) *Camera {
	return &Camera{PixelsPerUnit: pixelsPerUnit, dirty: true}
}

// UpdateProjection resizes the viewport to the framebuffer size.
func (c *Camera) UpdateProjection(width, height int) {
	vp := Rect{Width: float64(width), Height: float64(height)}
	if vp != c.Viewport {
		c.Viewport = vp
		c.dirty = true
	}
}

// Follow makes the camera track a node with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(node NodeID, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = None
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// update advances follow and scroll animation. A follow target that has been
// removed from the tree is dropped.
func (c *Camera) update(t *Tree, dt float32) {
	prevX, prevY, prevZoom := c.X, c.Y, c.PixelsPerUnit

	if c.followTarget != None {
		if n := t.Node(c.followTarget); n != nil {
			p := n.WorldPosition()
			c.X += (p.X + c.followOffsetX - c.X) * c.followLerp
			c.Y += (p.Y + c.followOffsetY - c.Y) * c.followLerp
		} else {
			c.followTarget = None
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.X != prevX || c.Y != prevY || c.PixelsPerUnit != prevZoom {
		c.dirty = true
	}
}

// ViewMatrix returns the world-to-screen matrix, recomputing it if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(ppu, -ppu) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) ViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.PixelsPerUnit

	c.viewMatrix = [6]float64{z, 0, 0, -z, cx - z*c.X, cy + z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.ViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.ViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle the viewport shows.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ScreenToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
