package bramble

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine drives one Tree: it computes frame timing, updates the scene,
// resolves contacts, moves the camera and draws. It implements ebiten.Game.
type Engine struct {
	tree     *Tree
	camera   *Camera
	renderer *SpriteRenderer
	input    Input

	// ClearColor fills the screen before drawing each frame.
	ClearColor Color
	// ShowFPS draws the frame time overlay.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string
	// MaxStep is the longest simulated slice of a frame. Longer frames are
	// split into equal substeps so fast bodies cannot skip through thin
	// solids. Zero disables substepping.
	MaxStep float64

	injectQueue     []injectedFrame
	testRunner      *TestRunner
	screenshotQueue []string

	now         func() time.Time
	start       time.Time
	started     bool
	prevSeconds float64
	lastDelta   float64
	quit        bool
	debug       bool
}

const (
	defaultPixelsPerUnit = 32
	defaultMaxStep       = 1.0 / 480
	maxSubsteps          = 64
)

// NewEngine creates an engine with an empty tree, a camera at 32 pixels per
// unit, and the given renderer and input. Either may be nil: a nil renderer
// draws nothing and a nil input reads as no keys pressed.
func NewEngine(renderer *SpriteRenderer, input Input) *Engine {
	return &Engine{
		tree:          NewTree(),
		camera:        NewCamera(defaultPixelsPerUnit),
		renderer:      renderer,
		input:         input,
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
		MaxStep:       defaultMaxStep,
		now:           time.Now,
	}
}

// Tree returns the scene tree.
func (e *Engine) Tree() *Tree {
	return e.tree
}

// Camera returns the active camera.
func (e *Engine) Camera() *Camera {
	return e.camera
}

// SetInput replaces the input source.
func (e *Engine) SetInput(in Input) {
	e.input = in
}

// SetClock replaces the monotonic clock used for frame timing.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.started = false
}

// SetDebugMode enables debug diagnostics on the engine and its tree.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	e.tree.SetDebugMode(enabled)
}

// Stop ends the run loop after the current frame.
func (e *Engine) Stop() {
	e.quit = true
}

// LastDelta returns the delta time of the most recent frame.
func (e *Engine) LastDelta() float64 {
	return e.lastDelta
}

// tick reads the clock and returns (seconds since start, delta seconds).
func (e *Engine) tick() (float64, float64) {
	now := e.now()
	if !e.started {
		e.start = now
		e.started = true
		e.prevSeconds = 0
	}
	seconds := now.Sub(e.start).Seconds()
	delta := seconds - e.prevSeconds
	e.prevSeconds = seconds
	return seconds, delta
}

// Step runs one frame body without a window: update the tree, refresh world
// transforms and resolve solid contacts, once per substep, then advance the
// camera. An attached TestRunner and any injected keys are applied first and
// hold for every substep of the frame.
func (e *Engine) Step(seconds, deltaSeconds float64) {
	e.lastDelta = deltaSeconds
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	input := e.nextInput()

	steps := e.substeps(deltaSeconds)
	sub := deltaSeconds / float64(steps)
	start := seconds - deltaSeconds
	ctx := &FrameContext{Tree: e.tree, Input: input}
	for i := range steps {
		ctx.Seconds = start + sub*float64(i+1)
		ctx.DeltaSeconds = sub
		e.tree.Update(ctx)
		e.tree.CalculateWorldTransform()
		e.tree.ResolveContacts()
	}
	e.camera.update(e.tree, float32(deltaSeconds))
}

func (e *Engine) substeps(deltaSeconds float64) int {
	if e.MaxStep <= 0 || deltaSeconds <= e.MaxStep {
		return 1
	}
	return min(int(math.Ceil(deltaSeconds/e.MaxStep)), maxSubsteps)
}

// Update implements ebiten.Game.
func (e *Engine) Update() error {
	if e.quit {
		return ebiten.Termination
	}
	seconds, delta := e.tick()
	e.Step(seconds, delta)
	return nil
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(e.ClearColor.toRGBA())
	if e.renderer != nil {
		e.tree.Draw(e.renderer)
		e.renderer.Flush(screen, e.camera.ViewMatrix())
	}
	if e.ShowFPS {
		drawOverlay(screen, e.lastDelta)
	}
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The framebuffer matches the window and the
// camera projection follows it.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.camera.UpdateProjection(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
