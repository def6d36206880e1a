package bramble

import "github.com/hajimehoshi/ebiten/v2"

// Key is a logical input key polled by controllers.
type Key uint8

const (
	KeyUp    Key = iota // jump
	KeyDown             // crouch / fall
	KeyLeft             // move left
	KeyRight            // move right
)

// Input answers "is key K currently pressed". Polled once per frame.
type Input interface {
	IsPressed(k Key) bool
}

// InputFunc adapts a plain function to the Input interface.
type InputFunc func(k Key) bool

// IsPressed calls f(k).
func (f InputFunc) IsPressed(k Key) bool {
	return f(k)
}

// MovementInput builds a 2D input vector from in. Each component is the sum
// of its opposing keys, so it is one of -1, 0, 1. A nil Input yields zero.
func MovementInput(in Input) Vec2 {
	var v Vec2
	if in == nil {
		return v
	}
	if in.IsPressed(KeyUp) {
		v.Y++
	}
	if in.IsPressed(KeyDown) {
		v.Y--
	}
	if in.IsPressed(KeyLeft) {
		v.X--
	}
	if in.IsPressed(KeyRight) {
		v.X++
	}
	return v
}

// KeyboardInput polls the keyboard through ebiten. A logical key is pressed
// when any of its bound physical keys is down.
type KeyboardInput struct {
	Bindings map[Key][]ebiten.Key
}

// NewKeyboardInput returns keyboard input bound to WASD and the arrow keys.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{Bindings: map[Key][]ebiten.Key{
		KeyUp:    {ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
		KeyDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
		KeyLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		KeyRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	}}
}

// IsPressed reports whether any physical key bound to k is held.
func (in *KeyboardInput) IsPressed(k Key) bool {
	for _, key := range in.Bindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
