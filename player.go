package bramble

import (
	"fmt"
	"math"
)

const (
	playerRadius        = 0.5 - 1.0/32.0
	playerDepth         = 2.0
	playerAcceleration  = 100.0
	playerDamping       = 10.0
	groundSensorHeight  = 0.15
	groundSensorWidth   = 0.7
	groundSensorOffsetY = -0.5
)

// Player is the controller payload of a player node. The node's Body holds
// the physics state; Player holds the tuning and the ground sensor handle.
type Player struct {
	// Speed is the horizontal speed above which input stops accelerating.
	Speed float64
	// FallGravityFactor scales gravity while airborne and moving down.
	FallGravityFactor float64
	// ButtonPressJumpGravityFactor scales gravity while jump is held.
	ButtonPressJumpGravityFactor float64

	// Derived by SetJumpParameters.
	StartJumpVelocity   float64
	GravityAcceleration float64

	groundSensor NodeID
}

// NewPlayer creates a detached player node: a circle body at depth 2 with a
// trigger ground sensor child just below it. Jump parameters are derived
// from cfg. Panics if cfg fails Validate.
func (t *Tree) NewPlayer(name string, cfg PlayerConfig) NodeID {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("bramble: NewPlayer %q: invalid config: %v", name, err))
	}
	p := &Player{
		Speed:                        cfg.Speed,
		FallGravityFactor:            cfg.FallGravityFactor,
		ButtonPressJumpGravityFactor: cfg.ButtonPressJumpGravityFactor,
	}
	p.SetJumpParameters(cfg.JumpHeight, cfg.JumpDistance)

	n := &Node{
		Name:   name,
		Type:   NodeTypePlayer,
		Body:   &Rigidbody{Shape: NewCircleShape(playerRadius)},
		Player: p,
	}
	nodeDefaults(n)
	n.Z = playerDepth
	id := t.insert(n)

	sensor := t.NewRigidbody(name+"_ground_sensor", NewRectangleShape(groundSensorHeight, groundSensorWidth))
	sn := t.Node(sensor)
	sn.Body.IsTrigger = true
	sn.SetPosition(0, groundSensorOffsetY)
	t.AddChild(id, sensor)
	p.groundSensor = sensor

	return id
}

// Player returns the player payload of id, or nil if id is not a player.
func (t *Tree) Player(id NodeID) *Player {
	if n := t.Node(id); n != nil {
		return n.Player
	}
	return nil
}

// GroundSensor returns the handle of the player's ground sensor body.
func (p *Player) GroundSensor() NodeID {
	return p.groundSensor
}

// SetJumpParameters derives StartJumpVelocity and GravityAcceleration so that
// a jump with the button held peaks at targetHeight, with the jump duration
// tied to crossing targetDistance at Speed under the fall gravity factor.
// Call it again after changing Speed or either gravity factor.
func (p *Player) SetJumpParameters(targetHeight, targetDistance float64) {
	quarter := targetDistance / 4 / p.Speed
	jumpTime := quarter + quarter*p.FallGravityFactor
	p.StartJumpVelocity = 2 * targetHeight / jumpTime
	p.GravityAcceleration = (-p.StartJumpVelocity / jumpTime) / p.ButtonPressJumpGravityFactor
}

// ApexTime returns the time to reach the apex with the jump button held.
func (p *Player) ApexTime() float64 {
	g := p.GravityAcceleration * p.ButtonPressJumpGravityFactor
	if g == 0 {
		return 0
	}
	return -p.StartJumpVelocity / g
}

// IsGrounded reports whether the player's ground sensor overlaps anything
// this frame.
func (t *Tree) IsGrounded(player NodeID) bool {
	p := t.Player(player)
	if p == nil {
		return false
	}
	sensor := t.Body(p.groundSensor)
	return sensor != nil && len(sensor.overlaps) > 0
}

// updatePlayer sets the body's acceleration and jump velocity from input.
// Integration happens afterwards in updateNode.
func (t *Tree) updatePlayer(n *Node, ctx *FrameContext) {
	p := n.Player
	b := n.Body
	input := MovementInput(ctx.Input)

	accel := b.Acceleration
	if math.Abs(b.Velocity.X) < p.Speed && input.X != 0 {
		accel.X = input.X * playerAcceleration
	} else {
		accel.X = b.Velocity.X * -playerDamping
	}

	grounded := t.IsGrounded(n.id)

	// Level-triggered: holding jump while grounded re-applies the same
	// start velocity until the sensor leaves the ground.
	if input.Y > 0 && grounded {
		b.Velocity.Y = p.StartJumpVelocity
	}

	accel.Y = p.GravityAcceleration
	if !grounded && b.Velocity.Y < 0 {
		accel.Y *= p.FallGravityFactor
	}
	if input.Y > 0 {
		accel.Y *= p.ButtonPressJumpGravityFactor
	}

	b.Acceleration = accel
}
