package bramble

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via TweenPosition or TweenScale and call Update(dt) each frame
// (typically from an OnUpdate hook). The group writes values and marks the
// node dirty. If the target node is removed from its tree, the group stops.
//
// Tweens are the intended way to move kinematic bodies: physics never moves
// them, so platforms and doors are driven from here.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	tree   *Tree
	target NodeID
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	n := g.tree.Node(g.target)
	if n == nil {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	n.MarkDirty()
}

// TweenPosition creates a TweenGroup that animates the node's X and Y to the
// given target over duration seconds using the easing function.
func TweenPosition(t *Tree, id NodeID, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := t.mustNode(id, "TweenPosition")
	g := &TweenGroup{count: 2, tree: t, target: id}
	g.tweens[0] = gween.New(float32(n.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(n.Y), float32(toY), duration, fn)
	g.fields[0] = &n.X
	g.fields[1] = &n.Y
	return g
}

// TweenScale creates a TweenGroup that animates the node's ScaleX and ScaleY.
// Collision shapes do not scale; use this for visuals only.
func TweenScale(t *Tree, id NodeID, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := t.mustNode(id, "TweenScale")
	g := &TweenGroup{count: 2, tree: t, target: id}
	g.tweens[0] = gween.New(float32(n.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(n.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &n.ScaleX
	g.fields[1] = &n.ScaleY
	return g
}

// PingPong returns an OnUpdate hook that moves a node back and forth
// between its starting position and that position offset by (dx, dy),
// taking duration seconds
// per leg. The hook keeps separate state per node, so it survives Clone.
func PingPong(dx, dy float64, duration float32, fn ease.TweenFunc) func(*FrameContext, *Node) {
	return newPingPong(dx, dy, duration, fn).update
}

type pingPongLeg struct {
	group        *TweenGroup
	fromX, fromY float64
	forward      bool
}

type pingPong struct {
	dx, dy   float64
	duration float32
	fn       ease.TweenFunc
	legs     map[NodeID]*pingPongLeg
}

func newPingPong(dx, dy float64, duration float32, fn ease.TweenFunc) *pingPong {
	return &pingPong{dx: dx, dy: dy, duration: duration, fn: fn, legs: make(map[NodeID]*pingPongLeg)}
}

func (p *pingPong) update(ctx *FrameContext, n *Node) {
	l, ok := p.legs[n.ID()]
	if !ok {
		p.prune(ctx.Tree)
		l = &pingPongLeg{fromX: n.X, fromY: n.Y, forward: true}
		l.group = TweenPosition(ctx.Tree, n.ID(), l.fromX+p.dx, l.fromY+p.dy, p.duration, p.fn)
		p.legs[n.ID()] = l
	}
	l.group.Update(float32(ctx.DeltaSeconds))
	if !l.group.Done {
		return
	}
	l.forward = !l.forward
	if l.forward {
		l.group = TweenPosition(ctx.Tree, n.ID(), l.fromX+p.dx, l.fromY+p.dy, p.duration, p.fn)
	} else {
		l.group = TweenPosition(ctx.Tree, n.ID(), l.fromX, l.fromY, p.duration, p.fn)
	}
}

// prune drops the legs of removed nodes.
func (p *pingPong) prune(t *Tree) {
	for id := range p.legs {
		if t.Node(id) == nil {
			delete(p.legs, id)
		}
	}
}
