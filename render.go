package bramble

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer accepts draw submissions during Tree.Draw.
type Renderer interface {
	Submit(sprite Sprite, world [6]float64, z float64)
}

// RenderCommand is a single sprite draw queued for the next Flush.
type RenderCommand struct {
	Sprite    Sprite
	Transform [6]float64
	Z         float64
	treeOrder int // submission order for stable sorting
}

// SpriteRenderer queues sprite submissions and draws them once per frame,
// back to front by Z. Each sprite covers the unit square centered on its
// node's origin.
type SpriteRenderer struct {
	atlas    *Atlas
	commands []RenderCommand
	op       ebiten.DrawImageOptions
}

const defaultCommandCap = 1024

// NewSpriteRenderer creates a renderer drawing cells of atlas.
func NewSpriteRenderer(atlas *Atlas) *SpriteRenderer {
	return &SpriteRenderer{
		atlas:    atlas,
		commands: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Submit queues sprite at the given world transform and depth.
func (r *SpriteRenderer) Submit(sprite Sprite, world [6]float64, z float64) {
	r.commands = append(r.commands, RenderCommand{
		Sprite:    sprite,
		Transform: world,
		Z:         z,
		treeOrder: len(r.commands),
	})
}

// Commands returns the queued commands. The slice MUST NOT be retained.
func (r *SpriteRenderer) Commands() []RenderCommand {
	return r.commands
}

// sortCommands orders commands by Z, keeping submission order for ties.
func (r *SpriteRenderer) sortCommands() {
	slices.SortFunc(r.commands, func(a, b RenderCommand) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.treeOrder, b.treeOrder)
	})
}

// Flush draws every queued command onto target through the view matrix and
// empties the queue.
func (r *SpriteRenderer) Flush(target *ebiten.Image, view [6]float64) {
	r.sortCommands()
	if r.atlas != nil && r.atlas.CellSize > 0 {
		inv := 1 / float64(r.atlas.CellSize)
		for i := range r.commands {
			cmd := &r.commands[i]
			cell := r.atlas.Cell(cmd.Sprite)
			if cell == nil {
				continue
			}
			r.op.GeoM.Reset()
			// Image space is Y-down; world space is Y-up.
			r.op.GeoM.Scale(inv, -inv)
			r.op.GeoM.Translate(-0.5, 0.5)
			r.op.GeoM.Concat(affineGeoM(cmd.Transform))
			r.op.GeoM.Concat(affineGeoM(view))
			target.DrawImage(cell, &r.op)
		}
	}
	r.commands = r.commands[:0]
}

// affineGeoM converts a [6]float64 transform into an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw traverses the tree depth-first and submits every visible sprite node
// to r. Invisible nodes hide their whole subtree.
func (t *Tree) Draw(r Renderer) {
	if root := t.Node(t.root); root != nil {
		t.drawNode(root, r)
	}
}

func (t *Tree) drawNode(n *Node, r Renderer) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeSprite {
		r.Submit(n.Sprite, n.worldTransform, n.worldZ)
	}
	for _, id := range n.children {
		if c := t.Node(id); c != nil {
			t.drawNode(c, r)
		}
	}
}
