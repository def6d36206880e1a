package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (t *Tree) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = t.Node(p.parent) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logr().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (t *Tree) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logr().Warn("child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugLogPhysics logs the last frame's physics counters.
func (t *Tree) debugLogPhysics() {
	logr().Debug("physics",
		"bodies", t.stats.bodies,
		"overlapPairs", t.stats.overlaps,
		"contacts", t.stats.contacts)
}

// frameLabel formats the overlay text for a frame that took deltaSeconds.
func frameLabel(deltaSeconds float64) string {
	if deltaSeconds <= 0 {
		return "Frame: -"
	}
	return fmt.Sprintf("Frame: %.3f (%.1f FPS)", deltaSeconds, 1/deltaSeconds)
}

// drawOverlay prints frame time and FPS in the top-left corner.
func drawOverlay(screen *ebiten.Image, deltaSeconds float64) {
	ebitenutil.DebugPrintAt(screen, frameLabel(deltaSeconds), 4, 4)
}
