package bramble

// FrameContext is passed down the update traversal. It replaces any global
// engine access: nodes read input and timing only through it.
type FrameContext struct {
	Tree  *Tree
	Input Input

	// Seconds is the time elapsed since the engine started.
	Seconds float64
	// DeltaSeconds is the time elapsed since the previous frame.
	DeltaSeconds float64
}

// Update advances one frame. Overlap sets are rebuilt from the current world
// transforms first, then the tree is traversed depth-first: players apply
// input and gravity, bodies integrate, OnUpdate hooks run, then children.
func (t *Tree) Update(ctx *FrameContext) {
	if ctx.Tree == nil {
		ctx.Tree = t
	}
	t.detectOverlaps()
	if root := t.Node(t.root); root != nil {
		t.updateNode(root, ctx)
	}
}

func (t *Tree) updateNode(n *Node, ctx *FrameContext) {
	switch n.Type {
	case NodeTypePlayer:
		t.updatePlayer(n, ctx)
		n.Body.integrate(n, ctx.DeltaSeconds)
	case NodeTypeRigidbody:
		n.Body.integrate(n, ctx.DeltaSeconds)
	}

	if n.OnUpdate != nil {
		n.OnUpdate(ctx, n)
	}

	// Index loop: hooks may append children during the frame.
	for i := 0; i < len(n.children); i++ {
		if c := t.Node(n.children[i]); c != nil {
			t.updateNode(c, ctx)
		}
	}
}
