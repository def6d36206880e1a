package bramble

import (
	"fmt"
	"math"
)

type slot struct {
	node *Node
	gen  uint32
}

// Tree owns every node of a scene in an arena addressed by NodeID. Parents
// own their children exclusively; removing a node frees its whole subtree.
// Tree is not safe for concurrent use.
type Tree struct {
	slots []slot
	free  []int
	root  NodeID
	count int

	sink  EventSink
	debug bool

	bodyBuf []*Node
	stats   physicsStats
}

// NewTree creates a tree with a pre-created root container.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.NewContainer("root")
	return t
}

// Root returns the handle of the tree's root container.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of live nodes, including the root.
func (t *Tree) Len() int {
	return t.count
}

// Node resolves id to its node, or nil if id is None, unknown, or removed.
// The pointer stays valid until the node is removed.
func (t *Tree) Node(id NodeID) *Node {
	if id == None {
		return nil
	}
	i := id.index()
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	s := t.slots[i]
	if s.node == nil || s.gen != id.generation() {
		return nil
	}
	return s.node
}

// Contains reports whether id refers to a live node.
func (t *Tree) Contains(id NodeID) bool {
	return t.Node(id) != nil
}

// SetDebugMode enables tree depth / child count warnings and per-frame
// physics stats on the package logger.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

func (t *Tree) mustNode(id NodeID, op string) *Node {
	n := t.Node(id)
	if n == nil {
		panic(fmt.Sprintf("bramble: %s: unknown node %d", op, id))
	}
	return n
}

// insert stores n in a free slot and assigns its ID.
func (t *Tree) insert(n *Node) NodeID {
	var i int
	if k := len(t.free); k > 0 {
		i = t.free[k-1]
		t.free = t.free[:k-1]
	} else {
		if uint64(len(t.slots)) >= idIndexMask {
			panic("bramble: node arena exhausted")
		}
		t.slots = append(t.slots, slot{})
		i = len(t.slots) - 1
	}
	t.slots[i].node = n
	n.id = makeNodeID(i, t.slots[i].gen)
	t.count++
	return n.id
}

// release frees the slot of n and bumps its generation. A slot whose
// generation would wrap is retired instead of reused.
func (t *Tree) release(n *Node) {
	i := n.id.index()
	t.slots[i].node = nil
	t.count--
	n.id = None
	if t.slots[i].gen == math.MaxUint32 {
		return
	}
	t.slots[i].gen++
	t.free = append(t.free, i)
}

// --- Constructors ---

// NewContainer creates a detached container node with no behavior.
func (t *Tree) NewContainer(name string) NodeID {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return t.insert(n)
}

// NewSprite creates a detached sprite node that draws the given atlas cell.
func (t *Tree) NewSprite(name string, sprite Sprite) NodeID {
	n := &Node{Name: name, Type: NodeTypeSprite, Sprite: sprite}
	nodeDefaults(n)
	return t.insert(n)
}

// --- Tree manipulation ---

// AddChild appends child to parent's children and transfers ownership.
// If child already has a parent, it is removed from that parent first.
// Panics if either ID is unknown or child is an ancestor of parent (cycle).
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.mustNode(parent, "AddChild (parent)")
	c := t.mustNode(child, "AddChild (child)")
	if t.isAncestor(child, parent) {
		panic("bramble: adding child would create a cycle")
	}
	if c.parent != None {
		t.removeChildByID(t.Node(c.parent), child)
	}
	c.parent = parent
	p.children = append(p.children, child)
	c.transformDirty = true
	if t.debug {
		t.debugCheckTreeDepth(c)
		t.debugCheckChildCount(p)
	}
}

// RemoveChild detaches child from parent without freeing it. The child
// becomes a detached root that can be re-added elsewhere.
// Panics if child's parent is not parent.
func (t *Tree) RemoveChild(parent, child NodeID) {
	p := t.mustNode(parent, "RemoveChild (parent)")
	c := t.mustNode(child, "RemoveChild (child)")
	if c.parent != parent {
		panic("bramble: child's parent is not this node")
	}
	t.removeChildByID(p, child)
	c.parent = None
	c.transformDirty = true
}

// Remove detaches id from its parent and frees it together with all of its
// descendants. Panics when asked to remove the root.
func (t *Tree) Remove(id NodeID) {
	n := t.mustNode(id, "Remove")
	if id == t.root {
		panic("bramble: cannot remove the root node")
	}
	if n.parent != None {
		if p := t.Node(n.parent); p != nil {
			t.removeChildByID(p, id)
		}
	}
	t.freeSubtree(n)
}

func (t *Tree) freeSubtree(n *Node) {
	for _, id := range n.children {
		if c := t.Node(id); c != nil {
			t.freeSubtree(c)
		}
	}
	n.children = nil
	n.parent = None
	n.Body = nil
	n.Player = nil
	n.Map = nil
	n.OnUpdate = nil
	n.UserData = nil
	t.release(n)
}

// Children returns the child handles of id in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.mustNode(id, "Children").children
}

// Parent returns the parent handle of id, or None for detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.mustNode(id, "Parent").parent
}

// GetChild returns the first child of id (in insertion order) for which
// match returns true, or None if no child matches.
func (t *Tree) GetChild(id NodeID, match func(*Node) bool) NodeID {
	for _, cid := range t.mustNode(id, "GetChild").children {
		if c := t.Node(cid); c != nil && match(c) {
			return cid
		}
	}
	return None
}

// Walk visits id and its descendants depth-first in child order. Returning
// false from fn skips the visited node's children.
func (t *Tree) Walk(id NodeID, fn func(*Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, cid := range n.children {
		t.Walk(cid, fn)
	}
}

// --- Cloning ---

// Clone deep-copies the subtree rooted at id and returns the detached copy.
// The copy has the same local transforms and payload state, independently
// cloned children, and fresh IDs. Collision shapes are immutable and shared.
// Handles inside the subtree (a player's ground sensor) are remapped to
// the cloned nodes.
func (t *Tree) Clone(id NodeID) NodeID {
	src := t.mustNode(id, "Clone")
	remap := make(map[NodeID]NodeID)
	dst := t.cloneSubtree(src, remap)
	for _, newID := range remap {
		n := t.Node(newID)
		if n.Player == nil {
			continue
		}
		if sensor, ok := remap[n.Player.groundSensor]; ok {
			n.Player.groundSensor = sensor
		} else {
			n.Player.groundSensor = None
		}
	}
	return dst.id
}

func (t *Tree) cloneSubtree(src *Node, remap map[NodeID]NodeID) *Node {
	dst := &Node{}
	*dst = *src
	dst.parent = None
	dst.children = nil
	dst.transformDirty = true
	if src.Body != nil {
		dst.Body = src.Body.clone()
	}
	if src.Player != nil {
		p := *src.Player
		dst.Player = &p
	}
	if src.Map != nil {
		m := *src.Map
		dst.Map = &m
	}
	t.insert(dst)
	remap[src.id] = dst.id

	if len(src.children) > 0 {
		dst.children = make([]NodeID, 0, len(src.children))
		for _, cid := range src.children {
			c := t.Node(cid)
			if c == nil {
				continue
			}
			cc := t.cloneSubtree(c, remap)
			cc.parent = dst.id
			dst.children = append(dst.children, cc.id)
		}
	}
	return dst
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of node's ancestors.
func (t *Tree) isAncestor(candidate, node NodeID) bool {
	for id := node; id != None; {
		if id == candidate {
			return true
		}
		n := t.Node(id)
		if n == nil {
			return false
		}
		id = n.parent
	}
	return false
}

// related reports whether a and b lie on the same ancestor chain.
func (t *Tree) related(a, b NodeID) bool {
	return t.isAncestor(a, b) || t.isAncestor(b, a)
}

// removeChildByID removes child from p.children without clearing its parent.
func (t *Tree) removeChildByID(p *Node, child NodeID) {
	for i, c := range p.children {
		if c == child {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = None
			p.children = p.children[:len(p.children)-1]
			return
		}
	}
}
