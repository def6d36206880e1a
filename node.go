package bramble

// NodeID is a stable handle to a node owned by a Tree. The zero value refers
// to no node. IDs of removed nodes never resolve to a later node that happens
// to reuse the same slot.
//
// The low 32 bits hold the slot index plus one, the high 32 bits the slot's
// generation at insertion time.
type NodeID uint64

// None is the zero NodeID.
const None NodeID = 0

const (
	idIndexBits = 32
	idIndexMask = 1<<idIndexBits - 1
)

func makeNodeID(index int, gen uint32) NodeID {
	return NodeID(uint64(gen)<<idIndexBits | uint64(index+1))
}

func (id NodeID) index() int {
	return int(uint64(id)&idIndexMask) - 1
}

func (id NodeID) generation() uint32 {
	return uint32(uint64(id) >> idIndexBits)
}

// Node is the fundamental scene graph element. A single flat struct is used
// for all node types; per-type state lives in the optional payload pointers.
type Node struct {
	// Identity
	id   NodeID
	Name string
	Type NodeType

	// Hierarchy (owned by the Tree)
	parent   NodeID
	children []NodeID

	// Transform (local)
	X, Y     float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Computed by CalculateWorldTransform
	worldTransform [6]float64
	worldZ         float64
	transformDirty bool

	// Visible=false skips Draw for this node and its subtree.
	Visible bool

	// Payloads
	Sprite Sprite     // NodeTypeSprite
	Body   *Rigidbody // NodeTypeRigidbody, NodeTypePlayer
	Player *Player    // NodeTypePlayer
	Map    *MapInfo   // NodeTypeMap

	// OnUpdate runs once per frame before the node's children are updated.
	// Clones share the same function value.
	OnUpdate func(ctx *FrameContext, n *Node)

	UserData any
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.transformDirty = true
}

// ID returns the node's handle in its tree.
func (n *Node) ID() NodeID {
	return n.id
}

// Parent returns the handle of the node's parent, or None.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the child handles in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}
