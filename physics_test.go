package bramble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelta = 1.0 / 60

func addBody(tr *Tree, name string, shape CollisionShape, x, y float64) NodeID {
	id := tr.NewRigidbody(name, shape)
	tr.Node(id).SetPosition(x, y)
	tr.AddChild(tr.Root(), id)
	return id
}

func stepFrames(e *Engine, frames int) {
	for i := range frames {
		e.Step(float64(i+1)*testDelta, testDelta)
	}
}

func TestKinematicBodyIsNeverMoved(t *testing.T) {
	e := NewEngine(nil, nil)
	tr := e.Tree()
	k := addBody(tr, "platform", NewRectangleShape(1, 4), 2, 3)
	b := tr.Body(k)
	b.IsKinematic = true
	b.Velocity = Vec2{5, 5}
	b.Acceleration = Vec2{0, -9.8}

	// A dynamic body resting inside it must not push it either.
	addBody(tr, "ball", NewCircleShape(0.5), 2, 3.2)

	stepFrames(e, 120)

	assert.Equal(t, Vec2{2, 3}, tr.Node(k).Position())
	assert.Equal(t, Vec2{5, 5}, b.Velocity)
}

func TestIntegrateAppliesAcceleration(t *testing.T) {
	tr := NewTree()
	id := addBody(tr, "b", NewCircleShape(0.1), 0, 0)
	tr.Body(id).Acceleration = Vec2{2, 0}

	tr.Update(&FrameContext{DeltaSeconds: 0.5})

	assert.InDelta(t, 1, tr.Body(id).Velocity.X, 1e-12)
	assert.InDelta(t, 0.5, tr.Node(id).X, 1e-12)
}

func TestTriggerOverlapSetFollowsMovement(t *testing.T) {
	tr := NewTree()
	trigger := addBody(tr, "trigger", NewRectangleShape(1, 1), 0, 0)
	tr.Body(trigger).IsTrigger = true
	near := addBody(tr, "near", NewCircleShape(0.5), 0.5, 0)
	far := addBody(tr, "far", NewCircleShape(0.5), 10, 0)
	tr.Body(near).IsKinematic = true
	tr.Body(far).IsKinematic = true

	tr.Update(&FrameContext{DeltaSeconds: testDelta})

	assert.Equal(t, []NodeID{near}, tr.Body(trigger).OverlappedNodes())
	assert.True(t, tr.Body(near).IsOverlapping(trigger))
	assert.Empty(t, tr.Body(far).OverlappedNodes())

	tr.Node(near).SetPosition(20, 20)
	tr.Update(&FrameContext{DeltaSeconds: testDelta})

	assert.Empty(t, tr.Body(trigger).OverlappedNodes())
}

func TestOverlapSkipsOwnDescendants(t *testing.T) {
	tr := NewTree()
	parent := addBody(tr, "parent", NewCircleShape(1), 0, 0)
	child := tr.NewRigidbody("child", NewCircleShape(1))
	tr.AddChild(parent, child)

	tr.Update(&FrameContext{DeltaSeconds: testDelta})

	assert.Empty(t, tr.Body(parent).OverlappedNodes())
	assert.Empty(t, tr.Body(child).OverlappedNodes())
}

func TestBodyComesToRestOnKinematicFloor(t *testing.T) {
	e := NewEngine(nil, nil)
	tr := e.Tree()
	floor := addBody(tr, "floor", NewRectangleShape(1, 10), 0, 0)
	tr.Body(floor).IsKinematic = true
	ball := addBody(tr, "ball", NewCircleShape(0.5), 0, 3)
	tr.Body(ball).Acceleration = Vec2{0, -10}

	stepFrames(e, 300)

	// Floor top is at 0.5, so the ball center rests one radius above it.
	assert.InDelta(t, 1.0, tr.Node(ball).WorldPosition().Y, 1e-6)
	assert.InDelta(t, 0, tr.Body(ball).Velocity.Y, 0.2)
}

func TestResolveContactsSplitsBetweenDynamicBodies(t *testing.T) {
	tr := NewTree()
	a := addBody(tr, "a", NewCircleShape(0.5), -0.4, 0)
	b := addBody(tr, "b", NewCircleShape(0.5), 0.4, 0)

	tr.ResolveContacts()

	assert.InDelta(t, -0.5, tr.Node(a).X, 1e-9)
	assert.InDelta(t, 0.5, tr.Node(b).X, 1e-9)
}

func TestResolveContactsIgnoresTriggers(t *testing.T) {
	tr := NewTree()
	trigger := addBody(tr, "trigger", NewCircleShape(0.5), 0, 0)
	tr.Body(trigger).IsTrigger = true
	ball := addBody(tr, "ball", NewCircleShape(0.5), 0.2, 0)

	tr.ResolveContacts()

	assert.Equal(t, Vec2{0, 0}, tr.Node(trigger).Position())
	assert.Equal(t, Vec2{0.2, 0}, tr.Node(ball).Position())
}

func TestResolveContactsInTranslatedParent(t *testing.T) {
	tr := NewTree()
	parent := tr.NewContainer("parent")
	tr.Node(parent).SetPosition(5, 0)
	tr.AddChild(tr.Root(), parent)

	floor := addBody(tr, "floor", NewRectangleShape(1, 10), 5, 0)
	tr.Body(floor).IsKinematic = true
	ball := tr.NewRigidbody("ball", NewCircleShape(0.5))
	tr.Node(ball).SetPosition(0, 0.9)
	tr.AddChild(parent, ball)

	tr.ResolveContacts()

	require.NotNil(t, tr.Node(ball))
	assert.InDelta(t, 1.0, tr.Node(ball).Y, 1e-9)
	assert.InDelta(t, 0, tr.Node(ball).X, 1e-9)
	assert.InDelta(t, 1.0, tr.Node(ball).WorldPosition().Y, 1e-9)
}

func TestResolveContactsCancelsInwardVelocity(t *testing.T) {
	tr := NewTree()
	floor := addBody(tr, "floor", NewRectangleShape(1, 10), 0, 0)
	tr.Body(floor).IsKinematic = true
	ball := addBody(tr, "ball", NewCircleShape(0.5), 0, 0.9)
	tr.Body(ball).Velocity = Vec2{3, -4}

	tr.ResolveContacts()

	v := tr.Body(ball).Velocity
	assert.InDelta(t, 3, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
}
