package bramble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []OverlapEvent
}

func (s *recordingSink) EmitOverlap(e OverlapEvent) {
	s.events = append(s.events, e)
}

func TestOverlapEventsBeginAndEnd(t *testing.T) {
	tr := NewTree()
	sink := &recordingSink{}
	tr.SetEventSink(sink)

	coin := addBody(tr, "coin", NewCircleShape(0.5), 0, 0)
	tr.Body(coin).IsTrigger = true
	tr.Node(coin).UserData = "gold"
	ball := addBody(tr, "ball", NewCircleShape(0.5), 0.5, 0)
	tr.Body(ball).IsKinematic = true

	tr.Update(&FrameContext{DeltaSeconds: testDelta})
	require.Len(t, sink.events, 2)
	first := sink.events[0]
	assert.Equal(t, OverlapBegin, first.Type)
	assert.Equal(t, coin, first.Body)
	assert.Equal(t, ball, first.Other)
	assert.Equal(t, "coin", first.BodyName)
	assert.Equal(t, "ball", first.OtherName)
	assert.Equal(t, "gold", first.UserData)
	assert.Equal(t, ball, sink.events[1].Body)

	// Still overlapping: no new events.
	tr.Update(&FrameContext{DeltaSeconds: testDelta})
	assert.Len(t, sink.events, 2)

	tr.Node(ball).SetPosition(5, 0)
	tr.Update(&FrameContext{DeltaSeconds: testDelta})
	require.Len(t, sink.events, 4)
	assert.Equal(t, OverlapEnd, sink.events[2].Type)
	assert.Equal(t, OverlapEnd, sink.events[3].Type)
}

func TestOverlapEventTypeString(t *testing.T) {
	assert.Equal(t, "begin", OverlapBegin.String())
	assert.Equal(t, "end", OverlapEnd.String())
}

func TestNoSinkNoEvents(t *testing.T) {
	tr := NewTree()
	addBody(tr, "a", NewCircleShape(1), 0, 0)
	addBody(tr, "b", NewCircleShape(1), 0, 0)
	tr.SetEventSink(nil)
	assert.NotPanics(t, func() { tr.Update(&FrameContext{DeltaSeconds: testDelta}) })
}
