package bramble

import "slices"

// EventSink is the interface for optional event integration (for example an
// ECS world). When set on a Tree, overlap changes are forwarded to it.
type EventSink interface {
	EmitOverlap(event OverlapEvent)
}

// OverlapEventType identifies whether an overlap started or ended.
type OverlapEventType uint8

const (
	OverlapBegin OverlapEventType = iota // Other entered Body's overlap set this frame
	OverlapEnd                           // Other left Body's overlap set this frame
)

func (t OverlapEventType) String() string {
	if t == OverlapBegin {
		return "begin"
	}
	return "end"
}

// OverlapEvent reports a change in one body's overlap set. A pair that
// starts overlapping produces one event per body.
type OverlapEvent struct {
	Type      OverlapEventType
	Body      NodeID
	Other     NodeID
	BodyName  string
	OtherName string
	UserData  any
}

// SetEventSink sets the optional overlap event bridge. Pass nil to disable.
func (t *Tree) SetEventSink(sink EventSink) {
	t.sink = sink
}

// emitOverlapChanges diffs n's previous and current overlap sets.
func (t *Tree) emitOverlapChanges(n *Node) {
	b := n.Body
	for _, id := range b.overlaps {
		if !slices.Contains(b.prevOverlaps, id) {
			t.sink.EmitOverlap(t.overlapEvent(OverlapBegin, n, id))
		}
	}
	for _, id := range b.prevOverlaps {
		if !slices.Contains(b.overlaps, id) {
			t.sink.EmitOverlap(t.overlapEvent(OverlapEnd, n, id))
		}
	}
}

func (t *Tree) overlapEvent(typ OverlapEventType, n *Node, other NodeID) OverlapEvent {
	ev := OverlapEvent{
		Type:     typ,
		Body:     n.id,
		Other:    other,
		BodyName: n.Name,
		UserData: n.UserData,
	}
	if o := t.Node(other); o != nil {
		ev.OtherName = o.Name
	}
	return ev
}
