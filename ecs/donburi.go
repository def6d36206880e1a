package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// OverlapEventType is the Donburi event type for bramble overlap events.
var OverlapEventType = events.NewEventType[bramble.OverlapEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on OverlapEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) bramble.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitOverlap(event bramble.OverlapEvent) {
	OverlapEventType.Publish(s.world, event)
}
