// Package ecs provides ECS adapters for bramble's overlap events.
//
// The primary adapter is [NewDonburiSink], which forwards overlap begin and
// end events from a bramble Tree into a [Donburi] world as typed events.
// Subscribe to [OverlapEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	tree.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
