// Package ecs provides ECS adapters for canopy's event routing.
//
// The primary adapter is [NewDonburiStore], which forwards every event
// delivered to a node with a non-zero EntityID into a [Donburi] world as a
// typed event. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sys.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
