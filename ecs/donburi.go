package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for canopy events.
// Subscribe to this in your ECS systems to receive pointer, selection and
// navigation events delivered to entity-bound nodes.
var InteractionEventType = events.NewEventType[canopy.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to InteractionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) canopy.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event canopy.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// SubscribeType subscribes fn to events of a single canopy event type.
func SubscribeType(world donburi.World, t canopy.EventType, fn func(donburi.World, canopy.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		if e.Type == t {
			fn(w, e)
		}
	})
}
