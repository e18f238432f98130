package miniecs

import "reflect"

// MaxEventTypes is the maximum number of unique event types one
// EventBus can carry.
const MaxEventTypes = 256

// Lifecycle events published by a World when a bus is attached via
// SetEvents. Publication is synchronous, from inside the mutating call.

// EntityCreated fires after a new entity record is inserted, before
// its initial components are attached.
type EntityCreated struct {
	Entity EntityHandle
}

// EntityRemoved fires after the entity's components are destroyed and
// its record erased.
type EntityRemoved struct {
	Entity EntityHandle
}

// ComponentAdded fires after a component is placed into its arena and
// linked to its entity.
type ComponentAdded struct {
	Entity    EntityHandle
	Component ComponentHandle
	ID        ComponentID
}

// ComponentRemoved fires after a component is destroyed and unlinked.
type ComponentRemoved struct {
	Entity    EntityHandle
	Component ComponentHandle
	ID        ComponentID
}

// EventBus is a type-keyed synchronous event bus. Handlers subscribe
// per event type and are invoked in subscription order on Publish.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]interface{}
	nextEventTypeID uint8
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeFor[T]()
	id := bus.getEventTypeID(t)
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]interface{}, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers the event to every handler registered for T, in
// subscription order. Publishing a type with no subscribers is a no-op.
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeFor[T]()
	if id, ok := bus.eventTypeMap[t]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if len(bus.eventTypeMap) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := bus.nextEventTypeID
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
