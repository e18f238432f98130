package miniecs

import (
	"testing"
)

type testEvent struct {
	Value int
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := &EventBus{}
	received := 0
	Subscribe(bus, func(e testEvent) {
		received += e.Value
	})
	Subscribe(bus, func(e testEvent) {
		received += e.Value * 2
	})
	Publish(bus, testEvent{Value: 1})
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, testEvent{Value: 2})
	if received != 9 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := &EventBus{}
	// No panic expected
	Publish(bus, testEvent{Value: 42})
}

func TestWorldLifecycleEvents(t *testing.T) {
	w, posID, _, _ := setupWorld(t)
	bus := &EventBus{}
	w.SetEvents(bus)

	var created, removed, added, dropped int
	var lastAdded ComponentAdded
	Subscribe(bus, func(e EntityCreated) { created++ })
	Subscribe(bus, func(e EntityRemoved) { removed++ })
	Subscribe(bus, func(e ComponentAdded) { added++; lastAdded = e })
	Subscribe(bus, func(e ComponentRemoved) { dropped++ })

	h := w.MakeEntity(&Position{X: 1})
	if created != 1 {
		t.Errorf("expected 1 EntityCreated, got %d", created)
	}
	if added != 1 {
		t.Errorf("expected 1 ComponentAdded, got %d", added)
	}
	if lastAdded.Entity != h || lastAdded.ID != posID {
		t.Errorf("ComponentAdded payload wrong: %+v", lastAdded)
	}

	// Duplicate add publishes nothing.
	w.MakeComponent(h, &Position{X: 2})
	if added != 1 {
		t.Errorf("duplicate add must not publish, got %d", added)
	}

	w.RemoveEntityComponent(h, posID)
	if dropped != 1 {
		t.Errorf("expected 1 ComponentRemoved, got %d", dropped)
	}

	w.MakeComponent(h, &Position{X: 3})
	w.RemoveEntity(h)
	if removed != 1 {
		t.Errorf("expected 1 EntityRemoved, got %d", removed)
	}
	if dropped != 2 {
		t.Errorf("expected entity removal to publish its component, got %d", dropped)
	}

	// Detached bus stays silent.
	w.SetEvents(nil)
	w.MakeEntity()
	if created != 1 {
		t.Errorf("detached bus still received events")
	}
}
