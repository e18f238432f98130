package miniecs

import (
	"unsafe"
)

// location is the reverse-index entry for one live component: which
// entity owns it, which arena it lives in, and at what byte offset.
// It is maintained in lockstep with the entity member triples,
// including across swap-removes.
type location struct {
	entity EntityHandle
	id     ComponentID
	offset int
}

// World owns a set of entities and the packed per-type component
// arenas behind them. All mutating operations must be serialized by
// the caller; two Worlds are fully independent.
//
// Component pointers returned by lookups and by GetRelevant are
// borrowed: they stay valid only until the next call that adds or
// removes a component of the same type.
type World struct {
	components map[ComponentID][]byte
	entities   map[EntityHandle]*Entity
	compIndex  map[ComponentHandle]location
	handles    handleSource
	resources  Resources
	events     *EventBus
}

// NewWorld constructs an empty World with its own handle generator.
func NewWorld() *World {
	return &World{
		components: make(map[ComponentID][]byte),
		entities:   make(map[EntityHandle]*Entity),
		compIndex:  make(map[ComponentHandle]location),
		handles:    newHandleSource(),
	}
}

// Resources returns the world's singleton store, a type-keyed home for
// globals shared between systems.
func (w *World) Resources() *Resources {
	return &w.resources
}

// SetEvents attaches an event bus. Once attached, the world publishes
// EntityCreated, EntityRemoved, ComponentAdded and ComponentRemoved
// synchronously from within its mutating operations. Pass nil to
// detach.
func (w *World) SetEvents(bus *EventBus) {
	w.events = bus
}

// MakeEntity creates a new entity and attaches a copy of every
// template, in order. Templates are read, never retained. It returns
// the new entity's handle.
func (w *World) MakeEntity(templates ...Component) EntityHandle {
	h := EntityHandle{w.handles.next()}
	ent := &Entity{handle: h}
	w.entities[h] = ent
	if w.events != nil {
		Publish(w.events, EntityCreated{Entity: h})
	}
	for _, tpl := range templates {
		w.makeComponent(ent, tpl)
	}
	return h
}

// MakeComponent attaches a copy of the template to the entity. The
// component type is resolved from the template's dynamic type. If the
// entity already has a component of that type, the existing handle is
// returned and nothing is copied. An invalid (zero) handle is returned
// when the entity does not resolve or the type is unregistered.
func (w *World) MakeComponent(entityHandle EntityHandle, tpl Component) ComponentHandle {
	ent := w.GetEntity(entityHandle)
	if ent == nil {
		return ComponentHandle{}
	}
	return w.makeComponent(ent, tpl)
}

func (w *World) makeComponent(ent *Entity, tpl Component) ComponentHandle {
	id, ok := idOfTemplate(tpl)
	if !ok {
		return ComponentHandle{}
	}
	return w.placeComponent(ent, id, templateData(tpl))
}

// AddComponent attaches a default-constructed component of type C to
// the entity, exercising the registry's nil-template path. It returns
// the component's handle (the existing one on duplicate add) and true,
// or a zero handle and false when the entity does not resolve or C is
// not registered.
func AddComponent[C any](w *World, entityHandle EntityHandle) (ComponentHandle, bool) {
	ent := w.GetEntity(entityHandle)
	if ent == nil {
		return ComponentHandle{}, false
	}
	id, ok := TryGetID[C]()
	if !ok {
		return ComponentHandle{}, false
	}
	return w.placeComponent(ent, id, nil), true
}

// placeComponent runs the registry's create for id against the entity,
// honoring the duplicate-add rule.
func (w *World) placeComponent(ent *Entity, id ComponentID, tpl unsafe.Pointer) ComponentHandle {
	if !IsValidID(id) {
		return ComponentHandle{}
	}
	if m, ok := ent.find(id); ok {
		return m.handle
	}

	ch := ComponentHandle{w.handles.next()}
	dsc := &registry[id]
	arena, offset := dsc.create(w.components[id], ch, ent.handle, tpl)
	w.components[id] = arena
	ent.members = append(ent.members, member{id: id, offset: offset, handle: ch})
	w.compIndex[ch] = location{entity: ent.handle, id: id, offset: offset}
	if w.events != nil {
		Publish(w.events, ComponentAdded{Entity: ent.handle, Component: ch, ID: id})
	}
	return ch
}

// RemoveEntity destroys every component attached to the entity, then
// removes the entity record. It returns false if the handle does not
// resolve.
func (w *World) RemoveEntity(entityHandle EntityHandle) bool {
	ent := w.GetEntity(entityHandle)
	if ent == nil {
		return false
	}
	for _, m := range ent.members {
		w.deleteComponent(m.id, m.offset)
		delete(w.compIndex, m.handle)
		if w.events != nil {
			Publish(w.events, ComponentRemoved{Entity: ent.handle, Component: m.handle, ID: m.id})
		}
	}
	ent.members = nil
	delete(w.entities, ent.handle)
	if w.events != nil {
		Publish(w.events, EntityRemoved{Entity: ent.handle})
	}
	return true
}

// RemoveComponent destroys the component with the given handle and
// detaches it from its entity. It returns false if the handle does not
// resolve to a live component.
func (w *World) RemoveComponent(componentHandle ComponentHandle) bool {
	loc, ok := w.compIndex[componentHandle]
	if !ok {
		return false
	}
	return w.removeMember(w.entities[loc.entity], loc.id)
}

// RemoveEntityComponent destroys the entity's component of the given
// type. It returns false if the entity does not resolve or has no such
// component.
func (w *World) RemoveEntityComponent(entityHandle EntityHandle, id ComponentID) bool {
	ent := w.GetEntity(entityHandle)
	if ent == nil {
		return false
	}
	return w.removeMember(ent, id)
}

func (w *World) removeMember(ent *Entity, id ComponentID) bool {
	for i := range ent.members {
		if ent.members[i].id != id {
			continue
		}
		m := ent.members[i]
		w.deleteComponent(m.id, m.offset)
		// swap-with-last, pop
		last := len(ent.members) - 1
		ent.members[i] = ent.members[last]
		ent.members = ent.members[:last]
		delete(w.compIndex, m.handle)
		if w.events != nil {
			Publish(w.events, ComponentRemoved{Entity: ent.handle, Component: m.handle, ID: m.id})
		}
		return true
	}
	return false
}

// deleteComponent is the arena-level swap-remove. It destroys the slot
// at offset, moves the arena's last slot down into it, repairs the
// moved component's member triple and reverse-index entry, and
// truncates the arena. Components are trivially relocatable, so the
// move is a plain byte copy.
func (w *World) deleteComponent(id ComponentID, offset int) {
	dsc := &registry[id]
	sz := int(dsc.size)
	arena := w.components[id]
	last := len(arena) - sz

	dst := unsafe.Pointer(&arena[offset])
	if dsc.destroy != nil {
		dsc.destroy(dst)
	}
	if offset != last {
		src := unsafe.Pointer(&arena[last])
		memCopy(dst, src, dsc.size)

		moved := (*Meta)(dst)
		loc := w.compIndex[moved.Handle]
		loc.offset = offset
		w.compIndex[moved.Handle] = loc

		// Exactly one member triple referenced the old tail slot.
		if owner := w.entities[moved.Owner]; owner != nil {
			for i := range owner.members {
				if owner.members[i].id == id && owner.members[i].offset == last {
					owner.members[i].offset = offset
					break
				}
			}
		}
	}
	w.components[id] = arena[:last]
}

// GetEntity resolves an entity handle, returning nil for an invalid or
// unknown handle.
func (w *World) GetEntity(entityHandle EntityHandle) *Entity {
	if !entityHandle.IsValid() {
		return nil
	}
	return w.entities[entityHandle]
}

// GetEntities resolves a batch of handles. Handles that do not resolve
// are omitted, so the result may be shorter than the input.
func (w *World) GetEntities(handles []EntityHandle) []*Entity {
	entities := make([]*Entity, 0, len(handles))
	for _, h := range handles {
		if ent := w.GetEntity(h); ent != nil {
			entities = append(entities, ent)
		}
	}
	return entities
}

// GetComponent returns the entity's component of the given type as its
// stored Meta header, or nil. Use As to view it as the concrete type.
func (w *World) GetComponent(entityHandle EntityHandle, id ComponentID) *Meta {
	ent := w.GetEntity(entityHandle)
	if ent == nil {
		return nil
	}
	m, ok := ent.find(id)
	if !ok {
		return nil
	}
	return w.metaAt(id, m.offset)
}

// GetComponentByHandle resolves a component handle to its live storage,
// or nil.
func (w *World) GetComponentByHandle(componentHandle ComponentHandle) *Meta {
	if !componentHandle.IsValid() {
		return nil
	}
	loc, ok := w.compIndex[componentHandle]
	if !ok {
		return nil
	}
	return w.metaAt(loc.id, loc.offset)
}

func (w *World) metaAt(id ComponentID, offset int) *Meta {
	arena := w.components[id]
	return (*Meta)(unsafe.Pointer(&arena[offset]))
}

// Get returns a typed pointer to the entity's component of type C, or
// nil.
func Get[C any](w *World, entityHandle EntityHandle) *C {
	id, ok := TryGetID[C]()
	if !ok {
		return nil
	}
	m := w.GetComponent(entityHandle, id)
	if m == nil {
		return nil
	}
	return (*C)(unsafe.Pointer(m))
}

// As views a component's stored Meta header as its concrete type. The
// header is the first field of every component, so the addresses
// coincide.
func As[C any](m *Meta) *C {
	return (*C)(unsafe.Pointer(m))
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.entities)
}

// CountComponents returns the number of live components of one type.
func (w *World) CountComponents(id ComponentID) int {
	if !IsValidID(id) {
		return 0
	}
	return len(w.components[id]) / int(registry[id].size)
}

// Clear destroys every component, then drops all entities and arenas.
// The world is reusable afterwards; its handle generator keeps running.
func (w *World) Clear() {
	for id, arena := range w.components {
		dsc := &registry[id]
		if dsc.destroy == nil {
			continue
		}
		sz := int(dsc.size)
		for offset := 0; offset < len(arena); offset += sz {
			dsc.destroy(unsafe.Pointer(&arena[offset]))
		}
	}
	w.components = make(map[ComponentID][]byte)
	w.entities = make(map[EntityHandle]*Entity)
	w.compIndex = make(map[ComponentHandle]location)
}

// memCopy copies size bytes from src to dst.
func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}
