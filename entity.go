package miniecs

// member records one component attached to an entity: the component's
// type, its byte offset in that type's arena, and its handle. An entity
// never holds two members with the same ComponentID.
type member struct {
	id     ComponentID
	offset int
	handle ComponentHandle
}

// Entity is an identity plus the unordered set of components attached
// to it. It carries no data of its own.
type Entity struct {
	handle  EntityHandle
	members []member
}

// Handle returns the entity's handle.
func (e *Entity) Handle() EntityHandle {
	return e.handle
}

// Len returns the number of components attached to the entity.
func (e *Entity) Len() int {
	return len(e.members)
}

// Has reports whether the entity has a component of the given type.
func (e *Entity) Has(id ComponentID) bool {
	_, ok := e.find(id)
	return ok
}

// HandleOf returns the handle of the entity's component of the given
// type, if present.
func (e *Entity) HandleOf(id ComponentID) (ComponentHandle, bool) {
	if m, ok := e.find(id); ok {
		return m.handle, true
	}
	return ComponentHandle{}, false
}

func (e *Entity) find(id ComponentID) (*member, bool) {
	for i := range e.members {
		if e.members[i].id == id {
			return &e.members[i], true
		}
	}
	return nil, false
}
