package miniecs

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// ComponentID names a registered component type within the process.
// IDs are dense and assigned in registration order starting at 0.
type ComponentID int

// Meta is the header every component type must embed as its first
// field. It carries the component's runtime ID, its own handle, and the
// handle of the entity that owns it. The World fills these in when a
// component is placed into an arena; user code should treat them as
// read-only.
type Meta struct {
	ID     ComponentID
	Handle ComponentHandle
	Owner  EntityHandle
}

func (m *Meta) meta() *Meta { return m }

// Component is implemented by a pointer to any struct that embeds Meta
// as its first field. It is the type of component templates passed to
// MakeEntity and MakeComponent; templates are read, never retained.
type Component interface {
	meta() *Meta
}

// Disposer is the optional in-place destructor hook. If a registered
// component type implements it, the World invokes Dispose before the
// component's arena slot is reclaimed. Dispose must not fail and must
// not touch the World.
type Disposer interface {
	Dispose()
}

// createFunc places one component at the tail of an arena, copying from
// the template (or writing the zero value when tpl is nil), stamps the
// stored Meta, and returns the grown arena plus the slot's byte offset.
type createFunc func(arena []byte, ch ComponentHandle, eh EntityHandle, tpl unsafe.Pointer) ([]byte, int)

// destroyFunc runs a component's destructor in place. The caller owns
// arena compaction.
type destroyFunc func(p unsafe.Pointer)

// descriptor is one component registry entry.
type descriptor struct {
	typ     reflect.Type
	size    uintptr
	create  createFunc
	destroy destroyFunc // nil for trivially destructible types
}

// The registry is process-wide and append-only: entries are never
// removed or reordered, and every World shares it. Registration is
// serialized; lookups after init are unguarded, matching the
// first-use-is-a-happens-before contract.
var (
	registryMu sync.Mutex
	registry   []descriptor
	typeToID   = map[reflect.Type]ComponentID{}
)

var metaType = reflect.TypeOf(Meta{})

// RegisterComponent registers component type C and returns its dense
// ID. Re-registering a type returns the existing ID. C must be a struct
// embedding Meta as its first field and must be trivially relocatable:
// its bytes may be moved with a plain copy, so it must hold no
// self-referential pointers and no identity tied to its address.
func RegisterComponent[C any]() ComponentID {
	var zero C
	t := reflect.TypeOf(zero)
	if t.Kind() != reflect.Struct || t.NumField() == 0 || t.Field(0).Type != metaType {
		panic(fmt.Sprintf("ecs: component %s must embed miniecs.Meta as its first field", t))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if id, ok := typeToID[t]; ok {
		return id
	}

	id := ComponentID(len(registry))
	size := unsafe.Sizeof(zero)

	create := func(arena []byte, ch ComponentHandle, eh EntityHandle, tpl unsafe.Pointer) ([]byte, int) {
		offset := len(arena)
		arena = extendByteSlice(arena, int(size))
		dst := unsafe.Pointer(&arena[offset])
		if tpl != nil {
			*(*C)(dst) = *(*C)(tpl)
		} else {
			*(*C)(dst) = zero
		}
		m := (*Meta)(dst)
		m.ID = id
		m.Handle = ch
		m.Owner = eh
		return arena, offset
	}

	var destroy destroyFunc
	if _, ok := any(&zero).(Disposer); ok {
		destroy = func(p unsafe.Pointer) {
			any((*C)(p)).(Disposer).Dispose()
		}
	}

	registry = append(registry, descriptor{typ: t, size: size, create: create, destroy: destroy})
	typeToID[t] = id
	return id
}

// GetID returns the ComponentID for type C. It panics if C has not been
// registered.
func GetID[C any]() ComponentID {
	var zero C
	t := reflect.TypeOf(zero)
	id, ok := typeToID[t]
	if !ok {
		panic(fmt.Sprintf("ecs: component type %s not registered", t))
	}
	return id
}

// TryGetID returns the ComponentID for type C and whether it was found.
func TryGetID[C any]() (ComponentID, bool) {
	var zero C
	id, ok := typeToID[reflect.TypeOf(zero)]
	return id, ok
}

// IsValidID reports whether id names a registered component type.
func IsValidID(id ComponentID) bool {
	return id >= 0 && int(id) < len(registry)
}

// ResetRegistry clears the global component registry. Intended for
// tests that need a fresh ID space.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
	typeToID = map[reflect.Type]ComponentID{}
}

// idOfTemplate resolves a template's ComponentID from its dynamic type.
func idOfTemplate(tpl Component) (ComponentID, bool) {
	t := reflect.TypeOf(tpl)
	if t == nil || t.Kind() != reflect.Pointer {
		return 0, false
	}
	id, ok := typeToID[t.Elem()]
	return id, ok
}

// templateData returns the template's storage address. Meta is the
// first field, so its address is the struct's address.
func templateData(tpl Component) unsafe.Pointer {
	return unsafe.Pointer(tpl.meta())
}
