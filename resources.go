package miniecs

import "reflect"

// Resources is a type-keyed store for singletons shared between
// systems: configuration, asset caches, score boards. At most one
// value per type may be present at a time.
type Resources struct {
	items map[reflect.Type]any
}

// Add stores a resource, keyed by its dynamic type. It panics if a
// resource of the same type is already present or if res is nil.
func (r *Resources) Add(res any) {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	if _, ok := r.items[t]; ok {
		panic("ecs: resource of this type already exists")
	}
	r.items[t] = res
}

// Clear removes all resources.
func (r *Resources) Clear() {
	clear(r.items)
}

// HasResource reports whether a resource of type *T is present.
func HasResource[T any](r *Resources) bool {
	_, ok := r.items[reflect.TypeOf((*T)(nil))]
	return ok
}

// GetResource retrieves the resource of type *T, or nil.
func GetResource[T any](r *Resources) *T {
	if res, ok := r.items[reflect.TypeOf((*T)(nil))]; ok {
		return res.(*T)
	}
	return nil
}

// RemoveResource removes the resource of type *T if present.
func RemoveResource[T any](r *Resources) {
	delete(r.items, reflect.TypeOf((*T)(nil)))
}
