package miniecs

// System is a stateless transformation over component tuples. A system
// declares the signature it consumes and receives the matching tuples
// each tick. Systems run synchronously on the caller's goroutine and
// must not mutate the world during Update.
type System interface {
	// Signature returns the component terms the system consumes, with
	// at least one Required term.
	Signature() Signature
	// Update ticks the system with the tuples matched this frame.
	Update(dt float64, matches [][]*Meta)
}

// SystemList is an ordered collection of systems.
type SystemList struct {
	systems []System
}

// Add appends a system. A system whose signature has no Required term
// is rejected and false is returned.
func (l *SystemList) Add(s System) bool {
	if s == nil || !s.Signature().hasRequired() {
		return false
	}
	l.systems = append(l.systems, s)
	return true
}

// Remove drops the first occurrence of s, reporting whether it was
// present.
func (l *SystemList) Remove(s System) bool {
	for i, have := range l.systems {
		if have == s {
			l.systems = append(l.systems[:i], l.systems[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of systems in the list.
func (l *SystemList) Len() int {
	return len(l.systems)
}

// At returns the system at index i.
func (l *SystemList) At(i int) System {
	return l.systems[i]
}

// UpdateSystems ticks every system in the list, in order.
func (w *World) UpdateSystems(list *SystemList, dt float64) {
	for _, s := range list.systems {
		w.UpdateSystem(s, dt)
	}
}

// UpdateSystem matches one system's signature against the world and
// invokes it. Systems with no matching entities are not invoked.
func (w *World) UpdateSystem(s System, dt float64) {
	if matches := w.GetRelevant(s.Signature()); len(matches) > 0 {
		s.Update(dt, matches)
	}
}

// UpdateSystemFunc runs a single-shot system from a plain function,
// without declaring a System type.
func (w *World) UpdateSystemFunc(dt float64, sig Signature, fn func(dt float64, matches [][]*Meta)) {
	if matches := w.GetRelevant(sig); len(matches) > 0 {
		fn(dt, matches)
	}
}
