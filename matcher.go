package miniecs

import "unsafe"

// Flag marks a signature term as required or optional.
type Flag uint8

const (
	// Required terms must be present on an entity for it to match.
	Required Flag = iota
	// Optional terms are filled when present and nil when absent.
	Optional
)

// Term is one position of a system signature.
type Term struct {
	ID   ComponentID
	Flag Flag
}

// Signature describes the component tuple a system consumes, in order.
type Signature []Term

// hasRequired reports whether at least one term is Required.
func (s Signature) hasRequired() bool {
	for _, t := range s {
		if t.Flag == Required {
			return true
		}
	}
	return false
}

// GetRelevant returns one component tuple per entity that owns every
// Required term of the signature. Tuple positions correspond to
// signature positions; Optional positions are nil when the entity lacks
// that component. Pointers are borrowed and are invalidated by the next
// mutation of any involved component type.
func (w *World) GetRelevant(sig Signature) [][]*Meta {
	if len(sig) == 0 {
		return nil
	}

	// Single-term signatures walk the arena directly in slot order.
	if len(sig) == 1 {
		id := sig[0].ID
		if !IsValidID(id) {
			return nil
		}
		arena := w.components[id]
		sz := int(registry[id].size)
		rows := make([][]*Meta, 0, len(arena)/sz)
		for offset := 0; offset < len(arena); offset += sz {
			rows = append(rows, []*Meta{(*Meta)(unsafe.Pointer(&arena[offset]))})
		}
		return rows
	}

	for _, t := range sig {
		if !IsValidID(t.ID) {
			return nil
		}
	}

	pivot, ok := w.pivotIndex(sig)
	if !ok {
		return nil
	}
	pivotID := sig[pivot].ID
	arena := w.components[pivotID]
	sz := int(registry[pivotID].size)
	rows := make([][]*Meta, 0, len(arena)/sz)

	for offset := 0; offset < len(arena); offset += sz {
		pivotMeta := (*Meta)(unsafe.Pointer(&arena[offset]))
		ent := w.entities[pivotMeta.Owner]
		if ent == nil {
			continue
		}
		row := make([]*Meta, len(sig))
		row[pivot] = pivotMeta
		matched := true
		for j, t := range sig {
			if j == pivot {
				continue
			}
			if m, found := ent.find(t.ID); found {
				row[j] = w.metaAt(t.ID, m.offset)
			} else if t.Flag == Required {
				matched = false
				break
			}
		}
		if matched {
			rows = append(rows, row)
		}
	}
	return rows
}

// pivotIndex picks the Required term whose arena holds the fewest live
// components, so the outer scan is bounded by the rarest population.
// Ties go to the earliest required term in the signature.
func (w *World) pivotIndex(sig Signature) (int, bool) {
	best := -1
	bestCount := 0
	for j, t := range sig {
		if t.Flag != Required {
			continue
		}
		count := len(w.components[t.ID]) / int(registry[t.ID].size)
		if best == -1 || count < bestCount {
			best = j
			bestCount = count
		}
	}
	return best, best >= 0
}
