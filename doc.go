// Package miniecs implements a small handle-based Entity Component
// System: entities are pure identities, components are fixed-size
// values packed per-type in contiguous arenas, and systems are
// stateless transformations over tuples of co-located components.
//
// Features:
// - Process-wide component registry with per-type create/destroy vtables.
// - Packed byte arenas with swap-remove compaction and back-patched
//   entity references.
// - Stable 32-byte handles for entities and components, with an O(1)
//   reverse component index.
// - A signature matcher that pivots on the rarest required component.
// - An ordered system list driven by World.UpdateSystems.
package miniecs
