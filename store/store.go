package store

import (
	"fmt"

	"github.com/jacentio/entitystore/internal/field"
)

// EntityStore holds a normalized entity list and optional pagination.
type EntityStore[E any] struct {
	options Options
	state   *State[E]
}

// New creates a new EntityStore.
// A nil initial state starts the store empty with no pagination.
func New[E any](initial *State[E], opts ...Option) (*EntityStore[E], error) {
	options, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &EntityStore[E]{options: options}
	s.state = &State[E]{Entities: []E{}}
	if initial != nil {
		s.state = &State[E]{
			Entities:   s.normalize(initial.Entities),
			Pagination: initial.Pagination.clone(),
		}
	}
	return s, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew[E any](initial *State[E], opts ...Option) *EntityStore[E] {
	s, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Options returns the resolved store options.
func (s *EntityStore[E]) Options() Options {
	return s.options
}

// Snapshot returns the current state. The same pointer is returned until the
// next mutation; callers must not modify it.
func (s *EntityStore[E]) Snapshot() *State[E] {
	return s.state
}

// Initialize replaces the entities and pagination wholesale.
func (s *EntityStore[E]) Initialize(entities []E, pagination *Pagination) {
	s.state = &State[E]{
		Entities:   s.normalize(entities),
		Pagination: pagination.clone(),
	}
}

// TrackBy returns the entity identifier, independent of index.
func (s *EntityStore[E]) TrackBy(index int, entity E) any {
	return s.IDOf(entity)
}

// IDOf returns the identifier of entity, or nil if it has none.
func (s *EntityStore[E]) IDOf(entity E) any {
	id, _ := field.Lookup(entity, s.options.IDKey)
	return id
}

// Len returns the number of entities.
func (s *EntityStore[E]) Len() int {
	return len(s.state.Entities)
}

// Get returns the entity with the given identifier.
func (s *EntityStore[E]) Get(id any) (E, bool) {
	if i := s.indexOf(s.state.Entities, id); i >= 0 {
		return s.state.Entities[i], true
	}
	var zero E
	return zero, false
}

// Has reports whether an entity with the given identifier exists.
func (s *EntityStore[E]) Has(id any) bool {
	return s.indexOf(s.state.Entities, id) >= 0
}

// Add appends entities to the end of the list.
func (s *EntityStore[E]) Add(entities ...E) {
	s.AddWithOptions(AddOptions{}, entities...)
}

// AddWithOptions inserts entities at the position described by opts.
// Entities whose identifier is already present, or missing, are skipped.
// Pagination is left unchanged.
func (s *EntityStore[E]) AddWithOptions(opts AddOptions, entities ...E) {
	cur := s.state.Entities
	seen := s.idsOf(cur)

	added := make([]E, 0, len(entities))
	for _, e := range entities {
		id := s.IDOf(e)
		if !ValidID(id) || seen.has(id) {
			continue
		}
		seen.add(id)
		added = append(added, e)
	}
	if len(added) == 0 {
		return
	}

	pos := len(cur)
	if opts.Prepend {
		pos = 0
	}
	if opts.AfterID != nil {
		if i := s.indexOf(cur, opts.AfterID); i >= 0 {
			pos = i + 1
		}
	}

	next := make([]E, 0, len(cur)+len(added))
	next = append(next, cur[:pos]...)
	next = append(next, added...)
	next = append(next, cur[pos:]...)

	s.state = &State[E]{Entities: next, Pagination: s.state.Pagination}
}

// Upsert replaces entities with a matching identifier in place and appends
// the rest. Later duplicates in entities win.
func (s *EntityStore[E]) Upsert(entities ...E) {
	if len(entities) == 0 {
		return
	}

	next := make([]E, len(s.state.Entities), len(s.state.Entities)+len(entities))
	copy(next, s.state.Entities)

	changed := false
	for _, e := range entities {
		id := s.IDOf(e)
		if !ValidID(id) {
			continue
		}
		if i := s.indexOf(next, id); i >= 0 {
			next[i] = e
		} else {
			next = append(next, e)
		}
		changed = true
	}
	if !changed {
		return
	}

	s.state = &State[E]{Entities: next, Pagination: s.state.Pagination}
}

// Remove removes the entities matching a single identifier or a slice of
// identifiers. Unknown identifiers are ignored.
func (s *EntityStore[E]) Remove(idOrIds any) {
	targets := newIDSet(idOrIds)
	if len(targets) == 0 {
		return
	}
	s.removeWhere(func(e E) bool {
		return targets.has(s.IDOf(e))
	})
}

// RemoveFunc removes every entity for which pred returns true.
func (s *EntityStore[E]) RemoveFunc(pred func(E) bool) {
	if pred == nil {
		return
	}
	s.removeWhere(pred)
}

func (s *EntityStore[E]) removeWhere(match func(E) bool) {
	cur := s.state.Entities
	kept := make([]E, 0, len(cur))
	for _, e := range cur {
		if !match(e) {
			kept = append(kept, e)
		}
	}

	removed := len(cur) - len(kept)
	if removed == 0 {
		return
	}

	s.state = &State[E]{
		Entities:   kept,
		Pagination: s.state.Pagination.afterRemove(removed),
	}
}

// Update shallow-merges patch onto every entity matching idOrIds.
// It fails only when the patch cannot be applied to the entity type, in which
// case the state is left unchanged.
func (s *EntityStore[E]) Update(idOrIds any, patch Patch) error {
	return s.replace(idOrIds, func(e E) (E, error) {
		merged, err := field.Merge(e, patch)
		if err != nil {
			var zero E
			return zero, fmt.Errorf("update %v: %w", s.IDOf(e), err)
		}
		return merged.(E), nil
	})
}

// UpdateFunc replaces every entity matching idOrIds with fn(entity).
func (s *EntityStore[E]) UpdateFunc(idOrIds any, fn func(E) E) {
	if fn == nil {
		return
	}
	_ = s.replace(idOrIds, func(e E) (E, error) {
		return fn(e), nil
	})
}

// replace swaps matched entities for their replacements. A replacement that
// would change the identifier to one already in use is discarded.
func (s *EntityStore[E]) replace(idOrIds any, fn func(E) (E, error)) error {
	targets := newIDSet(idOrIds)
	if len(targets) == 0 {
		return nil
	}

	cur := s.state.Entities
	used := s.idsOf(cur)
	next := make([]E, len(cur))
	copy(next, cur)

	matched := false
	for i, e := range cur {
		id := s.IDOf(e)
		if !targets.has(id) {
			continue
		}
		repl, err := fn(e)
		if err != nil {
			return err
		}
		if newID := s.IDOf(repl); !ValidID(newID) || newID != id {
			if !ValidID(newID) || used.has(newID) {
				continue
			}
			delete(used, id)
			used.add(newID)
		}
		next[i] = repl
		matched = true
	}
	if !matched {
		return nil
	}

	s.state = &State[E]{Entities: next, Pagination: s.state.Pagination}
	return nil
}

// Clear removes all entities and the pagination.
func (s *EntityStore[E]) Clear() {
	s.state = &State[E]{Entities: []E{}}
}

// ClearPagination drops the pagination and keeps the entities.
func (s *EntityStore[E]) ClearPagination() {
	s.state = &State[E]{Entities: s.state.Entities}
}

// normalize copies entities, dropping those without an identifier and
// repeated identifiers after the first.
func (s *EntityStore[E]) normalize(entities []E) []E {
	out := make([]E, 0, len(entities))
	seen := make(idSet, len(entities))
	for _, e := range entities {
		id := s.IDOf(e)
		if !ValidID(id) || seen.has(id) {
			continue
		}
		seen.add(id)
		out = append(out, e)
	}
	return out
}

func (s *EntityStore[E]) idsOf(entities []E) idSet {
	set := make(idSet, len(entities))
	for _, e := range entities {
		set.add(s.IDOf(e))
	}
	return set
}

func (s *EntityStore[E]) indexOf(entities []E, id any) int {
	if !ValidID(id) {
		return -1
	}
	for i, e := range entities {
		if s.IDOf(e) == id {
			return i
		}
	}
	return -1
}
