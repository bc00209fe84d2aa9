package store

import "reflect"

// idSet is a set of identifiers compared with ==.
type idSet map[any]struct{}

// newIDSet flattens idOrIds into a set. A slice contributes its elements;
// anything else, arrays such as uuid.UUID included, is a single identifier.
// Nil and non-comparable values are dropped since they can never match.
func newIDSet(idOrIds any) idSet {
	set := make(idSet)
	if idOrIds == nil {
		return set
	}

	rv := reflect.ValueOf(idOrIds)
	switch rv.Kind() {
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			set.add(rv.Index(i).Interface())
		}
	default:
		set.add(idOrIds)
	}
	return set
}

func (s idSet) add(id any) {
	if ValidID(id) {
		s[id] = struct{}{}
	}
}

func (s idSet) has(id any) bool {
	if !ValidID(id) {
		return false
	}
	_, ok := s[id]
	return ok
}

// ValidID reports whether id can identify an entity: it must be non-nil and
// comparable with ==.
func ValidID(id any) bool {
	return id != nil && reflect.TypeOf(id).Comparable()
}
