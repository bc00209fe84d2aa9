// Package field resolves named attributes on entity values.
//
// Attribute names follow the attributevalue convention: the first segment of
// the `dynamodbav` struct tag, or the Go field name when no tag is present.
package field

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

const tagKey = "dynamodbav"

// indexCache maps reflect.Type to map[string][]int.
var indexCache sync.Map

// Lookup returns the attribute called name on v.
// Pointers and interfaces are dereferenced. Structs resolve exported fields,
// maps with a string-kinded key are indexed directly.
func Lookup(v any, name string) (any, bool) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Struct:
		idx, ok := fieldIndex(rv.Type())[name]
		if !ok {
			return nil, false
		}
		fv, err := rv.FieldByIndexErr(idx)
		if err != nil {
			// nil embedded pointer
			return nil, false
		}
		return fv.Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	}
	return nil, false
}

// Merge returns a copy of v with every patch attribute set.
// Maps are cloned key by key. On structs only the fields named by the patch
// are written; every other field, exported or not, is copied as is. Patch keys
// resolve exactly like Lookup and an unknown key is an error. The result has
// the same dynamic type as v.
func Merge(v any, patch map[string]any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("merge: nil value")
	}

	if rv.Kind() == reflect.Map {
		return mergeMap(rv, patch)
	}

	base := rv
	if base.Kind() == reflect.Pointer {
		if base.IsNil() {
			return nil, fmt.Errorf("merge: nil %s", rv.Type())
		}
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return nil, fmt.Errorf("merge: unsupported kind %s", rv.Kind())
	}

	out := reflect.New(base.Type())
	out.Elem().Set(base)

	index := fieldIndex(base.Type())
	for k, val := range patch {
		idx, ok := index[k]
		if !ok {
			return nil, fmt.Errorf("merge: unknown attribute %q on %s", k, base.Type())
		}
		fv, err := settableField(out.Elem(), idx)
		if err != nil {
			return nil, fmt.Errorf("merge: %q: %w", k, err)
		}
		pv, err := valueFor(val, fv.Type())
		if err != nil {
			return nil, fmt.Errorf("merge: %q: %w", k, err)
		}
		fv.Set(pv)
	}

	if rv.Kind() == reflect.Pointer {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}

// settableField walks index from root, cloning embedded pointers on the way
// so the source value is never written through.
func settableField(root reflect.Value, index []int) (reflect.Value, error) {
	v := root
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if !v.CanSet() {
				return reflect.Value{}, fmt.Errorf("cannot set through embedded %s", v.Type())
			}
			clone := reflect.New(v.Type().Elem())
			if !v.IsNil() {
				clone.Elem().Set(v.Elem())
			}
			v.Set(clone)
			v = clone.Elem()
		}
		v = v.Field(x)
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("field is not settable")
	}
	return v, nil
}

// valueFor converts a patch value to t. Assignable and numeric values are used
// directly; anything else goes through attributevalue.
func valueFor(val any, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(t), nil
	}
	pv := reflect.ValueOf(val)
	switch {
	case pv.Type().AssignableTo(t):
		return pv, nil
	case sameFamily(pv.Kind(), t.Kind()) && pv.Type().ConvertibleTo(t):
		return pv.Convert(t), nil
	}

	av, err := attributevalue.Marshal(val)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("marshal: %w", err)
	}
	out := reflect.New(t)
	if err := attributevalue.Unmarshal(av, out.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("unmarshal: %w", err)
	}
	return out.Elem(), nil
}

func mergeMap(rv reflect.Value, patch map[string]any) (any, error) {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return nil, fmt.Errorf("merge: map key must be a string, got %s", t.Key())
	}

	out := reflect.MakeMapWithSize(t, rv.Len()+len(patch))
	iter := rv.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}

	elem := t.Elem()
	for k, val := range patch {
		key := reflect.ValueOf(k).Convert(t.Key())
		pv, err := valueFor(val, elem)
		if err != nil {
			return nil, fmt.Errorf("merge: %q: %w", k, err)
		}
		out.SetMapIndex(key, pv)
	}
	return out.Interface(), nil
}

// fieldIndex returns the attribute name to field index mapping for t.
func fieldIndex(t reflect.Type) map[string][]int {
	if cached, ok := indexCache.Load(t); ok {
		return cached.(map[string][]int)
	}

	index := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(tagKey); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		} else if f.Anonymous && indirectType(f.Type).Kind() == reflect.Struct {
			// promoted fields are listed separately
			continue
		}
		// shallower fields shadow deeper ones
		if prev, ok := index[name]; ok && len(prev) <= len(f.Index) {
			continue
		}
		index[name] = f.Index
	}

	actual, _ := indexCache.LoadOrStore(t, index)
	return actual.(map[string][]int)
}

// sameFamily reports whether a value of kind src may be converted to dst
// without changing its meaning (no int to string rune conversion).
func sameFamily(src, dst reflect.Kind) bool {
	numeric := func(k reflect.Kind) bool {
		return k >= reflect.Int && k <= reflect.Float64
	}
	if numeric(src) && numeric(dst) {
		return true
	}
	return src == dst
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
