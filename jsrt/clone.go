package jsrt

import "reflect"

// Cloner is implemented by types that know how to copy themselves. Clone
// prefers it over copying by reflection.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns a copy of v that a conversion may consume without touching
// the original. Generated conversions clone pointer, slice and map fields
// before converting them.
//
// A pointer gets a fresh target holding a copy of the pointed-to value,
// unexported fields included. Slices and maps get fresh storage holding the
// same elements, and arrays have every element cloned the same way. Anything
// reachable beyond that first level stays shared with the original. Nil
// values are returned as is.
func Clone[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	if isNil(rv) {
		return v
	}

	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}

	var out T
	reflect.ValueOf(&out).Elem().Set(cloneValue(rv))

	return out
}

func cloneValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}

		cp := reflect.New(rv.Type().Elem())
		cp.Elem().Set(rv.Elem())

		return cp
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}

		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)

		return cp
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}

		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}

		return cp
	case reflect.Array:
		cp := reflect.New(rv.Type()).Elem()
		for i := range rv.Len() {
			cp.Index(i).Set(cloneValue(rv.Index(i)))
		}

		return cp
	default:
		return rv
	}
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
