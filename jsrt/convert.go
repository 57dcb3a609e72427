package jsrt

import (
	"reflect"
	"slices"
)

// TryIntoJS is implemented by every type that can turn itself into a Value.
// jsderive generates it for struct types.
type TryIntoJS interface {
	TryToJS(env *Env) (Value, error)
}

// Convert turns v into a Value.
//
// Types implementing TryIntoJS convert themselves. Booleans, strings and
// numbers (including named types over them) become primitives. Nil
// pointers, slices and maps become null; non-nil pointers convert their
// target; slices and arrays become arrays; maps with string keys become
// objects with keys in sorted order. Anything else fails with
// KindNotConvertible.
func Convert[T any](env *Env, v T) (Value, error) {
	return convertAny(env, any(v))
}

func convertAny(env *Env, v any) (Value, error) {
	if v == nil {
		return env.Null(), nil
	}

	if isNilRef(v) {
		return env.Null(), nil
	}

	switch x := v.(type) {
	case Value:
		if env.TypeOf(x) == TypeInvalid {
			return 0, newError(KindInvalidHandle, "handle %d", x)
		}

		return x, nil
	case TryIntoJS:
		return x.TryToJS(env)
	case bool:
		return env.CreateBool(x), nil
	case string:
		return env.CreateString(x)
	case int:
		return env.CreateInt64(int64(x))
	case int8:
		return env.CreateInt64(int64(x))
	case int16:
		return env.CreateInt64(int64(x))
	case int32:
		return env.CreateInt64(int64(x))
	case int64:
		return env.CreateInt64(x)
	case uint:
		return env.CreateUint64(uint64(x))
	case uint8:
		return env.CreateUint64(uint64(x))
	case uint16:
		return env.CreateUint64(uint64(x))
	case uint32:
		return env.CreateUint64(uint64(x))
	case uint64:
		return env.CreateUint64(x)
	case uintptr:
		return env.CreateUint64(uint64(x))
	case float32:
		return env.CreateDouble(float64(x))
	case float64:
		return env.CreateDouble(x)
	}

	return convertReflect(env, reflect.ValueOf(v))
}

func isNilRef(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// convertReflect handles named types over builtin kinds and containers.
func convertReflect(env *Env, rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return env.CreateBool(rv.Bool()), nil
	case reflect.String:
		return env.CreateString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return env.CreateInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return env.CreateUint64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return env.CreateDouble(rv.Float())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return env.Null(), nil
		}

		return convertAny(env, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return convertList(env, rv)
	case reflect.Map:
		return convertMap(env, rv)
	default:
		return 0, newError(KindNotConvertible, "%s does not implement TryIntoJS", rv.Type())
	}
}

func convertList(env *Env, rv reflect.Value) (Value, error) {
	arr, err := env.CreateArrayWithLen(rv.Len())
	if err != nil {
		return 0, err
	}

	for i := range rv.Len() {
		elem, err := convertAny(env, rv.Index(i).Interface())
		if err != nil {
			return 0, err
		}

		if err := env.SetElement(arr, elem, i); err != nil {
			return 0, err
		}
	}

	return arr, nil
}

func convertMap(env *Env, rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return 0, newError(KindNotConvertible, "%s: map keys must be strings", rv.Type())
	}

	keys := make([]string, 0, rv.Len())
	values := make(map[string]reflect.Value, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value()
	}

	slices.Sort(keys)

	handle, err := env.CreateObject()
	if err != nil {
		return 0, err
	}

	obj := NewObject(env, handle)

	for _, k := range keys {
		v, err := convertAny(env, values[k].Interface())
		if err != nil {
			return 0, err
		}

		if err := obj.SetProperty(k, v); err != nil {
			return 0, err
		}
	}

	return obj.TryToJS(env)
}
