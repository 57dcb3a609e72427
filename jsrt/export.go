package jsrt

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Export decodes v into plain Go values independently of how it was built:
// undefined and null become nil, booleans bool, numbers float64, strings
// string, arrays []any and objects an ordered map that keeps property
// enumeration order.
func (e *Env) Export(v Value) (any, error) {
	s, err := e.slotOf(v)
	if err != nil {
		return nil, err
	}

	switch s.typ {
	case TypeUndefined, TypeNull:
		return nil, nil
	case TypeBoolean:
		return s.b, nil
	case TypeNumber:
		return s.n, nil
	case TypeString:
		return s.s, nil
	case TypeArray:
		out := make([]any, len(s.arr))
		for i, elem := range s.arr {
			x, err := e.Export(elem)
			if err != nil {
				return nil, err
			}

			out[i] = x
		}

		return out, nil
	case TypeObject:
		out := orderedmap.New[string, any](s.obj.props.Len())
		for pair := s.obj.props.Oldest(); pair != nil; pair = pair.Next() {
			x, err := e.Export(pair.Value)
			if err != nil {
				return nil, err
			}

			out.Set(pair.Key, x)
		}

		return out, nil
	default:
		return nil, newError(KindInvalidHandle, "handle %d", v)
	}
}

// ExportJSON renders v as JSON with object properties in enumeration order.
func (e *Env) ExportJSON(v Value) ([]byte, error) {
	x, err := e.Export(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(x)
}
