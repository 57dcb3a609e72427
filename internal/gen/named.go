package gen

import (
	"fmt"
	"strconv"

	"jsderive/internal/analyze"
)

// namedImpl builds the object-building method of a named shape: one
// property set per field, in declaration order, then a finalize.
func namedImpl(shape *analyze.Shape, rt string) implData {
	n := shapeNamer(shape, rt)

	impl := implData{
		Name:      shape.Name,
		RT:        rt,
		Named:     true,
		signature: newSignature(shape.Name, shape.Generics),
		Recv:      n.pick("s"),
		Env:       n.pick("env"),
		Err:       n.pick("err"),
		Handle:    n.pick("handle"),
		Obj:       n.pick("obj"),
		Len:       len(shape.Fields),
	}

	for i, f := range shape.Fields {
		impl.Steps = append(impl.Steps, stepData{
			Temp:  n.pick(fmt.Sprintf("v%d", i)),
			Value: fieldValue(rt, impl.Recv, f),
			Key:   strconv.Quote(f.Key),
		})
	}

	return impl
}

// fieldValue reads a field for conversion. Reference fields share storage
// with the receiver and are deep-cloned first.
func fieldValue(rt, recv string, f analyze.Field) string {
	access := recv + "." + f.Name
	if f.Kind == analyze.ByReference {
		return rt + ".Clone(" + access + ")"
	}

	return access
}

// shapeNamer reserves every identifier the method body can see: the type
// parameters, the runtime package and the type itself.
func shapeNamer(shape *analyze.Shape, rt string) *namer {
	n := newNamer(shape.Generics.Names()...)
	n.reserve(rt, shape.Name)

	return n
}
