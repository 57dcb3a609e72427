package gen

import (
	"fmt"

	"jsderive/internal/analyze"
)

// positionalImpl builds the array-building method of an unnamed shape. The
// array length is fixed at generation time and element i is field i.
func positionalImpl(shape *analyze.Shape, rt string) implData {
	n := shapeNamer(shape, rt)

	impl := implData{
		Name:      shape.Name,
		RT:        rt,
		signature: newSignature(shape.Name, shape.Generics),
		Recv:      n.pick("s"),
		Env:       n.pick("env"),
		Err:       n.pick("err"),
		Arr:       n.pick("arr"),
		Len:       len(shape.Fields),
	}

	for i, f := range shape.Fields {
		impl.Steps = append(impl.Steps, stepData{
			Temp:  n.pick(fmt.Sprintf("e%d", i)),
			Value: fieldValue(rt, impl.Recv, f),
			Index: i,
		})
	}

	return impl
}
