package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jsderive/internal/analyze"
)

func TestSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     []analyze.TypeParam
		instance   string
		typeParams string
	}{
		{
			name:     "no generics",
			instance: "Wrapper",
		},
		{
			name:       "single bounded parameter",
			params:     []analyze.TypeParam{{Name: "T", Constraint: "fmt.Stringer"}},
			instance:   "Wrapper[T]",
			typeParams: "T fmt.Stringer",
		},
		{
			name: "mixed bounds",
			params: []analyze.TypeParam{
				{Name: "K", Constraint: "comparable"},
				{Name: "V", Constraint: "any"},
				{Name: "N", Constraint: "~int | ~int64"},
			},
			instance:   "Wrapper[K, V, N]",
			typeParams: "K comparable, V any, N ~int | ~int64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig := newSignature("Wrapper", analyze.Generics{Params: tt.params})
			assert.Equal(t, tt.instance, sig.Instance)
			assert.Equal(t, tt.typeParams, sig.TypeParams)
			assert.Equal(t, len(tt.params) > 0, sig.Generic())
			assert.NotContains(t, sig.Instance, " any")
		})
	}
}

func TestNamer(t *testing.T) {
	t.Parallel()

	n := newNamer("s", "s1", "env")

	assert.Equal(t, "s2", n.pick("s"))
	assert.Equal(t, "env1", n.pick("env"))
	assert.Equal(t, "err", n.pick("err"))
	assert.Equal(t, "err1", n.pick("err"))

	n.reserve("v0")
	assert.Equal(t, "v01", n.pick("v0"))
}
