package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var declared = []string{"Point", "Pointer", "Pair", "User", "UserID", "Labeled"}

func TestRank(t *testing.T) {
	t.Parallel()

	ranked := Rank("Pont", declared)
	require.Len(t, ranked, len(declared))

	assert.Equal(t, "Point", ranked[0].Name)
	assert.InDelta(t, 0.8, ranked[0].Score, 0.001)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_SkipsExactName(t *testing.T) {
	t.Parallel()

	for _, c := range Rank("User", declared) {
		assert.NotEqual(t, "User", c.Name)
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		limit  int
		want   []string
	}{
		{"Pont", 1, []string{"Point"}},
		{"user_id", 3, []string{"UserID", "User"}},
		{"Labelled", 3, []string{"Labeled"}},
		{"Zebra", 3, nil},
		{"Pointe", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Closest(tt.target, declared, tt.limit))
		})
	}
}
