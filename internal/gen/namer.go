package gen

import "strconv"

// namer hands out identifiers that do not collide with reserved names or
// with each other.
type namer struct {
	taken map[string]bool
}

func newNamer(reserved ...string) *namer {
	n := &namer{taken: make(map[string]bool, len(reserved))}
	n.reserve(reserved...)

	return n
}

func (n *namer) reserve(names ...string) {
	for _, name := range names {
		n.taken[name] = true
	}
}

// pick returns base, or base followed by the smallest positive number that
// is still free.
func (n *namer) pick(base string) string {
	name := base
	for i := 1; n.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	n.taken[name] = true

	return name
}
