package builtin

import "slices"

// Reverse flips the order of the whole batch (-r).
type Reverse struct{}

func (Reverse) Apply(in []string) []string {
	slices.Reverse(in)
	return in
}
