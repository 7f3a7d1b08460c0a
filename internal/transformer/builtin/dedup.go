package builtin

// DedupAdjacent collapses runs of identical neighbouring lines into one (-u).
// Equal lines that are not adjacent are kept, so it only yields unique output
// when run after sorting.
type DedupAdjacent struct{}

func (DedupAdjacent) Apply(in []string) []string {
	if len(in) < 2 {
		return in
	}
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
