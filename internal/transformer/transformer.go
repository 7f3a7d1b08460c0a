// Package transformer defines line-level stages that run around the ordering
// step: trimming before it, de-duplication and reversal after it.
package transformer

// Transformer rewrites a batch of lines. Implementations may reuse the input
// slice and return a shorter one.
type Transformer interface{ Apply([]string) []string }

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []string) []string {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
