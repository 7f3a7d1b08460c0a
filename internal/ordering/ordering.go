// Package ordering implements the four line orderings (lexicographic,
// numeric, month name, suffix-scaled numeric).
//
// Each Mode is one key function over the extracted column. Sort and IsSorted
// are written once on top of that key, so a sequence produced by Sort always
// passes IsSorted for the same Strategy.
package ordering

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/maggun1/sort/internal/keys"
)

// ErrIncomparable is returned when a key has no place in the order. The only
// such key is NaN, which a "NaN" literal produces in the numeric modes.
var ErrIncomparable = errors.New("ordering: incomparable key")

// Strategy orders lines under one Mode and column rule.
type Strategy interface {
	// Mode reports which ordering the strategy implements.
	Mode() Mode

	// Sort reorders lines in place into non-decreasing key order. The sort
	// is not stable: lines with equal keys may end up in any relative order.
	Sort(lines []string) error

	// IsSorted reports whether no adjacent pair strictly decreases (or, with
	// reversed, strictly increases). Equal neighbours are allowed.
	IsSorted(lines []string, reversed bool) (bool, error)
}

// New returns the Strategy for mode, taking keys from col.
func New(mode Mode, col keys.Column) Strategy {
	switch mode {
	case Numeric:
		return byKey[float64]{mode: mode, col: col, value: keys.ParseNumber}
	case MonthName:
		return byKey[int]{mode: mode, col: col, value: keys.MonthRank}
	case SuffixScaled:
		return byKey[float64]{mode: mode, col: col, value: keys.ParseSuffixed}
	default:
		return byKey[string]{mode: Lexicographic, col: col, value: func(s string) string { return s }}
	}
}

type byKey[K cmp.Ordered] struct {
	mode  Mode
	col   keys.Column
	value func(string) K
}

type keyed[K cmp.Ordered] struct {
	key  K
	line string
}

func (s byKey[K]) Mode() Mode { return s.mode }

func (s byKey[K]) key(line string) (K, error) {
	k := s.value(s.col.Extract(line))
	// only NaN is unequal to itself
	if k != k {
		return k, fmt.Errorf("%w: %s key of %q", ErrIncomparable, s.mode, line)
	}
	return k, nil
}

func (s byKey[K]) Sort(lines []string) error {
	if len(lines) < 2 {
		return nil
	}

	// keys are computed once per line, not once per comparison
	ks := make([]keyed[K], len(lines))
	for i, line := range lines {
		k, err := s.key(line)
		if err != nil {
			return err
		}
		ks[i] = keyed[K]{key: k, line: line}
	}

	slices.SortFunc(ks, func(a, b keyed[K]) int { return cmp.Compare(a.key, b.key) })

	for i := range ks {
		lines[i] = ks[i].line
	}
	return nil
}

func (s byKey[K]) IsSorted(lines []string, reversed bool) (bool, error) {
	if len(lines) < 2 {
		return true, nil
	}

	prev, err := s.key(lines[0])
	if err != nil {
		return false, err
	}
	for _, line := range lines[1:] {
		cur, err := s.key(line)
		if err != nil {
			return false, err
		}
		if reversed && prev < cur || !reversed && cur < prev {
			return false, nil
		}
		prev = cur
	}
	return true, nil
}
