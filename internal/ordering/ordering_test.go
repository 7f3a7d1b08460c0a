package ordering

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maggun1/sort/internal/keys"
)

var allModes = []Mode{Lexicographic, Numeric, MonthName, SuffixScaled}

// randomLines mixes numbers, suffixed sizes, months and junk so every mode
// sees parseable and unparseable keys, duplicates, and multi-column lines.
func randomLines(r *rand.Rand, n int) []string {
	atoms := []string{
		"", " ", "abc", "Jan", "Sep 2021", "December", "no month",
		"10K", "1M", "2.5G", "7X", "x", "9", "500", "-3.5", "42", "1e3",
		"  padded  ", "inf", "-inf", "Ünï",
	}
	out := make([]string, n)
	for i := range out {
		switch r.IntN(3) {
		case 0:
			out[i] = atoms[r.IntN(len(atoms))]
		case 1:
			out[i] = strconv.FormatFloat(r.NormFloat64()*1000, 'f', r.IntN(3), 64)
		default:
			out[i] = atoms[r.IntN(len(atoms))] + " " + atoms[r.IntN(len(atoms))] + "\t" + strconv.Itoa(r.IntN(50))
		}
	}
	return out
}

func TestSortThenIsSortedAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	cols := []keys.Column{keys.NoColumn, keys.ColumnAt(1), keys.ColumnAt(2), keys.ColumnAt(3)}

	for _, mode := range allModes {
		for _, col := range cols {
			s := New(mode, col)
			for round := 0; round < 50; round++ {
				lines := randomLines(r, r.IntN(40))

				require.NoError(t, s.Sort(lines))

				ok, err := s.IsSorted(lines, false)
				require.NoError(t, err)
				require.Truef(t, ok, "mode=%s col=%s: sorted output fails ascending check: %q", mode, col, lines)

				slices.Reverse(lines)
				ok, err = s.IsSorted(lines, true)
				require.NoError(t, err)
				require.Truef(t, ok, "mode=%s col=%s: reversed output fails descending check: %q", mode, col, lines)
			}
		}
	}
}

func TestSortKeepsLineMultiset(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, mode := range allModes {
		lines := randomLines(r, 64)
		want := slices.Clone(lines)
		slices.Sort(want)

		require.NoError(t, New(mode, keys.ColumnAt(1)).Sort(lines))

		got := slices.Clone(lines)
		slices.Sort(got)
		assert.Equal(t, want, got, mode.String())
	}
}

func TestSortByMode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		col  keys.Column
		in   []string
		want []string
	}{
		{
			name: "suffix scenario",
			mode: SuffixScaled,
			col:  keys.NoColumn,
			in:   []string{"10K", "3", "1M", "500"},
			want: []string{"3", "500", "10K", "1M"},
		},
		{
			name: "numeric puts unparseable first",
			mode: Numeric,
			col:  keys.NoColumn,
			in:   []string{"10", "abc", "-2", "3.5"},
			want: []string{"abc", "-2", "3.5", "10"},
		},
		{
			name: "months with unknown last",
			mode: MonthName,
			col:  keys.NoColumn,
			in:   []string{"Mar", "no month", "Jan", "Dec 1"},
			want: []string{"Jan", "Mar", "Dec 1", "no month"},
		},
		{
			name: "lexicographic is bytewise",
			mode: Lexicographic,
			col:  keys.NoColumn,
			in:   []string{"b", "B", "a", "10", "9"},
			want: []string{"10", "9", "B", "a", "b"},
		},
		{
			name: "numeric by second column",
			mode: Numeric,
			col:  keys.ColumnAt(2),
			in:   []string{"x 30", "y 4", "z 100"},
			want: []string{"y 4", "x 30", "z 100"},
		},
		{
			name: "missing column falls back to whole line",
			mode: Lexicographic,
			col:  keys.ColumnAt(2),
			in:   []string{"b a", "d", "a c"},
			want: []string{"b a", "a c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := slices.Clone(tt.in)
			require.NoError(t, New(tt.mode, tt.col).Sort(lines))
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		in       []string
		reversed bool
		want     bool
	}{
		{name: "months ascending", mode: MonthName, in: []string{"Jan", "Feb", "Mar"}, want: true},
		{name: "months out of order", mode: MonthName, in: []string{"Mar", "Jan"}, want: false},
		{name: "months descending", mode: MonthName, in: []string{"Mar", "Jan"}, reversed: true, want: true},
		{name: "equal neighbours allowed", mode: Numeric, in: []string{"1", "1.0", "2"}, want: true},
		{name: "equal neighbours allowed reversed", mode: Numeric, in: []string{"2", "2", "1"}, reversed: true, want: true},
		{name: "numeric strict decrease", mode: Numeric, in: []string{"1", "3", "2"}, want: false},
		{name: "empty input", mode: Numeric, in: nil, want: true},
		{name: "single line", mode: SuffixScaled, in: []string{"NaN"}, want: true},
		{name: "suffix ascending", mode: SuffixScaled, in: []string{"3", "500", "10K", "1M"}, want: true},
		{name: "lexicographic", mode: Lexicographic, in: []string{"a", "b", "b", "c"}, want: true},
		{name: "lexicographic descending fails ascending", mode: Lexicographic, in: []string{"c", "a"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.mode, keys.NoColumn).IsSorted(tt.in, tt.reversed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNaNKeyIsIncomparable(t *testing.T) {
	tests := []struct {
		mode Mode
		nan  string
	}{
		{mode: Numeric, nan: "NaN"},
		{mode: SuffixScaled, nan: "NaNK"},
		{mode: SuffixScaled, nan: "nanX"},
	}

	for _, tt := range tests {
		in := []string{"3", tt.nan, "1"}
		lines := slices.Clone(in)

		err := New(tt.mode, keys.NoColumn).Sort(lines)
		require.ErrorIs(t, err, ErrIncomparable, tt.nan)
		assert.Equal(t, in, lines, "lines must be untouched on error")

		_, err = New(tt.mode, keys.NoColumn).IsSorted(in, false)
		require.ErrorIs(t, err, ErrIncomparable, tt.nan)
	}
}

// In suffix mode "NaN" is "Na" plus a dropped "N", and "Na" counts as 0.
func TestSuffixNaNWithoutScaleIsZero(t *testing.T) {
	lines := []string{"5K", "NaN", "-1K"}
	require.NoError(t, New(SuffixScaled, keys.NoColumn).Sort(lines))
	assert.Equal(t, []string{"-1K", "NaN", "5K"}, lines)
}

func TestNumericRejectsNonDecimalLiterals(t *testing.T) {
	lines := []string{"5", "1_000", "-1", "0x1p3"}
	require.NoError(t, New(Numeric, keys.NoColumn).Sort(lines))

	// both sit at the sentinel, so their relative order is free
	assert.ElementsMatch(t, []string{"1_000", "0x1p3"}, lines[:2])
	assert.Equal(t, []string{"-1", "5"}, lines[2:])
}

func TestNaNAfterFirstDecreaseIsNotReached(t *testing.T) {
	ok, err := New(Numeric, keys.NoColumn).IsSorted([]string{"2", "1", "NaN"}, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNaNIsPlainTextOutsideNumericModes(t *testing.T) {
	lines := []string{"NaN", "Jan NaN"}
	require.NoError(t, New(MonthName, keys.NoColumn).Sort(lines))
	assert.Equal(t, []string{"Jan NaN", "NaN"}, lines)
}

func TestModeFromFlags(t *testing.T) {
	assert.Equal(t, Lexicographic, ModeFromFlags(false, false, false))
	assert.Equal(t, Numeric, ModeFromFlags(true, false, false))
	assert.Equal(t, MonthName, ModeFromFlags(false, true, false))
	assert.Equal(t, SuffixScaled, ModeFromFlags(false, false, true))
	assert.Equal(t, Numeric, ModeFromFlags(true, true, true))
	assert.Equal(t, MonthName, ModeFromFlags(false, true, true))
}

func TestNewReportsMode(t *testing.T) {
	for _, m := range allModes {
		assert.Equal(t, m, New(m, keys.NoColumn).Mode())
	}
	assert.Equal(t, Lexicographic, New(Mode(42), keys.NoColumn).Mode())
	assert.Equal(t, "Mode(42)", Mode(42).String())
}
