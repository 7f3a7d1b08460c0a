// Package keys derives comparison keys from input lines and reduces them to
// values that can be ordered: plain numbers, suffix-scaled numbers and month
// ranks.
//
// Every function here is total. Text that cannot be interpreted is mapped to a
// sentinel (MinFloat, NoMonth) instead of producing an error, so any input can
// be ordered.
package keys

import (
	"strconv"
	"strings"
)

// Column selects the whitespace-separated token of a line that acts as the
// comparison key. The zero value selects the whole line.
type Column struct {
	index int // 1-based; 0 means whole line
}

// NoColumn selects the whole line as the key.
var NoColumn = Column{}

// ColumnAt selects the n-th token (1-based). Values below 1 select the whole
// line.
func ColumnAt(n int) Column {
	if n < 1 {
		return NoColumn
	}
	return Column{index: n}
}

// ParseColumn reads a -k value. Anything other than a positive decimal
// integer selects the whole line.
func ParseColumn(s string) Column {
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoColumn
	}
	return ColumnAt(n)
}

// Index reports the 1-based token index and whether a column is selected at all.
func (c Column) Index() (int, bool) {
	return c.index, c.index > 0
}

// Extract returns the key for line.
//
// Without a column the line is returned unchanged, surrounding whitespace
// included. With a column the line is split on runs of whitespace and the
// selected token is returned; if the line has fewer tokens the whole line is
// returned instead.
func (c Column) Extract(line string) string {
	if c.index <= 0 {
		return line
	}
	n := 0
	for tok := range strings.FieldsSeq(line) {
		n++
		if n == c.index {
			return tok
		}
	}
	return line
}

func (c Column) String() string {
	if c.index <= 0 {
		return "line"
	}
	return "column " + strconv.Itoa(c.index)
}
