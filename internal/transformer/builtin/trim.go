// Package builtin contains the line transformers used by the sort pipeline.
package builtin

import (
	"strings"
	"unicode"
)

// TrimTrailing strips trailing whitespace from every line (-b).
type TrimTrailing struct{}

func (TrimTrailing) Apply(in []string) []string {
	for i, s := range in {
		in[i] = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	return in
}
