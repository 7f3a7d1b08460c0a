// Package storage persists the final line sequence of a sort run.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// OutputPrefix is prepended to the input file name to name the output.
const OutputPrefix = "sorted_"

// ErrEmptyName is returned when no output name can be derived from the input.
var ErrEmptyName = errors.New("storage: empty input name")

// Sink writes lines to a named resource.
type Sink interface {
	WriteLines(ctx context.Context, name string, lines []string) (Receipt, error)
}

// Receipt describes what a Sink wrote.
type Receipt struct {
	Path   string
	Lines  int
	Bytes  int64
	Digest uint64 // xxh3 of the written bytes
}

// OutputName derives the output path for input: the file name gets
// OutputPrefix and the directory part is kept, so "data/in.txt" becomes
// "data/sorted_in.txt".
func OutputName(input string) (string, error) {
	if input == "" {
		return "", ErrEmptyName
	}
	dir, base := filepath.Split(input)
	if base == "" {
		return "", fmt.Errorf("%w: %q names a directory", ErrEmptyName, input)
	}
	return dir + OutputPrefix + base, nil
}
