// Package datasource loads the input lines of a run.
package datasource

import (
	"bufio"
	"context"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const readBufSize = 1 << 20 // 1 MiB

// Source opens the raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ReadLines opens src and loads every line into memory.
//
// Input is decoded to UTF-8: a UTF-8 byte order mark is dropped, UTF-16 input
// announced by its byte order mark is transcoded, and invalid UTF-8 becomes
// U+FFFD. Lines end at "\n"; a "\r" directly before it is dropped too. A final
// newline does not start an extra empty line.
func ReadLines(ctx context.Context, src Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readLines(ctx, rc)
}

func readLines(ctx context.Context, r io.Reader) ([]string, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	br := bufio.NewReaderSize(dec, readBufSize)

	var lines []string
	for {
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s, err := br.ReadString('\n')
		if strings.HasSuffix(s, "\n") {
			s = strings.TrimSuffix(s[:len(s)-1], "\r")
			lines = append(lines, s)
		} else if s != "" {
			lines = append(lines, s)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
