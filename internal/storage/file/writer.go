// Package file implements a storage.Sink backed by the local filesystem.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/maggun1/sort/internal/storage"
)

const writeBufSize = 1 << 20 // 1 MiB

// Writer writes lines joined by "\n", without a trailing newline. The
// destination is replaced atomically: data goes to a temporary file in the
// same directory which is then renamed over the target.
type Writer struct {
	perm os.FileMode
}

// NewWriter returns a Writer that creates files with mode 0644.
func NewWriter() *Writer { return &Writer{perm: 0o644} }

var _ storage.Sink = (*Writer)(nil)

func (w *Writer) WriteLines(ctx context.Context, path string, lines []string) (storage.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return storage.Receipt{}, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sort-*")
	if err != nil {
		return storage.Receipt{}, fmt.Errorf("create %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) (storage.Receipt, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return storage.Receipt{}, fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Chmod(w.perm); err != nil {
		return fail(err)
	}

	h := xxh3.New()
	bw := bufio.NewWriterSize(io.MultiWriter(tmp, h), writeBufSize)
	var n int64
	for i, line := range lines {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fail(err)
			}
			n++
		}
		m, err := bw.WriteString(line)
		n += int64(m)
		if err != nil {
			return fail(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return storage.Receipt{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return storage.Receipt{}, fmt.Errorf("replace %s: %w", path, err)
	}
	_ = syncDir(dir)

	return storage.Receipt{Path: path, Lines: len(lines), Bytes: n, Digest: h.Sum64()}, nil
}

// syncDir persists the rename on filesystems that need a directory fsync.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
