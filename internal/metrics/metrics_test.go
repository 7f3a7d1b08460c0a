package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	counters   []call
	histograms []call
	flushes    int
}

type call struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histograms = append(f.histograms, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func swapBackend(t *testing.T) *fakeBackend {
	t.Helper()
	orig := backend
	t.Cleanup(func() { backend = orig })
	fb := &fakeBackend{}
	backend = fb
	return fb
}

func TestRecordStep(t *testing.T) {
	fb := swapBackend(t)

	RecordStep("sort", "order", nil, 2*time.Second)
	RecordStep("sort", "write", errors.New("disk full"), 1500*time.Millisecond)

	require.Len(t, fb.counters, 2)
	require.Len(t, fb.histograms, 2)

	assert.Equal(t, call{stepTotal, 1, Labels{"job": "sort", "step": "order", "status": "success"}}, fb.counters[0])
	assert.Equal(t, "failure", fb.counters[1].labels["status"])
	assert.Equal(t, "write", fb.counters[1].labels["step"])

	assert.Equal(t, stepDuration, fb.histograms[0].name)
	assert.InDelta(t, 2.0, fb.histograms[0].value, 1e-9)
	assert.InDelta(t, 1.5, fb.histograms[1].value, 1e-9)
}

func TestRecordLines(t *testing.T) {
	fb := swapBackend(t)

	RecordLines("sort", "read", 4)
	RecordLines("sort", "deduped", 0)
	RecordLines("sort", "written", -1)
	RecordLines("sort", "written", 3)

	require.Len(t, fb.counters, 2)
	assert.Equal(t, call{linesTotal, 4, Labels{"job": "sort", "kind": "read"}}, fb.counters[0])
	assert.Equal(t, call{linesTotal, 3, Labels{"job": "sort", "kind": "written"}}, fb.counters[1])
}

func TestSetBackendAndFlush(t *testing.T) {
	orig := backend
	t.Cleanup(func() { backend = orig })

	fb := &fakeBackend{}
	SetBackend(fb)
	require.Same(t, fb, backend)

	require.NoError(t, Flush())
	assert.Equal(t, 1, fb.flushes)

	SetBackend(nil)
	assert.Same(t, fb, backend, "SetBackend(nil) must keep the current backend")
}

func TestNopBackendIsSafe(t *testing.T) {
	var b Backend = nopBackend{}
	b.IncCounter(stepTotal, 1, nil)
	b.ObserveHistogram(stepDuration, 1, nil)
	assert.NoError(t, b.Flush())
}

func TestDisable(t *testing.T) {
	orig := backend
	t.Cleanup(func() { backend = orig })

	fb := &fakeBackend{}
	SetBackend(fb)
	Disable()
	RecordLines("sort", "read", 3)

	assert.Empty(t, fb.counters)
	assert.Equal(t, Backend(nopBackend{}), backend)
}
