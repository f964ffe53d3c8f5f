package testutil

import (
	"bytes"
	"sync"
)

// SafeBuffer is a goroutine-safe bytes.Buffer. The application logs from
// worker goroutines during parallel tracing, so tests that capture log
// output need synchronized writes.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffered contents.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
