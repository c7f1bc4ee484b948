package ingest

import (
	"io"
	"sync/atomic"
)

// progressReader wraps a reader and counts bytes as they pass
// through, so the producer can report parse progress itself without a
// separate monitoring thread.
type progressReader struct {
	inner io.Reader
	count *atomic.Int64
}

func (r *progressReader) Read(buf []byte) (int, error) {
	n, err := r.inner.Read(buf)
	r.count.Add(int64(n))
	return n, err
}
