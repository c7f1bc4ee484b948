package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
)

// JSONSource reads Overpass API JSON exports ("out body" with an
// elements array), optionally gzip-compressed. Elements are decoded
// one at a time so even large exports stream in constant memory.
type JSONSource struct {
	path       string
	totalBytes int64
	bytesRead  atomic.Int64
}

// overpassElement is one entry of the Overpass elements array; node
// and way fields overlap in one struct, discriminated by Type.
type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// NewJSONSource creates a source over an Overpass JSON export.
func NewJSONSource(path string) (*JSONSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	total := info.Size()
	if total == 0 {
		total = 1
	}
	return &JSONSource{path: path, totalBytes: total}, nil
}

// Scan streams the elements array, invoking node and way callbacks.
func (s *JSONSource) Scan(node func(Node), way func(Way)) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer file.Close()

	s.bytesRead.Store(0)
	// Count compressed bytes so progress tracks the file size even
	// through gzip.
	counted := &progressReader{
		inner: bufio.NewReaderSize(file, 1<<20),
		count: &s.bytesRead,
	}

	reader, err := maybeGunzip(counted)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	dec := json.NewDecoder(reader)
	if err := seekElementsArray(dec); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}

	for dec.More() {
		var el overpassElement
		if err := dec.Decode(&el); err != nil {
			return fmt.Errorf("parsing %s: %w", s.path, err)
		}
		switch el.Type {
		case "node":
			if node != nil {
				node(Node{ID: el.ID, Point: orb.Point{el.Lon, el.Lat}})
			}
		case "way":
			if way != nil {
				way(Way{ID: el.ID, NodeIDs: el.Nodes, Tags: el.Tags})
			}
		}
	}
	return nil
}

// Progress reports the byte fraction consumed by the current scan.
func (s *JSONSource) Progress() float64 {
	return float64(s.bytesRead.Load()) / float64(s.totalBytes)
}

// maybeGunzip sniffs the gzip magic bytes and wraps the reader when
// present.
func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

// seekElementsArray advances the decoder to just inside the top-level
// "elements" array.
func seekElementsArray(dec *json.Decoder) error {
	// Opening brace of the export object.
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok != json.Delim('{') {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("no elements array found")
		}
		if key == "elements" {
			if tok, err := dec.Token(); err != nil {
				return err
			} else if tok != json.Delim('[') {
				return fmt.Errorf("elements is not an array")
			}
			return nil
		}
		// Skip the value of any other key (version, generator, ...).
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
}
