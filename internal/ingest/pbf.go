package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
)

// PBFSource reads OSM PBF extracts. Each Scan reopens the file, and
// decoding runs on all cores.
type PBFSource struct {
	path       string
	totalBytes int64
	bytesRead  atomic.Int64
}

// NewPBFSource creates a source over an .osm.pbf file.
func NewPBFSource(path string) (*PBFSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	total := info.Size()
	if total == 0 {
		total = 1
	}
	return &PBFSource{path: path, totalBytes: total}, nil
}

// Scan decodes the whole file, invoking node and way callbacks.
func (s *PBFSource) Scan(node func(Node), way func(Way)) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer file.Close()

	s.bytesRead.Store(0)
	reader := &progressReader{
		inner: bufio.NewReaderSize(file, 1<<20),
		count: &s.bytesRead,
	}

	decoder := osmpbf.NewDecoder(reader)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return fmt.Errorf("starting pbf decoder: %w", err)
	}

	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decoding %s: %w", s.path, err)
		}

		switch v := obj.(type) {
		case *osmpbf.Node:
			if node != nil {
				node(Node{ID: v.ID, Point: orb.Point{v.Lon, v.Lat}})
			}
		case *osmpbf.Way:
			if way != nil {
				way(Way{ID: v.ID, NodeIDs: v.NodeIDs, Tags: v.Tags})
			}
		}
	}
}

// Progress reports the byte fraction consumed by the current scan.
func (s *PBFSource) Progress() float64 {
	return float64(s.bytesRead.Load()) / float64(s.totalBytes)
}
