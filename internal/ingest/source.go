// Package ingest turns raw map extracts into streamed world chunks.
// It reads typed elements from an OSM source, resolves building
// footprints, meshes them per chunk, and publishes the results over
// the loader message channel.
package ingest

import (
	"strings"

	"github.com/paulmach/orb"
)

// Node is a raw geographic point.
type Node struct {
	ID    int64
	Point orb.Point // (lon, lat)
}

// Way is a raw polygon/line defined by ordered node references.
type Way struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

// Source streams typed map elements. A scan visits every element in
// file order; sources support repeated scans because building
// resolution needs one pass for nodes and one for ways.
type Source interface {
	// Scan streams all elements, calling the matching callback for
	// each. Either callback may be nil to skip that element kind.
	Scan(node func(Node), way func(Way)) error

	// Progress reports the approximate fraction of the input consumed
	// by the scan currently in flight, in [0,1].
	Progress() float64
}

// OpenSource picks a source implementation by file extension:
// ".pbf" is OSM PBF, everything else an Overpass JSON export,
// transparently gunzipped when compressed.
func OpenSource(path string) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pbf") {
		return NewPBFSource(path)
	}
	return NewJSONSource(path)
}
