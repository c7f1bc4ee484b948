package ingest

import (
	"slices"
)

// compactNode is a projected node, 16 bytes each. City extracts carry
// millions of nodes.
type compactNode struct {
	id   int64
	x, z float32
}

// NodeTable stores projected nodes for way resolution. Nodes are
// appended during the first parse pass, sorted once, then looked up by
// binary search during the way pass. Implements world.NodeLookup.
type NodeTable struct {
	nodes  []compactNode
	sorted bool
}

// NewNodeTable creates a table with capacity for a large extract.
func NewNodeTable() *NodeTable {
	return &NodeTable{nodes: make([]compactNode, 0, 1<<20)}
}

// Add appends a projected node. Must not be called after Sort.
func (t *NodeTable) Add(id int64, x, z float32) {
	t.nodes = append(t.nodes, compactNode{id: id, x: x, z: z})
	t.sorted = false
}

// Sort orders the table by node id, enabling Lookup.
func (t *NodeTable) Sort() {
	slices.SortFunc(t.nodes, func(a, b compactNode) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})
	t.sorted = true
}

// Lookup resolves a node id to its projected position.
func (t *NodeTable) Lookup(id int64) (x, z float32, ok bool) {
	if !t.sorted {
		t.Sort()
	}
	i, found := slices.BinarySearchFunc(t.nodes, id, func(n compactNode, id int64) int {
		switch {
		case n.id < id:
			return -1
		case n.id > id:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return 0, 0, false
	}
	return t.nodes[i].x, t.nodes[i].z, true
}

// Len returns the number of stored nodes.
func (t *NodeTable) Len() int {
	return len(t.nodes)
}
