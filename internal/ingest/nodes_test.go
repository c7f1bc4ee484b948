package ingest

import "testing"

func TestNodeTableLookup(t *testing.T) {
	table := NewNodeTable()
	table.Add(30, 3.0, -3.0)
	table.Add(10, 1.0, -1.0)
	table.Add(20, 2.0, -2.0)
	table.Sort()

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	x, z, ok := table.Lookup(20)
	if !ok {
		t.Fatal("Lookup(20) missed a stored node")
	}
	if x != 2.0 || z != -2.0 {
		t.Errorf("Lookup(20) = (%v, %v), want (2, -2)", x, z)
	}

	if _, _, ok := table.Lookup(15); ok {
		t.Error("Lookup(15) found a node that was never added")
	}
}

func TestNodeTableSortsOnDemand(t *testing.T) {
	table := NewNodeTable()
	table.Add(5, 5.0, 5.0)
	table.Add(1, 1.0, 1.0)

	// No explicit Sort call before the first lookup.
	x, _, ok := table.Lookup(1)
	if !ok || x != 1.0 {
		t.Errorf("Lookup(1) = (%v, %v), want (1, true)", x, ok)
	}
}
