package cfa

import (
	"testing"

	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"
)

func mustGraph(t *testing.T, faddr cfg.NodeId, nodes []cfg.NodeId, edges map[cfg.NodeId][]cfg.NodeId) *cfg.Graph {
	t.Helper()
	g, err := cfg.NewGraph(faddr, nodes, edges)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestDeriveSimpleLoopIsReducible(t *testing.T) {
	// S4: nodes=[a,b,c], edges={a:[b], b:[c,a], c:[]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b"},
		"b": {"c", "a"},
	})
	ds, err := Derive(g, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !ds.IsReducible() {
		t.Fatal("expected simple loop to be reducible")
	}
	hrpo := ds.HRPO()
	if len(hrpo) != 3 {
		t.Fatalf("HRPO() has %d entries, want 3", len(hrpo))
	}
}

func TestDeriveIrreducibleGraph(t *testing.T) {
	// S5: nodes=[a,b,c,d], edges={a:[b,c], b:[c], c:[b], b:[d], c:[d]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c", "d"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b", "c"},
		"b": {"c", "d"},
		"c": {"b", "d"},
	})
	ds, err := Derive(g, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if ds.IsReducible() {
		t.Fatal("expected two-entry cycle to be irreducible")
	}
	if len(ds.Graphs()) < 2 {
		t.Fatalf("Graphs() = %v, want at least G_0 and a stabilized layer", ds.Graphs())
	}
	if hrpo := ds.HRPO(); len(hrpo) != 0 {
		t.Fatalf("HRPO() on an irreducible sequence = %v, want empty", hrpo)
	}
}

func TestDeriveIfThenElseTwoWayConditionals(t *testing.T) {
	// S3: nodes=[a,b,c,d], edges={a:[b,c], b:[d], c:[d]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c", "d"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
	})
	ds, err := Derive(g, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !ds.IsReducible() {
		t.Fatal("expected if-then-else to be reducible")
	}
	follow := ds.TwoWayConditionals(nil)
	if follow["a"] != "d" {
		t.Fatalf("follow[a] = %v, want d", follow["a"])
	}
}
