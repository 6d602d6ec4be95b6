package flow

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

func TestIntervalsSingleNode(t *testing.T) {
	// S1: nodes=[a], edges={}.
	g := mustGraph(t, "a", []cfg.NodeId{"a"}, nil)
	ivs := Intervals(g, nil)
	if len(ivs) != 1 {
		t.Fatalf("len(ivs) = %d, want 1", len(ivs))
	}
	I, ok := ivs["a"]
	if !ok {
		t.Fatal("missing interval for header a")
	}
	if got := I.Nodes(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("Nodes() = %v, want [a]", got)
	}
}

func TestIntervalsStraightLine(t *testing.T) {
	// S2: nodes=[a,b,c], edges={a:[b], b:[c]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b"},
		"b": {"c"},
	})
	ivs := Intervals(g, nil)
	if len(ivs) != 1 {
		t.Fatalf("len(ivs) = %d, want 1", len(ivs))
	}
	I := ivs["a"]
	rpo := I.RPO()
	if rpo["a"] != 0 || rpo["b"] != 1 || rpo["c"] != 2 {
		t.Fatalf("rpo = %v, want a:0 b:1 c:2", rpo)
	}
	idomB, _ := I.IDom("b")
	idomC, _ := I.IDom("c")
	if idomB != "a" {
		t.Fatalf("idom(b) = %v, want a", idomB)
	}
	if idomC != "b" {
		t.Fatalf("idom(c) = %v, want b", idomC)
	}
}

func TestIntervalsIfThenElse(t *testing.T) {
	// S3: nodes=[a,b,c,d], edges={a:[b,c], b:[d], c:[d]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c", "d"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
	})
	ivs := Intervals(g, nil)
	if len(ivs) != 1 {
		t.Fatalf("len(ivs) = %d, want 1", len(ivs))
	}
	I := ivs["a"]
	idomD, ok := I.IDom("d")
	if !ok || idomD != "a" {
		t.Fatalf("idom(d) = %v, %v; want a, true", idomD, ok)
	}
	follow := I.TwoWayConditionals(nil)
	if follow["a"] != "d" {
		t.Fatalf("follow[a] = %v, want d", follow["a"])
	}
	if len(I.Unresolved()) != 0 {
		t.Fatalf("Unresolved() = %v, want none", I.Unresolved())
	}
}

func TestIntervalsSimpleLoop(t *testing.T) {
	// S4: nodes=[a,b,c], edges={a:[b], b:[c,a], c:[]}.
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "c"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b"},
		"b": {"c", "a"},
	})
	ivs := Intervals(g, nil)
	if len(ivs) != 1 {
		t.Fatalf("len(ivs) = %d, want 1 (single interval headed by a)", len(ivs))
	}
	I := ivs["a"]
	if got := I.Nodes(); len(got) != 3 {
		t.Fatalf("Nodes() = %v, want all three nodes in one interval", got)
	}
}

func TestIntervalsReportsUnreachableNode(t *testing.T) {
	g := mustGraph(t, "a", []cfg.NodeId{"a", "b", "dead"}, map[cfg.NodeId][]cfg.NodeId{
		"a": {"b"},
	})
	var warned []string
	sink := sinkFunc(func(tag, addr, detail string) {
		if tag == "unreachable" {
			warned = append(warned, addr)
		}
	})
	Intervals(g, sink)
	if len(warned) != 1 || warned[0] != "dead" {
		t.Fatalf("warned = %v, want [dead]", warned)
	}
}

type sinkFunc func(tag, addr, detail string)

func (f sinkFunc) Warn(tag, addr, detail string) { f(tag, addr, detail) }
