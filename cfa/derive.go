// Package cfa drives the derived-graph sequence over a cfg.Graph: it
// repeatedly collapses each level's intervals into the next level's nodes
// until reaching a single node (reducible) or a fixpoint that never does
// (irreducible), and derives a hierarchical reverse postorder from the
// result.
//
// ref: Allen, Frances E. "Control flow analysis." ACM Sigplan Notices 5.7
// (1970): 1-19.
package cfa

import (
	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"
	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/flow"
)

// DerivedSequence is the list of graphs G_0, G_1, ..., G_m produced by
// repeatedly collapsing intervals into their headers, together with the
// interval sets used to derive each collapse.
type DerivedSequence struct {
	faddr       cfg.NodeId
	graphs      []*cfg.Graph
	intervalsAt []map[cfg.NodeId]*flow.Interval

	hrpoOnce bool
	hrpo     map[cfg.NodeId][]int
}

// Derive computes the derived graph sequence of g. Diagnostics raised while
// building intervals at any level are forwarded to sink.
func Derive(g *cfg.Graph, sink cfg.Sink) (*DerivedSequence, error) {
	faddr := g.FAddr()

	cur := g
	ivs := flow.Intervals(cur, sink)
	graphs := []*cfg.Graph{cur}
	intervalsAt := []map[cfg.NodeId]*flow.Interval{ivs}

	nextNodes, nextEdges := collapse(cur, ivs)
	prevCount := cur.Size() + 1
	curCount := totalIntervalNodes(ivs)

	for len(nextNodes) > 1 && curCount < prevCount {
		next, err := cfg.NewGraph(faddr, nextNodes, nextEdges)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, next)
		cur = next
		ivs = flow.Intervals(cur, sink)
		intervalsAt = append(intervalsAt, ivs)

		prevCount = curCount
		nextNodes, nextEdges = collapse(cur, ivs)
		curCount = totalIntervalNodes(ivs)
	}

	if len(nextNodes) == 1 {
		final, err := cfg.NewGraph(faddr, nextNodes, nextEdges)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, final)
	}

	return &DerivedSequence{
		faddr:       faddr,
		graphs:      graphs,
		intervalsAt: intervalsAt,
	}, nil
}

// Graphs returns the derived sequence G_0, ..., G_m.
func (ds *DerivedSequence) Graphs() []*cfg.Graph {
	return append([]*cfg.Graph(nil), ds.graphs...)
}

// IsReducible reports whether the sequence terminated in a single node.
func (ds *DerivedSequence) IsReducible() bool {
	return ds.graphs[len(ds.graphs)-1].Size() == 1
}

// Intervals returns the intervals of G_0, the original graph, keyed by
// header.
func (ds *DerivedSequence) Intervals() map[cfg.NodeId]*flow.Interval {
	out := make(map[cfg.NodeId]*flow.Interval, len(ds.intervalsAt[0]))
	for k, v := range ds.intervalsAt[0] {
		out[k] = v
	}
	return out
}

// TwoWayConditionals merges the two-way-conditional follow maps of every
// interval of G_0 into a single branch-to-follow map. Diagnostics for
// unresolved branches are forwarded to sink.
func (ds *DerivedSequence) TwoWayConditionals(sink cfg.Sink) map[cfg.NodeId]cfg.NodeId {
	out := map[cfg.NodeId]cfg.NodeId{}
	for _, I := range ds.intervalsAt[0] {
		for branch, follow := range I.TwoWayConditionals(sink) {
			out[branch] = follow
		}
	}
	return out
}

// HRPO returns the hierarchical reverse postorder of every original node.
// It is empty when the sequence is irreducible; callers needing partial
// numbering should request per-interval RPO directly from Intervals().
func (ds *DerivedSequence) HRPO() map[cfg.NodeId][]int {
	ds.ensureHRPO()
	out := make(map[cfg.NodeId][]int, len(ds.hrpo))
	for k, v := range ds.hrpo {
		out[k] = append([]int(nil), v...)
	}
	return out
}

func (ds *DerivedSequence) ensureHRPO() {
	if ds.hrpoOnce {
		return
	}
	if !ds.IsReducible() {
		ds.hrpo = map[cfg.NodeId][]int{}
		ds.hrpoOnce = true
		return
	}

	last := ds.graphs[len(ds.graphs)-1]
	prev := map[cfg.NodeId][]int{last.FAddr(): {0}}

	for i := len(ds.intervalsAt) - 1; i >= 0; i-- {
		ivs := ds.intervalsAt[i]
		next := map[cfg.NodeId][]int{}
		for n, base := range prev {
			I, ok := ivs[n]
			if !ok {
				continue
			}
			for ni, idx := range I.RPO() {
				key := append(append([]int(nil), base...), idx)
				next[ni] = key
			}
		}
		prev = next
	}

	ds.hrpo = prev
	ds.hrpoOnce = true
}

// totalIntervalNodes sums the member count of every interval, the measure
// the derive loop uses to detect an irreducible fixpoint: once collapsing
// stops shrinking the live node count, further iteration cannot help.
func totalIntervalNodes(ivs map[cfg.NodeId]*flow.Interval) int {
	total := 0
	for _, I := range ivs {
		total += len(I.Nodes())
	}
	return total
}

// collapse derives the next level's node list and induced edges from g's
// intervals: one node per header, with h_a -> h_b whenever some member of
// I_a reaches outside into I_b (scanned both from I_a's exits and from
// I_b's own members reaching back into h_a, matching the two-sided
// adjacency check the original interval-graph construction performs).
func collapse(g *cfg.Graph, ivs map[cfg.NodeId]*flow.Interval) ([]cfg.NodeId, map[cfg.NodeId][]cfg.NodeId) {
	if len(ivs) == 1 {
		for h := range ivs {
			return []cfg.NodeId{h}, map[cfg.NodeId][]cfg.NodeId{}
		}
	}

	headers := make([]cfg.NodeId, 0, len(ivs))
	for h := range ivs {
		if h != g.FAddr() {
			headers = append(headers, h)
		}
	}
	cfg.SortNodeIds(headers)
	headers = append([]cfg.NodeId{g.FAddr()}, headers...)

	type pair struct{ a, b cfg.NodeId }
	edgeSet := map[pair]bool{}

	for _, ha := range headers {
		Ia := ivs[ha]
		exits := map[cfg.NodeId]bool{}
		for _, n := range Ia.Nodes() {
			for _, j := range g.Successors(n) {
				if !Ia.HasNode(j) {
					exits[j] = true
				}
			}
		}
		for _, hb := range headers {
			if hb == ha {
				continue
			}
			if exits[hb] {
				edgeSet[pair{ha, hb}] = true
			}
			Ib := ivs[hb]
			for _, n := range Ib.Nodes() {
				reachesHa := false
				for _, j := range g.Successors(n) {
					if j == ha {
						reachesHa = true
						break
					}
				}
				if reachesHa {
					edgeSet[pair{hb, ha}] = true
					break
				}
			}
		}
	}

	edges := map[cfg.NodeId][]cfg.NodeId{}
	for p := range edgeSet {
		edges[p.a] = append(edges[p.a], p.b)
	}
	return headers, edges
}
