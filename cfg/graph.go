// Package cfg provides the graph primitives every other structuring package
// builds on: an opaque node identifier, a labeled directed graph, and the
// diagnostic sink the core hands warnings to instead of printing them.
package cfg

import (
	"sort"

	"github.com/pkg/errors"
)

// NodeId is an opaque node identifier, typically a hex basic-block address.
// Equality and ordering are lexical; NodeId is never interpreted or
// arithmetically combined by this package or its callers.
type NodeId string

// SortNodeIds sorts ids in place by lexical NodeId order, the tie-break the
// rest of the structuring packages use wherever ordering among otherwise
// equivalent successors must be deterministic.
func SortNodeIds(ids []NodeId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// Graph is a labeled directed graph: a unique entry node FAddr, an ordered
// node list V (FAddr first), and an adjacency map E. E may contain
// duplicate targets and self-loops; both are preserved.
type Graph struct {
	faddr NodeId
	nodes []NodeId
	edges map[NodeId][]NodeId

	index    map[NodeId]int
	revBuilt bool
	rev      map[NodeId][]NodeId
}

// NewGraph builds a Graph from the entry node, the ordered node list (faddr
// must appear in nodes), and the adjacency map. It returns an
// InvalidInputError if faddr is not in nodes, or if any edge endpoint is
// not in nodes.
func NewGraph(faddr NodeId, nodes []NodeId, edges map[NodeId][]NodeId) (*Graph, error) {
	index := make(map[NodeId]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}
	if _, ok := index[faddr]; !ok {
		return nil, errors.WithStack(&InvalidInputError{Reason: "entry node " + string(faddr) + " not present in node list"})
	}
	for src, tgts := range edges {
		if _, ok := index[src]; !ok {
			return nil, errors.WithStack(&InvalidInputError{Reason: "edge source " + string(src) + " not present in node list"})
		}
		for _, t := range tgts {
			if _, ok := index[t]; !ok {
				return nil, errors.WithStack(&InvalidInputError{Reason: "edge target " + string(t) + " not present in node list"})
			}
		}
	}
	return &Graph{
		faddr: faddr,
		nodes: append([]NodeId(nil), nodes...),
		edges: edges,
		index: index,
	}, nil
}

// FAddr returns the graph's unique entry node.
func (g *Graph) FAddr() NodeId { return g.faddr }

// Nodes returns the ordered node list, faddr first. Callers must not mutate
// the returned slice.
func (g *Graph) Nodes() []NodeId { return g.nodes }

// Size returns the number of nodes in the graph.
func (g *Graph) Size() int { return len(g.nodes) }

// HasNode reports whether n is a node of g.
func (g *Graph) HasNode(n NodeId) bool {
	_, ok := g.index[n]
	return ok
}

// HasNodes reports whether every id in s is a node of g.
func (g *Graph) HasNodes(s []NodeId) bool {
	for _, n := range s {
		if !g.HasNode(n) {
			return false
		}
	}
	return true
}

// Successors returns the distinct successors of n. Querying a node not in g
// returns the empty slice rather than failing. Iteration order of the
// result is not significant; callers needing determinism should call
// SortNodeIds on it.
func (g *Graph) Successors(n NodeId) []NodeId {
	return dedupNodeIds(g.edges[n])
}

// Predecessors returns the distinct predecessors of n, computing and
// caching the reverse adjacency map on first use. Like Successors, an
// unknown node yields the empty slice.
func (g *Graph) Predecessors(n NodeId) []NodeId {
	g.buildReverse()
	return dedupNodeIds(g.rev[n])
}

func (g *Graph) buildReverse() {
	if g.revBuilt {
		return
	}
	rev := make(map[NodeId][]NodeId, len(g.nodes))
	for src, tgts := range g.edges {
		for _, t := range tgts {
			rev[t] = append(rev[t], src)
		}
	}
	g.rev = rev
	g.revBuilt = true
}

func dedupNodeIds(ids []NodeId) []NodeId {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[NodeId]struct{}, len(ids))
	out := make([]NodeId, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
