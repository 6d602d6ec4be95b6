// Package flow builds Allen intervals over a cfg.Graph and analyzes each one:
// reverse postorder, dominators, immediate dominators, and Cifuentes
// two-way-conditional follow nodes.
//
// ref: Allen, Frances E. "Control flow analysis." ACM Sigplan Notices 5.7
// (1970): 1-19.
package flow

import (
	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"
)

// Intervals computes the Allen intervals of g, keyed by header. Nodes
// unreachable from g.FAddr() are excluded and, if sink is non-nil, reported
// on it rather than placed in any interval.
func Intervals(g *cfg.Graph, sink cfg.Sink) map[cfg.NodeId]*Interval {
	headers := newNodeQueue()
	headers.push(g.FAddr())
	covered := map[cfg.NodeId]bool{}
	intervals := map[cfg.NodeId]*Interval{}

	for !headers.empty() {
		h := headers.pop()
		covered[h] = true
		I := newInterval(g, h)

		worklist := []cfg.NodeId{h}
		for len(worklist) > 0 {
			c := worklist[0]
			worklist = worklist[1:]
			for _, t := range sortedCopy(g.Successors(c)) {
				if I.set[t] {
					continue
				}
				if !allPredsCovered(g, t, I.set) {
					continue
				}
				I.addNode(t)
				covered[t] = true
				worklist = append(worklist, t)
			}
		}
		I.buildInternalEdges()

		for _, n := range I.order {
			for _, t := range g.Successors(n) {
				if I.set[t] || headers.has(t) || covered[t] {
					continue
				}
				headers.push(t)
			}
		}

		intervals[h] = I
	}

	if sink != nil {
		for _, n := range g.Nodes() {
			if !covered[n] {
				sink.Warn("unreachable", string(n), "node has no predecessor chain from the entry; excluded from interval construction")
			}
		}
	}

	return intervals
}

func allPredsCovered(g *cfg.Graph, t cfg.NodeId, inInterval map[cfg.NodeId]bool) bool {
	preds := g.Predecessors(t)
	if len(preds) == 0 {
		return false
	}
	for _, p := range preds {
		if !inInterval[p] {
			return false
		}
	}
	return true
}

func sortedCopy(ids []cfg.NodeId) []cfg.NodeId {
	out := append([]cfg.NodeId(nil), ids...)
	cfg.SortNodeIds(out)
	return out
}

// Interval is the maximal single-entry subgraph whose header dominates
// every closed path through its members. Its analyses (RPO, dominators,
// immediate dominators, two-way-conditional follow nodes) are computed
// lazily and cached; the interval's node/edge set never changes after
// Intervals returns it.
type Interval struct {
	g     *cfg.Graph
	head  cfg.NodeId
	order []cfg.NodeId
	set   map[cfg.NodeId]bool
	edges map[cfg.NodeId][]cfg.NodeId
	preds map[cfg.NodeId][]cfg.NodeId

	rpoOnce  bool
	rpoOrder []cfg.NodeId
	rpoIndex map[cfg.NodeId]int

	domOnce bool
	dom     map[cfg.NodeId]map[cfg.NodeId]bool
	idom    map[cfg.NodeId]cfg.NodeId

	followOnce bool
	follow     map[cfg.NodeId]cfg.NodeId
	unresolved []cfg.NodeId
	reachMemo  map[cfg.NodeId]map[cfg.NodeId]bool
}

func newInterval(g *cfg.Graph, head cfg.NodeId) *Interval {
	return &Interval{
		g:     g,
		head:  head,
		order: []cfg.NodeId{head},
		set:   map[cfg.NodeId]bool{head: true},
	}
}

func (I *Interval) addNode(n cfg.NodeId) {
	if I.set[n] {
		return
	}
	I.set[n] = true
	I.order = append(I.order, n)
}

func (I *Interval) buildInternalEdges() {
	I.edges = make(map[cfg.NodeId][]cfg.NodeId, len(I.order))
	I.preds = make(map[cfg.NodeId][]cfg.NodeId, len(I.order))
	for _, n := range I.order {
		for _, t := range I.g.Successors(n) {
			if !I.set[t] {
				continue
			}
			I.edges[n] = append(I.edges[n], t)
			I.preds[t] = append(I.preds[t], n)
		}
	}
}

// Header returns the interval's unique entry node.
func (I *Interval) Header() cfg.NodeId { return I.head }

// Nodes returns the interval's members in lexical NodeId order.
func (I *Interval) Nodes() []cfg.NodeId { return sortedCopy(I.order) }

// HasNode reports whether n is a member of the interval.
func (I *Interval) HasNode(n cfg.NodeId) bool { return I.set[n] }

// Successors returns the distinct internal successors of n: the targets of
// n's outgoing edges that are themselves members of the interval.
func (I *Interval) Successors(n cfg.NodeId) []cfg.NodeId { return sortedCopy(I.edges[n]) }

// Predecessors returns the distinct internal predecessors of n.
func (I *Interval) Predecessors(n cfg.NodeId) []cfg.NodeId { return sortedCopy(I.preds[n]) }

// --- header worklist

// nodeQueue is a FIFO queue of NodeId with push-time deduplication, the
// same discipline Allen's algorithm wants for the header worklist: a node
// is only ever queued once, the first time it qualifies.
type nodeQueue struct {
	l   []cfg.NodeId
	i   int
	inQ map[cfg.NodeId]bool
}

func newNodeQueue() *nodeQueue {
	return &nodeQueue{inQ: map[cfg.NodeId]bool{}}
}

func (q *nodeQueue) push(n cfg.NodeId) {
	if q.inQ[n] {
		return
	}
	q.inQ[n] = true
	q.l = append(q.l, n)
}

func (q *nodeQueue) has(n cfg.NodeId) bool { return q.inQ[n] }

func (q *nodeQueue) pop() cfg.NodeId {
	n := q.l[q.i]
	q.i++
	return n
}

func (q *nodeQueue) empty() bool { return q.i >= len(q.l) }
