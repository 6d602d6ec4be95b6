package flow

import "github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"

// Dom returns the dominator set of n: every node that lies on every path
// from the interval's header to n, including n itself.
func (I *Interval) Dom(n cfg.NodeId) map[cfg.NodeId]bool {
	I.ensureDom()
	return copySet(I.dom[n])
}

// IDom returns n's immediate dominator and whether one exists. The header
// has none.
func (I *Interval) IDom(n cfg.NodeId) (cfg.NodeId, bool) {
	I.ensureDom()
	d, ok := I.idom[n]
	return d, ok
}

// ensureDom performs the single forward sweep in RPO order that a
// header-acyclic-modulo-back-edges interval allows: by the time a node is
// reached, every one of its internal predecessors other than a back-edge
// into it has already been processed.
func (I *Interval) ensureDom() {
	if I.domOnce {
		return
	}
	I.ensureRPO()

	dom := make(map[cfg.NodeId]map[cfg.NodeId]bool, len(I.order))
	dom[I.head] = map[cfg.NodeId]bool{I.head: true}

	for _, n := range I.rpoOrder {
		if n == I.head {
			continue
		}
		var acc map[cfg.NodeId]bool
		for _, p := range I.Predecessors(n) {
			pd, ok := dom[p]
			if !ok {
				// p has not been processed yet: an edge into n from a
				// node later in RPO, which can only happen for a
				// back-edge into the header.
				continue
			}
			if acc == nil {
				acc = copySet(pd)
				continue
			}
			acc = intersectSets(acc, pd)
		}
		if acc == nil {
			acc = map[cfg.NodeId]bool{}
		}
		acc[n] = true
		dom[n] = acc
	}

	idom := make(map[cfg.NodeId]cfg.NodeId, len(dom))
	for n, d := range dom {
		if n == I.head {
			continue
		}
		var best cfg.NodeId
		bestRPO := -1
		for k := range d {
			if k == n {
				continue
			}
			if r := I.rpoIndex[k]; r > bestRPO {
				bestRPO = r
				best = k
			}
		}
		if bestRPO >= 0 {
			idom[n] = best
		}
	}

	I.dom = dom
	I.idom = idom
	I.domOnce = true
}

func copySet(s map[cfg.NodeId]bool) map[cfg.NodeId]bool {
	out := make(map[cfg.NodeId]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func intersectSets(a, b map[cfg.NodeId]bool) map[cfg.NodeId]bool {
	out := make(map[cfg.NodeId]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}
