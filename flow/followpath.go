package flow

import "github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"

// TwoWayConditionals returns the interval's branch-to-follow-node map
// (Cifuentes CC'96). If sink is non-nil, every branch that could not be
// resolved is reported on it.
func (I *Interval) TwoWayConditionals(sink cfg.Sink) map[cfg.NodeId]cfg.NodeId {
	I.ensureFollow()
	if sink != nil {
		for _, k := range I.unresolved {
			sink.Warn("unresolved-follow", string(k), "two-way branch has no resolvable follow node")
		}
	}
	out := make(map[cfg.NodeId]cfg.NodeId, len(I.follow))
	for k, v := range I.follow {
		out[k] = v
	}
	return out
}

// Unresolved returns, in lexical order, the branch nodes TwoWayConditionals
// could not resolve a follow node for.
func (I *Interval) Unresolved() []cfg.NodeId {
	I.ensureFollow()
	return append([]cfg.NodeId(nil), I.unresolved...)
}

// ensureFollow walks branch nodes in descending RPO order, the order
// Cifuentes' algorithm requires so that a branch's follow is resolved
// before any enclosing branch is considered. A resolved follow is
// propagated to every previously unresolved branch that can reach it,
// which is how nested unresolved ifs inherit the follow of the region that
// encloses them.
func (I *Interval) ensureFollow() {
	if I.followOnce {
		return
	}
	I.ensureDom()

	follow := map[cfg.NodeId]cfg.NodeId{}
	unresolvedSet := map[cfg.NodeId]bool{}

	desc := I.RPOOrder()
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}

	for _, m := range desc {
		succs := I.Successors(m)
		if len(succs) != 2 {
			continue
		}
		if m == I.head && len(I.Predecessors(m)) > 0 {
			continue // loop header, not a two-way conditional candidate
		}
		latching := false
		for _, s := range succs {
			if s == I.head {
				latching = true
				break
			}
		}
		if latching {
			continue
		}

		var candidates []cfg.NodeId
		for _, n := range I.order {
			if n == I.head {
				continue
			}
			id, ok := I.idom[n]
			if !ok || id != m {
				continue
			}
			if len(I.Predecessors(n)) >= 2 {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			unresolvedSet[m] = true
			continue
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if I.rpoIndex[c] > I.rpoIndex[best] {
				best = c
			}
		}
		follow[m] = best

		for k := range unresolvedSet {
			if I.isDescendant(k, best) {
				follow[k] = best
				delete(unresolvedSet, k)
			}
		}
	}

	unresolved := make([]cfg.NodeId, 0, len(unresolvedSet))
	for k := range unresolvedSet {
		unresolved = append(unresolved, k)
	}
	cfg.SortNodeIds(unresolved)

	I.follow = follow
	I.unresolved = unresolved
	I.followOnce = true
}

// isDescendant reports whether target is forward-reachable from k using
// only the interval's own edges. Each node's reachable set is computed
// once and memoized.
func (I *Interval) isDescendant(k, target cfg.NodeId) bool {
	if I.reachMemo == nil {
		I.reachMemo = map[cfg.NodeId]map[cfg.NodeId]bool{}
	}
	reach, ok := I.reachMemo[k]
	if !ok {
		reach = I.reachableFrom(k)
		I.reachMemo[k] = reach
	}
	return reach[target]
}

func (I *Interval) reachableFrom(start cfg.NodeId) map[cfg.NodeId]bool {
	visited := map[cfg.NodeId]bool{}
	queue := []cfg.NodeId{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, s := range I.Successors(n) {
			if visited[s] {
				continue
			}
			visited[s] = true
			queue = append(queue, s)
		}
	}
	return visited
}
