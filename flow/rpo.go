package flow

import "github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"

// RPO returns the reverse-postorder index of every node in the interval.
func (I *Interval) RPO() map[cfg.NodeId]int {
	I.ensureRPO()
	out := make(map[cfg.NodeId]int, len(I.rpoIndex))
	for k, v := range I.rpoIndex {
		out[k] = v
	}
	return out
}

// RPOOrder returns the interval's nodes ordered by increasing RPO index.
func (I *Interval) RPOOrder() []cfg.NodeId {
	I.ensureRPO()
	return append([]cfg.NodeId(nil), I.rpoOrder...)
}

// ensureRPO runs a non-recursive DFS from the header, treating edges back
// into the header as back-edges and skipping them. Every visit of a node
// moves it to the end of the working order; since children are only
// expanded the first time a node is popped, the last move a node makes
// lands it at its final position, in reverse postorder already. Siblings
// are walked in lexical NodeId order so the result is deterministic.
func (I *Interval) ensureRPO() {
	if I.rpoOnce {
		return
	}

	var order []cfg.NodeId
	visited := map[cfg.NodeId]bool{}

	moveToEnd := func(n cfg.NodeId) {
		for i, m := range order {
			if m == n {
				order = append(order[:i], order[i+1:]...)
				break
			}
		}
		order = append(order, n)
	}

	stack := []cfg.NodeId{I.head}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		moveToEnd(n)
		if visited[n] {
			continue
		}
		visited[n] = true
		succs := sortedCopy(I.Successors(n))
		for i := len(succs) - 1; i >= 0; i-- {
			if succs[i] == I.head {
				continue
			}
			stack = append(stack, succs[i])
		}
	}

	rpoOrder := make([]cfg.NodeId, len(order))
	rpoIndex := make(map[cfg.NodeId]int, len(order))
	for i, n := range order {
		rpoOrder[i] = n
		rpoIndex[n] = i
	}
	I.rpoOrder = rpoOrder
	I.rpoIndex = rpoIndex
	I.rpoOnce = true
}
