package paths

import "github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"

// DisjointSet is a union-find over cfg.NodeId, used to coalesce
// equivalence classes of blocks (e.g. blocks belonging to the same
// structured region). Find follows parent pointers without path
// compression; Union is rank-based.
type DisjointSet struct {
	parent map[cfg.NodeId]cfg.NodeId
	rank   map[cfg.NodeId]int
}

// NewDisjointSet returns an empty disjoint-set forest.
func NewDisjointSet() *DisjointSet {
	return &DisjointSet{
		parent: map[cfg.NodeId]cfg.NodeId{},
		rank:   map[cfg.NodeId]int{},
	}
}

// Make adds n as a new singleton set if it is not already known.
func (d *DisjointSet) Make(n cfg.NodeId) {
	if _, ok := d.parent[n]; ok {
		return
	}
	d.parent[n] = n
	d.rank[n] = 0
}

// Find returns the representative of n's set, implicitly calling Make if n
// is unknown. Every call returns a node whose own parent is itself.
func (d *DisjointSet) Find(n cfg.NodeId) cfg.NodeId {
	d.Make(n)
	for d.parent[n] != n {
		n = d.parent[n]
	}
	return n
}

// Union merges the sets containing a and b, attaching the lower-rank root
// under the higher-rank one and breaking ties by incrementing the
// surviving root's rank.
func (d *DisjointSet) Union(a, b cfg.NodeId) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}

// DisjointSets returns the current partition as a list of member lists,
// one per set, each sorted lexically; sets are ordered by their
// representative's NodeId.
func (d *DisjointSet) DisjointSets() [][]cfg.NodeId {
	members := map[cfg.NodeId][]cfg.NodeId{}
	var nodes []cfg.NodeId
	for n := range d.parent {
		nodes = append(nodes, n)
	}
	cfg.SortNodeIds(nodes)

	for _, n := range nodes {
		r := d.Find(n)
		members[r] = append(members[r], n)
	}

	var reps []cfg.NodeId
	for r := range members {
		reps = append(reps, r)
	}
	cfg.SortNodeIds(reps)

	out := make([][]cfg.NodeId, 0, len(reps))
	for _, r := range reps {
		out = append(out, members[r])
	}
	return out
}
