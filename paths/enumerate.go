// Package paths enumerates simple paths through a cfg.Graph between a
// source and an optional sink, and provides the constraint/call-tag
// aggregation and union-find coalescing helpers callers build feasibility
// and region-grouping queries on top of.
package paths

import (
	"time"

	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"
)

// CfgPath is a simple sequence of NodeIds with no repetition, from src to
// dst inclusive (or to a sink node, if dst was unspecified).
type CfgPath []cfg.NodeId

// pathConfig holds the path enumerator's search-tuning knobs.
type pathConfig struct {
	maxTime time.Duration
}

// Option configures FindPaths, the way soniakeys-graph's df package
// configures a parameterized depth-first search.
type Option func(*pathConfig)

// defaultMaxTime bounds a search that never specifies WithMaxTime.
const defaultMaxTime = 30 * time.Second

// WithMaxTime caps the wall-clock budget of a FindPaths call. Exceeding it
// surfaces as Result.TimedOut with the paths accumulated so far.
func WithMaxTime(d time.Duration) Option {
	return func(c *pathConfig) { c.maxTime = d }
}

// Result is what FindPaths returns: the paths found, and whether the
// search was cut short by its time budget.
type Result struct {
	Paths    []CfgPath
	TimedOut bool
}

// FindPaths enumerates every simple path from src to dst. If dst is nil,
// a path terminates at any node with no outgoing edges. The search is a
// depth-first traversal that marks a node visited on entry and unmarks it
// on backtrack, so no node repeats within a single path; elapsed wall-clock
// time is checked at every recursive step against the configured budget.
func FindPaths(g *cfg.Graph, src cfg.NodeId, dst *cfg.NodeId, opts ...Option) Result {
	c := &pathConfig{maxTime: defaultMaxTime}
	for _, opt := range opts {
		opt(c)
	}

	e := &enumerator{
		g:       g,
		dst:     dst,
		maxTime: c.maxTime,
		start:   time.Now(),
		visited: map[cfg.NodeId]bool{},
	}
	e.dfs(src, nil)
	return Result{Paths: e.results, TimedOut: e.timedOut}
}

type enumerator struct {
	g        *cfg.Graph
	dst      *cfg.NodeId
	maxTime  time.Duration
	start    time.Time
	visited  map[cfg.NodeId]bool
	results  []CfgPath
	timedOut bool
}

// dfs returns false to signal the caller should stop exploring further
// siblings because the time budget has been exhausted.
func (e *enumerator) dfs(cur cfg.NodeId, path []cfg.NodeId) bool {
	if time.Since(e.start) > e.maxTime {
		e.timedOut = true
		return false
	}

	e.visited[cur] = true
	path = append(path, cur)

	atSink := false
	if e.dst != nil {
		atSink = cur == *e.dst
	} else {
		atSink = len(e.g.Successors(cur)) == 0
	}

	cont := true
	if atSink {
		cp := make(CfgPath, len(path))
		copy(cp, path)
		e.results = append(e.results, cp)
	} else {
		for _, s := range sortedCopy(e.g.Successors(cur)) {
			if e.visited[s] {
				continue
			}
			if !e.dfs(s, path) {
				cont = false
				break
			}
		}
	}

	e.visited[cur] = false
	return cont
}

func sortedCopy(ids []cfg.NodeId) []cfg.NodeId {
	out := append([]cfg.NodeId(nil), ids...)
	cfg.SortNodeIds(out)
	return out
}
