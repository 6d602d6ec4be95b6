package paths

import (
	"sort"
	"strings"

	"github.com/static-analysis-engineering/CodeHawk-Binary-sub005/cfg"
)

// PredicateOracle supplies the symbolic predicate term attached to an edge,
// if any. It is owned by the external collaborator that understands branch
// semantics; the path enumerator never calls it, only the aggregation
// helpers below do.
type PredicateOracle func(src, dst cfg.NodeId) (term string, ok bool)

// CallSite is a call instruction found in a block, supplied by a
// BlockCallOracle.
type CallSite struct {
	Target     string
	Args       string
	Annotation string
}

// String renders a CallSite the way the original tool's report did:
// "target:args  annotation".
func (c CallSite) String() string {
	return c.Target + ":" + c.Args + "  " + c.Annotation
}

// BlockCallOracle supplies the call sites found within a block.
type BlockCallOracle func(block cfg.NodeId) []CallSite

// SharedConstraints returns the predicate terms common to every path.
func SharedConstraints(paths []CfgPath, oracle PredicateOracle) map[string]bool {
	return intersectStringSets(constraintSets(paths, oracle))
}

// AllConstraints returns the union of predicate terms across all paths.
func AllConstraints(paths []CfgPath, oracle PredicateOracle) map[string]bool {
	return unionStringSets(constraintSets(paths, oracle))
}

// SharedCalls returns the call sites common to every path.
func SharedCalls(paths []CfgPath, oracle BlockCallOracle) []CallSite {
	return setToSlice(intersectCallSets(callSets(paths, oracle)))
}

// AllCalls returns the union of call sites across all paths.
func AllCalls(paths []CfgPath, oracle BlockCallOracle) []CallSite {
	return setToSlice(unionCallSets(callSets(paths, oracle)))
}

// Summary reports the feasible/infeasible/total counts Partition computed.
type Summary struct {
	Feasible   int
	Infeasible int
	Total      int
}

// Feasible reports whether path's edge predicates are free of a syntactic
// self-contradiction: two terms where one is the other prefixed with "!".
// This is a purely syntactic check, not abstract interpretation.
func Feasible(path CfgPath, oracle PredicateOracle) bool {
	seen := map[string]bool{}
	for _, term := range edgeTerms(path, oracle) {
		if seen[negate(term)] {
			return false
		}
		seen[term] = true
	}
	return true
}

// Partition splits paths into feasible and infeasible subsets and reports
// their counts, mirroring the feasiblepaths/infeasiblepaths split the
// original CFG-paths report performed before computing shared constraints.
func Partition(paths []CfgPath, oracle PredicateOracle) (feasible, infeasible []CfgPath, summary Summary) {
	for _, p := range paths {
		if Feasible(p, oracle) {
			feasible = append(feasible, p)
		} else {
			infeasible = append(infeasible, p)
		}
	}
	summary = Summary{Feasible: len(feasible), Infeasible: len(infeasible), Total: len(paths)}
	return feasible, infeasible, summary
}

func negate(term string) string {
	if strings.HasPrefix(term, "!") {
		return strings.TrimPrefix(term, "!")
	}
	return "!" + term
}

func edgeTerms(path CfgPath, oracle PredicateOracle) []string {
	var terms []string
	for i := 0; i+1 < len(path); i++ {
		if term, ok := oracle(path[i], path[i+1]); ok {
			terms = append(terms, term)
		}
	}
	return terms
}

func constraintSets(paths []CfgPath, oracle PredicateOracle) []map[string]bool {
	sets := make([]map[string]bool, len(paths))
	for i, p := range paths {
		s := map[string]bool{}
		for _, term := range edgeTerms(p, oracle) {
			s[term] = true
		}
		sets[i] = s
	}
	return sets
}

func callSets(paths []CfgPath, oracle BlockCallOracle) []map[CallSite]bool {
	sets := make([]map[CallSite]bool, len(paths))
	for i, p := range paths {
		s := map[CallSite]bool{}
		for _, n := range p {
			for _, c := range oracle(n) {
				s[c] = true
			}
		}
		sets[i] = s
	}
	return sets
}

func intersectStringSets(sets []map[string]bool) map[string]bool {
	if len(sets) == 0 {
		return map[string]bool{}
	}
	out := map[string]bool{}
	for k := range sets[0] {
		out[k] = true
	}
	for _, s := range sets[1:] {
		for k := range out {
			if !s[k] {
				delete(out, k)
			}
		}
	}
	return out
}

func unionStringSets(sets []map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func intersectCallSets(sets []map[CallSite]bool) map[CallSite]bool {
	if len(sets) == 0 {
		return map[CallSite]bool{}
	}
	out := map[CallSite]bool{}
	for k := range sets[0] {
		out[k] = true
	}
	for _, s := range sets[1:] {
		for k := range out {
			if !s[k] {
				delete(out, k)
			}
		}
	}
	return out
}

func unionCallSets(sets []map[CallSite]bool) map[CallSite]bool {
	out := map[CallSite]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func setToSlice(s map[CallSite]bool) []CallSite {
	out := make([]CallSite, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
