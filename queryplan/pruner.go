package queryplan

import (
	"fmt"

	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/valid"
)

// Pruner reduces every field's candidate subgraph set to a minimum that
// still covers the whole subtree. It runs per root field in two passes: a
// greedy weighted set cover over the subtree, then a refinement that prefers
// keeping a child on one of its parent's subgraphs so sibling groups are not
// needlessly split across services.
type Pruner[V any] struct{}

// NewPruner creates the pruning transform.
func NewPruner[V any]() Pruner[V] {
	return Pruner[V]{}
}

func (p Pruner[V]) Transform(input Plan[V]) valid.Valid[Plan[V]] {
	return p.iter(input).Trace("pruner")
}

func (p Pruner[V]) iter(input Plan[V]) valid.Valid[Plan[V]] {
	switch plan := input.(type) {
	case *Fetch[V]:
		return valid.Map(valid.FromIter(plan.SelectionSet, p.pruneTree), func(roots []prunedTree[V]) Plan[V] {
			pruned := *plan
			union := make(map[blueprint.Graph]bool)
			fields := make(SelectionSet[V], 0, len(roots))
			for _, root := range roots {
				fields = append(fields, root.field)
				for graph := range root.cover {
					union[graph] = true
				}
			}
			pruned.SelectionSet = fields

			// A cover of exactly one subgraph means the whole fetch is
			// resolvable there. Multi-subgraph fetches stay unassigned for a
			// downstream splitter to break apart.
			if len(union) == 1 {
				for graph := range union {
					pruned.Service = graph
				}
			}
			return &pruned
		})

	case *Flatten[V]:
		return valid.Map(p.iter(plan.Plan), func(inner Plan[V]) Plan[V] {
			return &Flatten[V]{Select: plan.Select, Plan: inner}
		})

	case *Parallel[V]:
		return valid.Map(valid.FromIter(plan.Plans, p.iter), func(plans []Plan[V]) Plan[V] {
			return &Parallel[V]{Plans: plans}
		})

	case *Sequence[V]:
		return valid.Map(valid.FromIter(plan.Plans, p.iter), func(plans []Plan[V]) Plan[V] {
			return &Sequence[V]{Plans: plans}
		})
	}

	return valid.Fail[Plan[V]](fmt.Sprintf("unknown plan node %T", input))
}

type prunedTree[V any] struct {
	field *Field[V]
	cover map[blueprint.Graph]bool
}

// PruneField runs both pruning passes on a single root field.
func PruneField[V any](field *Field[V]) valid.Valid[*Field[V]] {
	return valid.Map(Pruner[V]{}.pruneTree(field), func(root prunedTree[V]) *Field[V] {
		return root.field
	})
}

func (p Pruner[V]) pruneTree(field *Field[V]) valid.Valid[prunedTree[V]] {
	subgraphs := collectSubgraphs(field, nil)
	fieldSets := make(map[string]map[blueprint.Graph]bool)
	collectFieldSets(field, field.ResponseKey(), fieldSets)

	return valid.Map(minimumSetCover(subgraphs, fieldSets), func(required map[blueprint.Graph]bool) prunedTree[V] {
		return prunedTree[V]{field: pruneField(field, required, nil), cover: required}
	})
}

// fieldGraphs is the subgraph set a field can be served from: the graphs of
// its join__field records when it has any, its enriched graph list
// otherwise.
func fieldGraphs[V any](field *Field[V]) []blueprint.Graph {
	if len(field.JoinFields) > 0 {
		return joinFieldGraphs(field.JoinFields)
	}
	return field.Graph
}

// collectSubgraphs gathers the subtree's subgraphs in first-discovery order
// so the greedy cover is deterministic.
func collectSubgraphs[V any](field *Field[V], acc []blueprint.Graph) []blueprint.Graph {
	for _, graph := range fieldGraphs(field) {
		if !containsGraph(acc, graph) {
			acc = append(acc, graph)
		}
	}
	for _, child := range field.Selections {
		acc = collectSubgraphs(child, acc)
	}
	return acc
}

// collectFieldSets maps every field in the subtree to its candidate
// subgraphs. Fields are keyed by their selection path so same-named fields
// at different depths do not collapse into one entry.
func collectFieldSets[V any](field *Field[V], path string, acc map[string]map[blueprint.Graph]bool) {
	set := make(map[blueprint.Graph]bool)
	for _, graph := range fieldGraphs(field) {
		set[graph] = true
	}
	acc[path] = set

	for _, child := range field.Selections {
		collectFieldSets(child, path+"."+child.ResponseKey(), acc)
	}
}

// minimumSetCover greedily picks the subgraph covering the most uncovered
// fields until everything is covered. Ties keep the earliest-discovered
// subgraph. An uncoverable field fails the whole pass.
func minimumSetCover(subgraphs []blueprint.Graph, fieldSets map[string]map[blueprint.Graph]bool) valid.Valid[map[blueprint.Graph]bool] {
	uncovered := make(map[string]bool, len(fieldSets))
	for key := range fieldSets {
		uncovered[key] = true
	}

	cover := make(map[blueprint.Graph]bool)
	for len(uncovered) > 0 {
		var best blueprint.Graph
		bestCoverage := 0

		for _, subgraph := range subgraphs {
			coverage := 0
			for key := range uncovered {
				if fieldSets[key][subgraph] {
					coverage++
				}
			}
			if coverage > bestCoverage {
				bestCoverage = coverage
				best = subgraph
			}
		}

		if bestCoverage == 0 {
			return valid.Fail[map[blueprint.Graph]bool]("Invalid Input: Failed to find a valid set cover")
		}

		cover[best] = true
		for key := range uncovered {
			if fieldSets[key][best] {
				delete(uncovered, key)
			}
		}
	}

	return valid.Succeed(cover)
}

// pruneField applies the cover filter and, when the field shares a subgraph
// with its parent, the parent-locality filter on top. Children always
// recurse with the unfiltered parent set.
func pruneField[V any](field *Field[V], required map[blueprint.Graph]bool, parent map[blueprint.Graph]bool) *Field[V] {
	own := fieldGraphs(field)
	ownSet := make(map[blueprint.Graph]bool, len(own))
	for _, graph := range own {
		ownSet[graph] = true
	}

	isCommon := false
	for graph := range ownSet {
		if parent[graph] {
			isCommon = true
			break
		}
	}

	keep := func(graph blueprint.Graph) bool {
		if graph == "" {
			return true
		}
		if !required[graph] {
			return false
		}
		if isCommon && !parent[graph] {
			return false
		}
		return true
	}

	pruned := *field

	prunedJoin := make([]blueprint.JoinField, 0, len(field.JoinFields))
	for _, jf := range field.JoinFields {
		if keep(jf.Graph) {
			prunedJoin = append(prunedJoin, jf)
		}
	}
	pruned.JoinFields = prunedJoin

	prunedGraphs := make([]blueprint.Graph, 0, len(field.Graph))
	for _, graph := range field.Graph {
		if keep(graph) {
			prunedGraphs = append(prunedGraphs, graph)
		}
	}
	pruned.Graph = prunedGraphs

	children := make(SelectionSet[V], 0, len(field.Selections))
	for _, child := range field.Selections {
		children = append(children, pruneField(child, required, ownSet))
	}
	pruned.Selections = children

	return &pruned
}

func containsGraph(graphs []blueprint.Graph, graph blueprint.Graph) bool {
	for _, g := range graphs {
		if g == graph {
			return true
		}
	}
	return false
}
