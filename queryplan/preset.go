package queryplan

import (
	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/valid"
)

// NewPreset is the canonical planning pipeline: minify first so enrichment
// never sees collapsed-away containers, enrich, then prune on the enriched
// graph sets.
func NewPreset[V any](index *blueprint.Index) valid.Transform[Plan[V]] {
	return valid.Pipe(
		valid.Pipe[Plan[V]](NewMinify[V](), NewEnrich[V](index)),
		NewPruner[V](),
	)
}
