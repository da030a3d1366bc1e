package queryplan

import (
	"github.com/gqlfed/federation-planner/valid"
)

// Minify collapses degenerate plan nodes: a Parallel or Sequence with a
// single child is replaced by that child. Empty containers are invalid.
type Minify[V any] struct{}

// NewMinify creates the minify transform.
func NewMinify[V any]() Minify[V] {
	return Minify[V]{}
}

func (m Minify[V]) Transform(input Plan[V]) valid.Valid[Plan[V]] {
	return m.apply(input).Trace("minify")
}

func (m Minify[V]) apply(input Plan[V]) valid.Valid[Plan[V]] {
	switch plan := input.(type) {
	case *Parallel[V]:
		switch len(plan.Plans) {
		case 0:
			return valid.Fail[Plan[V]]("Empty Parallel")
		case 1:
			return m.apply(plan.Plans[0])
		default:
			return valid.Map(valid.FromIter(plan.Plans, m.apply), func(plans []Plan[V]) Plan[V] {
				return &Parallel[V]{Plans: plans}
			})
		}

	case *Sequence[V]:
		switch len(plan.Plans) {
		case 0:
			return valid.Fail[Plan[V]]("Empty Sequence")
		case 1:
			return m.apply(plan.Plans[0])
		default:
			return valid.Map(valid.FromIter(plan.Plans, m.apply), func(plans []Plan[V]) Plan[V] {
				return &Sequence[V]{Plans: plans}
			})
		}

	case *Flatten[V]:
		return valid.Map(m.apply(plan.Plan), func(inner Plan[V]) Plan[V] {
			return &Flatten[V]{Select: plan.Select, Plan: inner}
		})
	}

	return valid.Succeed(input)
}
