package queryplan

import (
	"fmt"

	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/valid"
)

// Enrich annotates every field of every fetch with the subgraphs that can
// resolve it, by walking the selection sets against the blueprint index.
type Enrich[V any] struct {
	index *blueprint.Index
}

// NewEnrich creates the enrichment transform over an index.
func NewEnrich[V any](index *blueprint.Index) Enrich[V] {
	return Enrich[V]{index: index}
}

func (e Enrich[V]) Transform(input Plan[V]) valid.Valid[Plan[V]] {
	return e.iter(input).Trace("enrich")
}

func (e Enrich[V]) iter(input Plan[V]) valid.Valid[Plan[V]] {
	switch plan := input.(type) {
	case *Fetch[V]:
		return valid.AndThen(e.rootTypeName(plan.Operation), func(root string) valid.Valid[Plan[V]] {
			return valid.Map(e.iterSelections(plan.SelectionSet, root), func(selections SelectionSet[V]) Plan[V] {
				enriched := *plan
				enriched.TypeName = root
				enriched.SelectionSet = selections
				return &enriched
			})
		})

	case *Flatten[V]:
		return valid.Map(e.iter(plan.Plan), func(inner Plan[V]) Plan[V] {
			return &Flatten[V]{Select: plan.Select, Plan: inner}
		})

	case *Parallel[V]:
		return valid.Map(valid.FromIter(plan.Plans, e.iter), func(plans []Plan[V]) Plan[V] {
			return &Parallel[V]{Plans: plans}
		})

	case *Sequence[V]:
		return valid.Map(valid.FromIter(plan.Plans, e.iter), func(plans []Plan[V]) Plan[V] {
			return &Sequence[V]{Plans: plans}
		})
	}

	return valid.Fail[Plan[V]](fmt.Sprintf("unknown plan node %T", input))
}

func (e Enrich[V]) rootTypeName(operation OperationType) valid.Valid[string] {
	var root string
	switch operation {
	case OperationMutation:
		root = e.index.GetMutation()
	case OperationSubscription:
		root = e.index.GetSubscription()
	default:
		operation = OperationQuery
		root = e.index.GetQuery()
	}
	if root == "" {
		return valid.Fail[string](fmt.Sprintf("Root operation for `%s` is not defined", operation))
	}
	return valid.Succeed(root)
}

func (e Enrich[V]) iterSelections(selections SelectionSet[V], containerType string) valid.Valid[SelectionSet[V]] {
	typeDef := e.index.GetObjectTypeDefinition(containerType)
	if typeDef == nil {
		return valid.Fail[SelectionSet[V]](fmt.Sprintf("type definition not found for type '%s'", containerType))
	}

	return valid.Map(valid.FromIter(selections, func(field *Field[V]) valid.Valid[*Field[V]] {
		entry, ok := e.index.GetField(containerType, field.Name).(blueprint.OutputField)
		if !ok {
			return valid.Fail[*Field[V]](fmt.Sprintf("field definition not found for field '%s' in type '%s'", field.Name, containerType))
		}
		fieldDef := entry.Def

		enriched := *field
		enriched.ParentType = containerType
		enriched.FieldType = fieldDef.OfType.BaseName()

		if len(fieldDef.JoinFields) > 0 {
			enriched.JoinFields = fieldDef.JoinFields
			enriched.Graph = joinFieldGraphs(fieldDef.JoinFields)
		} else {
			// Without a join__field directive the field is served wherever
			// its container lives: every join__type whose key is absent, or
			// whose key is the field itself.
			var graphs []blueprint.Graph
			for _, jt := range typeDef.JoinTypes {
				if jt.Key == "" || jt.Key == field.Name {
					graphs = append(graphs, jt.Graph)
				}
			}
			enriched.Graph = graphs
		}

		if len(enriched.Graph) == 0 {
			return valid.Fail[*Field[V]](fmt.Sprintf("no subgraph can resolve field '%s' in type '%s'", field.Name, containerType))
		}

		if len(field.Selections) == 0 {
			return valid.Succeed(&enriched)
		}
		return valid.Map(e.iterSelections(field.Selections, fieldDef.OfType.BaseName()), func(nested SelectionSet[V]) *Field[V] {
			enriched.Selections = nested
			return &enriched
		})
	}), func(fields []*Field[V]) SelectionSet[V] {
		return fields
	})
}

func joinFieldGraphs(joinFields []blueprint.JoinField) []blueprint.Graph {
	var graphs []blueprint.Graph
	for _, jf := range joinFields {
		if jf.Graph != "" {
			graphs = append(graphs, jf.Graph)
		}
	}
	return graphs
}
