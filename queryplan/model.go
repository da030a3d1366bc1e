// Package queryplan builds and transforms query plans: trees of subgraph
// fetches composed with parallel, sequence and flatten operators. A plan is
// produced from an operation document, enriched with the subgraphs that can
// resolve every field, pruned to a minimal covering subgraph set, and
// minified before being handed to an executor.
package queryplan

import (
	"github.com/gqlfed/federation-planner/blueprint"
)

// OperationType is the GraphQL operation kind of a fetch.
type OperationType string

const (
	OperationQuery        OperationType = "query"
	OperationMutation     OperationType = "mutation"
	OperationSubscription OperationType = "subscription"
)

// RootTypeName is the canonical type name for the operation kind, used as a
// placeholder until enrichment resolves the schema's actual root.
func (o OperationType) RootTypeName() string {
	switch o {
	case OperationMutation:
		return "Mutation"
	case OperationSubscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// Plan is a query plan node. V is the representation of argument values.
type Plan[V any] interface {
	plan()
}

// Parallel children are independent and may execute in any order.
type Parallel[V any] struct {
	Plans []Plan[V]
}

func (*Parallel[V]) plan() {}

// Sequence children execute left to right; later children may observe
// earlier children's outputs.
type Sequence[V any] struct {
	Plans []Plan[V]
}

func (*Sequence[V]) plan() {}

// Fetch is a single subgraph call. Service stays empty until a downstream
// transform assigns one.
type Fetch[V any] struct {
	Service         blueprint.Graph
	TypeName        string
	Operation       OperationType
	Name            string
	SelectionSet    SelectionSet[V]
	Representations SelectionSet[V]
	Variables       []Variable
	Directives      []Directive[V]
}

func (*Fetch[V]) plan() {}

// Flatten applies a sub-plan at the JSON location designated by Select and
// merges the result back.
type Flatten[V any] struct {
	Select Lens
	Plan   Plan[V]
}

func (*Flatten[V]) plan() {}

// Then sequences a plan with another one applied at a lens location.
func Then[V any](p Plan[V], sel Lens, next Plan[V]) Plan[V] {
	return &Sequence[V]{Plans: []Plan[V]{p, &Flatten[V]{Select: sel, Plan: next}}}
}

// SelectionSet is an ordered sequence of fields.
type SelectionSet[V any] []*Field[V]

// Field is one selected field of a fetch.
type Field[V any] struct {
	Name       string
	Alias      string
	Selections SelectionSet[V]
	Arguments  []Argument[V]
	Directives []Directive[V]

	// IsHidden marks fields the planner injected for querying subgraphs;
	// they must not be exposed to the user.
	IsHidden bool

	// Graph lists the subgraphs the field can be queried from.
	Graph []blueprint.Graph

	// JoinFields is readonly federation metadata copied from the blueprint.
	JoinFields []blueprint.JoinField

	ParentType string
	FieldType  string
}

// ResponseKey is the key the field occupies in the response object.
func (f *Field[V]) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Argument is a named argument value.
type Argument[V any] struct {
	Name  string
	Value V
}

// Directive is a directive application on a selection.
type Directive[V any] struct {
	Name      string
	Arguments []Argument[V]
}

// Variable is a variable declaration carried over from the operation.
type Variable struct {
	Name    string
	Type    string
	Default string
}
