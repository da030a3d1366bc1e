package blueprint

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/gqlfed/federation-planner/valid"
)

// Graph identifies a subgraph. The value is the join__Graph enum value name
// that join__* directives reference.
type Graph string

func (g Graph) String() string { return string(g) }

// JoinGraph is one entry of the graph registry: the enum value identifier
// plus the name and URL declared by its @join__graph directive.
type JoinGraph struct {
	Graph Graph  `json:"-"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// JoinType records that a type is present in a subgraph, optionally keyed by
// a field-path expression.
type JoinType struct {
	Graph             Graph  `json:"graph"`
	Key               string `json:"key,omitempty"`
	Extension         bool   `json:"extension"`
	Resolvable        bool   `json:"resolvable"`
	IsInterfaceObject bool   `json:"isInterfaceObject"`
}

func (jt *JoinType) UnmarshalJSON(data []byte) error {
	type alias JoinType
	tmp := alias{Resolvable: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*jt = JoinType(tmp)
	return nil
}

// JoinField records per-field ownership and federation hints. Graph is empty
// when the directive carried no graph argument.
type JoinField struct {
	Graph          Graph  `json:"graph,omitempty"`
	Requires       string `json:"requires,omitempty"`
	Provides       string `json:"provides,omitempty"`
	Type           string `json:"type,omitempty"`
	External       bool   `json:"external,omitempty"`
	Override       string `json:"override,omitempty"`
	UsedOverridden bool   `json:"usedOverridden,omitempty"`
}

// JoinImplements records interface membership per subgraph.
type JoinImplements struct {
	Graph     Graph  `json:"graph"`
	Interface string `json:"interface"`
}

// JoinUnion records union membership per subgraph.
type JoinUnion struct {
	Graph  Graph  `json:"graph"`
	Member string `json:"member"`
}

// JoinEnum records that an enum value is present in a subgraph.
type JoinEnum struct {
	Graph Graph `json:"graph"`
}

// extractJoins filters directives by name and decodes their argument object
// into T. Decode failures accumulate, one cause per malformed directive.
func extractJoins[T any](directives []Directive, name, owner string) valid.Valid[[]T] {
	return valid.FromIter(filterDirectives(directives, name), func(d Directive) valid.Valid[T] {
		record, err := decodeArguments[T](d.Arguments)
		if err != nil {
			return valid.Fail[T](fmt.Sprintf("malformed `%s` directive on `%s`: %v", name, owner, err))
		}
		return valid.Succeed(record)
	})
}

func filterDirectives(directives []Directive, name string) []Directive {
	var out []Directive
	for _, d := range directives {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

func decodeArguments[T any](arguments map[string]any) (T, error) {
	var record T
	raw, err := json.Marshal(arguments)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, err
	}
	return record, nil
}
