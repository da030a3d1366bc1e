package queryplan

import (
	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/gqlfed/federation-planner/valid"
)

// Build parses an operation document and produces the initial plan: one
// Fetch per operation, all under a single Parallel. No subgraph is chosen at
// this point; enrichment and pruning decide ownership later.
func Build(query string) valid.Valid[Plan[string]] {
	doc, err := parser.ParseQuery(&ast.Source{Name: "operation.graphql", Input: query})
	if err != nil {
		return valid.Fail[Plan[string]](err.Error()).Trace("build")
	}
	return buildDocument(doc).Trace("build")
}

func buildDocument(doc *ast.QueryDocument) valid.Valid[Plan[string]] {
	return valid.Map(valid.FromIter(doc.Operations, buildOperation), func(plans []Plan[string]) Plan[string] {
		return &Parallel[string]{Plans: plans}
	})
}

func buildOperation(op *ast.OperationDefinition) valid.Valid[Plan[string]] {
	name := op.Name
	if name == "" {
		name = uuid.NewString()
	}

	operation := OperationType(op.Operation)
	if operation == "" {
		operation = OperationQuery
	}

	variables := make([]Variable, 0, len(op.VariableDefinitions))
	for _, vd := range op.VariableDefinitions {
		variable := Variable{Name: vd.Variable, Type: renderType(vd.Type)}
		if vd.DefaultValue != nil {
			variable.Default = vd.DefaultValue.String()
		}
		variables = append(variables, variable)
	}

	return valid.Map(buildSelectionSet(op.SelectionSet), func(selections SelectionSet[string]) Plan[string] {
		return &Fetch[string]{
			TypeName:     operation.RootTypeName(),
			Operation:    operation,
			Name:         name,
			SelectionSet: selections,
			Variables:    variables,
			Directives:   buildDirectives(op.Directives),
		}
	})
}

func buildSelectionSet(selections ast.SelectionSet) valid.Valid[SelectionSet[string]] {
	return valid.Map(valid.FromIter(selections, buildSelection), func(fields []*Field[string]) SelectionSet[string] {
		return fields
	})
}

func buildSelection(selection ast.Selection) valid.Valid[*Field[string]] {
	switch sel := selection.(type) {
	case *ast.Field:
		alias := ""
		if sel.Alias != "" && sel.Alias != sel.Name {
			alias = sel.Alias
		}

		return valid.Map(buildSelectionSet(sel.SelectionSet), func(nested SelectionSet[string]) *Field[string] {
			return &Field[string]{
				Name:       sel.Name,
				Alias:      alias,
				Selections: nested,
				Arguments:  buildArguments(sel.Arguments),
				Directives: buildDirectives(sel.Directives),
			}
		})

	case *ast.InlineFragment:
		return valid.Fail[*Field[string]]("unsupported selection: inline fragment")

	case *ast.FragmentSpread:
		return valid.Fail[*Field[string]]("unsupported selection: fragment spread")
	}

	return valid.Fail[*Field[string]]("unsupported selection")
}

func buildArguments(args ast.ArgumentList) []Argument[string] {
	out := make([]Argument[string], 0, len(args))
	for _, arg := range args {
		out = append(out, Argument[string]{Name: arg.Name, Value: arg.Value.String()})
	}
	return out
}

func buildDirectives(directives ast.DirectiveList) []Directive[string] {
	out := make([]Directive[string], 0, len(directives))
	for _, d := range directives {
		out = append(out, Directive[string]{Name: d.Name, Arguments: buildArguments(d.Arguments)})
	}
	return out
}

func renderType(t *ast.Type) string {
	if t == nil {
		return ""
	}
	var rendered string
	if t.NamedType != "" {
		rendered = t.NamedType
	} else {
		rendered = "[" + renderType(t.Elem) + "]"
	}
	if t.NonNull {
		rendered += "!"
	}
	return rendered
}
