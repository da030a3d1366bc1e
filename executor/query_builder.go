package executor

import (
	"strings"

	"github.com/gqlfed/federation-planner/queryplan"
)

// BuildQuery renders the GraphQL document for a single fetch. Entity fetches
// (those carrying representations) render the _entities pattern; everything
// else becomes a plain operation over the fetch's selection set.
func BuildQuery(fetch *queryplan.Fetch[string]) string {
	var sb strings.Builder

	operation := string(fetch.Operation)
	if operation == "" {
		operation = string(queryplan.OperationQuery)
	}
	sb.WriteString(operation)

	if isGraphQLName(fetch.Name) {
		sb.WriteString(" " + fetch.Name)
	}

	if len(fetch.Representations) > 0 {
		sb.WriteString("($representations: [_Any!]!) { _entities(representations: $representations) { ... on ")
		sb.WriteString(fetch.TypeName)
		sb.WriteString(" ")
		writeSelectionSet(&sb, fetch.SelectionSet)
		sb.WriteString(" } }")
		return sb.String()
	}

	if len(fetch.Variables) > 0 {
		parts := make([]string, 0, len(fetch.Variables))
		for _, v := range fetch.Variables {
			part := "$" + v.Name + ": " + v.Type
			if v.Default != "" {
				part += " = " + v.Default
			}
			parts = append(parts, part)
		}
		sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	}

	sb.WriteString(" ")
	writeSelectionSet(&sb, fetch.SelectionSet)
	return sb.String()
}

func writeSelectionSet(sb *strings.Builder, selections queryplan.SelectionSet[string]) {
	sb.WriteString("{ ")
	for _, field := range selections {
		writeField(sb, field)
		sb.WriteString(" ")
	}
	sb.WriteString("}")
}

func writeField(sb *strings.Builder, field *queryplan.Field[string]) {
	if field.Alias != "" {
		sb.WriteString(field.Alias + ": ")
	}
	sb.WriteString(field.Name)

	if len(field.Arguments) > 0 {
		parts := make([]string, 0, len(field.Arguments))
		for _, arg := range field.Arguments {
			parts = append(parts, arg.Name+": "+arg.Value)
		}
		sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	}

	for _, directive := range field.Directives {
		sb.WriteString(" @" + directive.Name)
		if len(directive.Arguments) > 0 {
			parts := make([]string, 0, len(directive.Arguments))
			for _, arg := range directive.Arguments {
				parts = append(parts, arg.Name+": "+arg.Value)
			}
			sb.WriteString("(" + strings.Join(parts, ", ") + ")")
		}
	}

	if len(field.Selections) > 0 {
		sb.WriteString(" ")
		writeSelectionSet(sb, field.Selections)
	}
}

// isGraphQLName reports whether s can be used as an operation name. Fetches
// from anonymous operations carry generated identifiers that are not.
func isGraphQLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
