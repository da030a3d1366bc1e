package queryplan

import (
	"fmt"
	"strings"
)

// Doc renders a plan as an indented document for diagnostics:
//
//	Parallel {
//	  Fetch(service: "product") {
//	    topProducts {
//	      name
//	    }
//	  }
//	}
func Doc[V any](plan Plan[V]) string {
	var sb strings.Builder
	writePlan[V](&sb, plan, 0)
	return sb.String()
}

func writePlan[V any](sb *strings.Builder, plan Plan[V], depth int) {
	indent := strings.Repeat("  ", depth)

	switch p := plan.(type) {
	case *Parallel[V]:
		sb.WriteString(indent + "Parallel {\n")
		for _, child := range p.Plans {
			writePlan[V](sb, child, depth+1)
		}
		sb.WriteString(indent + "}\n")

	case *Sequence[V]:
		sb.WriteString(indent + "Sequence {\n")
		for _, child := range p.Plans {
			writePlan[V](sb, child, depth+1)
		}
		sb.WriteString(indent + "}\n")

	case *Fetch[V]:
		if p.Service != "" {
			fmt.Fprintf(sb, "%sFetch(service: %q) {\n", indent, string(p.Service))
		} else {
			sb.WriteString(indent + "Fetch {\n")
		}
		writeSelections(sb, p.SelectionSet, depth+1)
		sb.WriteString(indent + "}\n")

	case *Flatten[V]:
		fmt.Fprintf(sb, "%sFlatten(%s) {\n", indent, p.Select)
		writePlan[V](sb, p.Plan, depth+1)
		sb.WriteString(indent + "}\n")
	}
}

func writeSelections[V any](sb *strings.Builder, selections SelectionSet[V], depth int) {
	indent := strings.Repeat("  ", depth)

	for _, field := range selections {
		sb.WriteString(indent)
		if field.Alias != "" {
			sb.WriteString(field.Alias + ": ")
		}
		sb.WriteString(field.Name)

		if len(field.Arguments) > 0 {
			parts := make([]string, 0, len(field.Arguments))
			for _, arg := range field.Arguments {
				parts = append(parts, fmt.Sprintf("%s: %v", arg.Name, arg.Value))
			}
			sb.WriteString("(" + strings.Join(parts, ", ") + ")")
		}

		if len(field.Selections) > 0 {
			sb.WriteString(" {\n")
			writeSelections(sb, field.Selections, depth+1)
			sb.WriteString(indent + "}")
		}
		sb.WriteString("\n")
	}
}
