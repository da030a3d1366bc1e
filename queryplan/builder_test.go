package queryplan_test

import (
	"strings"
	"testing"

	"github.com/gqlfed/federation-planner/queryplan"
)

func buildPlan(t *testing.T, query string) queryplan.Plan[string] {
	t.Helper()
	plan, err := queryplan.Build(query).ToResult()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return plan
}

func rootFetches(t *testing.T, plan queryplan.Plan[string]) []*queryplan.Fetch[string] {
	t.Helper()
	parallel, ok := plan.(*queryplan.Parallel[string])
	if !ok {
		t.Fatalf("expected Parallel at the root, got %T", plan)
	}
	fetches := make([]*queryplan.Fetch[string], 0, len(parallel.Plans))
	for _, child := range parallel.Plans {
		fetch, ok := child.(*queryplan.Fetch[string])
		if !ok {
			t.Fatalf("expected Fetch child, got %T", child)
		}
		fetches = append(fetches, fetch)
	}
	return fetches
}

func TestBuildSingleOperation(t *testing.T) {
	plan := buildPlan(t, `query { topProducts { name reviews { body } } }`)

	fetches := rootFetches(t, plan)
	if len(fetches) != 1 {
		t.Fatalf("expected 1 fetch, got %d", len(fetches))
	}

	fetch := fetches[0]
	if fetch.Service != "" {
		t.Errorf("service must be unassigned, got %q", fetch.Service)
	}
	if fetch.TypeName != "Query" {
		t.Errorf("expected type name Query, got %q", fetch.TypeName)
	}
	if fetch.Operation != queryplan.OperationQuery {
		t.Errorf("expected query operation, got %q", fetch.Operation)
	}
	if fetch.Name == "" {
		t.Error("anonymous operation must still get a fetch name")
	}

	if len(fetch.SelectionSet) != 1 || fetch.SelectionSet[0].Name != "topProducts" {
		t.Fatalf("unexpected selection set: %+v", fetch.SelectionSet)
	}
	top := fetch.SelectionSet[0]
	if len(top.Graph) != 0 {
		t.Error("graph candidates must be empty before enrichment")
	}
	if len(top.Selections) != 2 {
		t.Fatalf("expected 2 nested fields, got %d", len(top.Selections))
	}
	if top.Selections[1].Selections[0].Name != "body" {
		t.Errorf("nested selection lost: %+v", top.Selections[1])
	}
}

func TestBuildNamedOperationAndVariables(t *testing.T) {
	plan := buildPlan(t, `query getData($userId: String!, $region: String = "EU") {
		me: user(id: $userId) @include(if: true) { id }
	}`)

	fetch := rootFetches(t, plan)[0]
	if fetch.Name != "getData" {
		t.Errorf("expected fetch name getData, got %q", fetch.Name)
	}

	if len(fetch.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(fetch.Variables))
	}
	if fetch.Variables[0].Name != "userId" || fetch.Variables[0].Type != "String!" {
		t.Errorf("unexpected variable: %+v", fetch.Variables[0])
	}
	if fetch.Variables[1].Default == "" {
		t.Error("default value of $region lost")
	}

	me := fetch.SelectionSet[0]
	if me.Alias != "me" || me.Name != "user" {
		t.Errorf("alias not captured: %+v", me)
	}
	if len(me.Arguments) != 1 || me.Arguments[0].Name != "id" {
		t.Errorf("arguments not captured: %+v", me.Arguments)
	}
	if len(me.Directives) != 1 || me.Directives[0].Name != "include" {
		t.Errorf("directives not captured: %+v", me.Directives)
	}
}

func TestBuildMultipleOperations(t *testing.T) {
	plan := buildPlan(t, `query a { topProducts { name } } query b { topProducts { price } }`)

	fetches := rootFetches(t, plan)
	if len(fetches) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(fetches))
	}
	if fetches[0].Name != "a" || fetches[1].Name != "b" {
		t.Errorf("operation names lost: %q, %q", fetches[0].Name, fetches[1].Name)
	}
}

func TestBuildMutation(t *testing.T) {
	fetch := rootFetches(t, buildPlan(t, `mutation { createProduct { upc } }`))[0]
	if fetch.Operation != queryplan.OperationMutation {
		t.Errorf("expected mutation, got %q", fetch.Operation)
	}
	if fetch.TypeName != "Mutation" {
		t.Errorf("expected Mutation type name, got %q", fetch.TypeName)
	}
}

func TestBuildRejectsFragments(t *testing.T) {
	_, err := queryplan.Build(`query { topProducts { ... on Product { name } } }`).ToResult()
	if err == nil {
		t.Fatal("expected failure for inline fragment")
	}
	if !strings.Contains(err.Error(), "unsupported selection: inline fragment") {
		t.Errorf("unexpected error: %v", err)
	}

	_, err = queryplan.Build(`query { topProducts { ...productFields } } fragment productFields on Product { name }`).ToResult()
	if err == nil {
		t.Fatal("expected failure for fragment spread")
	}
	if !strings.Contains(err.Error(), "unsupported selection: fragment spread") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildSyntaxError(t *testing.T) {
	_, err := queryplan.Build(`query {`).ToResult()
	if err == nil {
		t.Fatal("expected syntax error")
	}
}
