package executor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/executor"
	"github.com/gqlfed/federation-planner/queryplan"
)

func subgraphServer(t *testing.T, data map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Query)

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
	}))
	t.Cleanup(server.Close)
	return server
}

func registryOf(graphs map[blueprint.Graph]string) *blueprint.Blueprint {
	bp := &blueprint.Blueprint{}
	for graph, url := range graphs {
		bp.JoinGraphs = append(bp.JoinGraphs, blueprint.JoinGraph{Graph: graph, Name: string(graph), URL: url})
	}
	return bp
}

func serviceFetch(service blueprint.Graph, fields ...string) *queryplan.Fetch[string] {
	selections := make(queryplan.SelectionSet[string], 0, len(fields))
	for _, name := range fields {
		selections = append(selections, &queryplan.Field[string]{Name: name})
	}
	return &queryplan.Fetch[string]{
		Service:      service,
		Operation:    queryplan.OperationQuery,
		TypeName:     "Query",
		SelectionSet: selections,
	}
}

func TestExecuteFetch(t *testing.T) {
	server := subgraphServer(t, map[string]any{"a": "value"})
	exec := executor.New(server.Client(), registryOf(map[blueprint.Graph]string{"A": server.URL}))

	result, err := exec.Execute(context.Background(), serviceFetch("A", "a"), nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "value"}, result)
}

func TestExecuteParallelMerges(t *testing.T) {
	left := subgraphServer(t, map[string]any{"a": "left"})
	right := subgraphServer(t, map[string]any{"b": "right"})
	exec := executor.New(http.DefaultClient, registryOf(map[blueprint.Graph]string{
		"L": left.URL,
		"R": right.URL,
	}))

	plan := &queryplan.Parallel[string]{Plans: []queryplan.Plan[string]{
		serviceFetch("L", "a"),
		serviceFetch("R", "b"),
	}}

	result, err := exec.Execute(context.Background(), plan, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "left", "b": "right"}, result)
}

func TestExecuteSequenceLaterWins(t *testing.T) {
	first := subgraphServer(t, map[string]any{"x": "first", "keep": true})
	second := subgraphServer(t, map[string]any{"x": "second"})
	exec := executor.New(http.DefaultClient, registryOf(map[blueprint.Graph]string{
		"F": first.URL,
		"S": second.URL,
	}))

	plan := &queryplan.Sequence[string]{Plans: []queryplan.Plan[string]{
		serviceFetch("F", "x", "keep"),
		serviceFetch("S", "x"),
	}}

	result, err := exec.Execute(context.Background(), plan, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": "second", "keep": true}, result)
}

func TestExecuteFlattenMergesBack(t *testing.T) {
	root := subgraphServer(t, map[string]any{"product": map[string]any{"upc": "1"}})
	nested := subgraphServer(t, map[string]any{"reviews": []any{"good"}})
	exec := executor.New(http.DefaultClient, registryOf(map[blueprint.Graph]string{
		"ROOT":    root.URL,
		"REVIEWS": nested.URL,
	}))

	plan := &queryplan.Sequence[string]{Plans: []queryplan.Plan[string]{
		serviceFetch("ROOT", "product"),
		&queryplan.Flatten[string]{
			Select: queryplan.Path("product"),
			Plan:   serviceFetch("REVIEWS", "reviews"),
		},
	}}

	result, err := exec.Execute(context.Background(), plan, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"product": map[string]any{
			"upc":     "1",
			"reviews": []any{"good"},
		},
	}, result)
}

func TestExecuteUnassignedFetchFails(t *testing.T) {
	exec := executor.New(http.DefaultClient, registryOf(nil))

	_, err := exec.Execute(context.Background(), serviceFetch("", "a"), nil)
	require.ErrorContains(t, err, "no assigned service")
}

func TestExecuteUnknownSubgraphFails(t *testing.T) {
	exec := executor.New(http.DefaultClient, registryOf(nil))

	_, err := exec.Execute(context.Background(), serviceFetch("GHOST", "a"), nil)
	require.ErrorContains(t, err, `no endpoint registered for subgraph "GHOST"`)
}

func TestExecuteSubgraphErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "boom"}},
		})
	}))
	t.Cleanup(server.Close)

	exec := executor.New(server.Client(), registryOf(map[blueprint.Graph]string{"A": server.URL}))

	_, err := exec.Execute(context.Background(), serviceFetch("A", "a"), nil)
	require.ErrorContains(t, err, "boom")
}
