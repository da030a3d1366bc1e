// Package executor runs query plans: it walks the plan tree, issues one
// HTTP GraphQL request per fetch against the owning subgraph, and merges the
// JSON results back together. Parallel children run concurrently, Sequence
// children run left to right, Flatten scopes a sub-plan through its lens.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/queryplan"
)

// Executor resolves plans against the subgraph endpoints registered in the
// blueprint's graph registry.
type Executor struct {
	client    *http.Client
	endpoints map[blueprint.Graph]string
	tracer    trace.Tracer
}

// New creates an executor over the blueprint's graph registry.
func New(client *http.Client, bp *blueprint.Blueprint) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	endpoints := make(map[blueprint.Graph]string, len(bp.JoinGraphs))
	for _, jg := range bp.JoinGraphs {
		endpoints[jg.Graph] = jg.URL
	}
	return &Executor{
		client:    client,
		endpoints: endpoints,
		tracer:    otel.Tracer("federation-planner/executor"),
	}
}

// Execute resolves a plan to the response data value.
func (e *Executor) Execute(ctx context.Context, plan queryplan.Plan[string], variables map[string]any) (any, error) {
	return e.resolve(ctx, plan, variables, nil)
}

func (e *Executor) resolve(ctx context.Context, plan queryplan.Plan[string], variables map[string]any, value any) (any, error) {
	switch p := plan.(type) {
	case *queryplan.Parallel[string]:
		results := make([]any, len(p.Plans))
		g, gctx := errgroup.WithContext(ctx)
		for i, sub := range p.Plans {
			g.Go(func() error {
				result, err := e.resolve(gctx, sub, variables, value)
				if err != nil {
					return err
				}
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		merged := value
		for _, result := range results {
			merged = Merge(merged, result)
		}
		return merged, nil

	case *queryplan.Sequence[string]:
		merged := value
		for _, sub := range p.Plans {
			result, err := e.resolve(ctx, sub, variables, merged)
			if err != nil {
				return nil, err
			}
			merged = Merge(merged, result)
		}
		return merged, nil

	case *queryplan.Fetch[string]:
		return e.fetch(ctx, p, variables)

	case *queryplan.Flatten[string]:
		scoped := p.Select.Get(value)
		result, err := e.resolve(ctx, p.Plan, variables, scoped)
		if err != nil {
			return nil, err
		}
		return p.Select.Set(value, result), nil
	}

	return nil, fmt.Errorf("unknown plan node %T", plan)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *Executor) fetch(ctx context.Context, fetch *queryplan.Fetch[string], variables map[string]any) (any, error) {
	if fetch.Service == "" {
		return nil, fmt.Errorf("fetch %q has no assigned service", fetch.Name)
	}
	endpoint, ok := e.endpoints[fetch.Service]
	if !ok {
		return nil, fmt.Errorf("no endpoint registered for subgraph %q", fetch.Service)
	}

	ctx, span := e.tracer.Start(ctx, "executor.fetch", trace.WithAttributes(
		attribute.String("subgraph.name", string(fetch.Service)),
		attribute.String("subgraph.url", endpoint),
	))
	defer span.End()

	body, err := json.Marshal(graphQLRequest{Query: BuildQuery(fetch), Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request for subgraph %q: %w", fetch.Service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for subgraph %q: %w", fetch.Service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to subgraph %q failed: %w", fetch.Service, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from subgraph %q: %w", fetch.Service, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subgraph %q returned status %d", fetch.Service, resp.StatusCode)
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response from subgraph %q: %w", fetch.Service, err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("subgraph %q returned an error: %s", fetch.Service, decoded.Errors[0].Message)
	}

	return decoded.Data, nil
}
