// Package gateway bundles the planning pipeline behind an HTTP GraphQL
// endpoint. An Engine is built once per supergraph version and swapped
// atomically, so requests always see a consistent blueprint, index and
// executor.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gqlfed/federation-planner/blueprint"
	"github.com/gqlfed/federation-planner/executor"
	"github.com/gqlfed/federation-planner/queryplan"
	"github.com/gqlfed/federation-planner/valid"
)

// Engine holds the read-only components needed to serve one supergraph
// version: blueprint, index, planning pipeline and executor. It must not be
// mutated after construction.
type Engine struct {
	blueprint *blueprint.Blueprint
	index     *blueprint.Index
	pipeline  valid.Transform[queryplan.Plan[string]]
	executor  *executor.Executor
}

// NewEngine parses the supergraph SDL and assembles the planning pipeline
// and executor around it.
func NewEngine(sdl string, client *http.Client) (*Engine, error) {
	bp, err := blueprint.Parse(sdl).ToResult()
	if err != nil {
		return nil, fmt.Errorf("failed to build blueprint: %w", err)
	}

	index := bp.ToIndex()
	return &Engine{
		blueprint: bp,
		index:     index,
		pipeline:  queryplan.NewPreset[string](index),
		executor:  executor.New(client, bp),
	}, nil
}

// Blueprint returns the engine's supergraph blueprint.
func (e *Engine) Blueprint() *blueprint.Blueprint {
	return e.blueprint
}

// PlanQuery runs the full planning pipeline on an operation document.
func (e *Engine) PlanQuery(query string) (queryplan.Plan[string], error) {
	initial, err := queryplan.Build(query).ToResult()
	if err != nil {
		return nil, err
	}
	final, err := e.pipeline.Transform(initial).ToResult()
	if err != nil {
		return nil, err
	}
	return final, nil
}

// Execute plans an operation and resolves it against the subgraphs.
func (e *Engine) Execute(ctx context.Context, query string, variables map[string]any) (any, error) {
	plan, err := e.PlanQuery(query)
	if err != nil {
		return nil, err
	}
	return e.executor.Execute(ctx, plan, variables)
}

// Store hands out the current engine. Every stored engine must be read-only.
type Store struct {
	current atomic.Value
}

// NewStore creates a store seeded with an engine.
func NewStore(engine *Engine) *Store {
	s := &Store{}
	s.current.Store(engine)
	return s
}

// Load returns the current engine.
func (s *Store) Load() *Engine {
	return s.current.Load().(*Engine)
}

// Swap replaces the current engine, e.g. after a supergraph update.
func (s *Store) Swap(engine *Engine) {
	s.current.Store(engine)
}
